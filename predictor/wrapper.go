package predictor

import (
	"strings"

	"github.com/ictforecast/core/series"
	"github.com/ictforecast/core/table"
)

// CompressionBasedPredictor is the common wrapper of §4.7: pre-differences
// the history, delegates to one of the three strategies, applies group
// mixtures (§4.6 rule 3), and normalizes columns (rule 4).
type CompressionBasedPredictor struct {
	Inner      DistributionPredictor
	Difference int
	// Groups lists compressor-name groups (size >= 2) to mix into a new
	// column named by joining the group's members with "_"; groups of size
	// < 2 are skipped, matching §4.6 rule 3's k >= 2 requirement.
	Groups [][]string
}

// Predict differences history by Difference passes, runs the wrapped
// strategy, adds one mixed column per group with uniform weights, and
// normalizes every column to a probability distribution.
func (w *CompressionBasedPredictor) Predict(history []float64, horizon int, names []string) (*table.ContinuationsDistribution, series.PreprocessingInfo[float64], error) {
	diffInfo := series.NewPreprocessingInfo[float64]()
	differenced := series.Difference(history, w.Difference, &diffInfo)

	dist, info, err := w.Inner.Predict(differenced, horizon, names)
	if err != nil {
		return nil, info, err
	}
	info.DiffStack = append(diffInfo.DiffStack, info.DiffStack...)

	for _, group := range w.Groups {
		if len(group) < 2 {
			continue
		}
		groupName := strings.Join(group, "_")
		if err := table.GroupMixture(dist, groupName, group, table.UniformWeights(len(group))); err != nil {
			return nil, info, err
		}
	}

	table.Normalize(dist)
	return dist, info, nil
}
