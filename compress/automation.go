package compress

import "github.com/ictforecast/core/automaton"

// NewAutomationCompressor returns the "automation" backend of the standard
// pool: the multi-head sensing automaton of §4.5, which computes its own
// Krichevsky mixture internally and so implements Compressor directly,
// without going through the generic adaptor of §4.4.
func NewAutomationCompressor(minSym, maxSym int) *automaton.Automaton {
	return automaton.New(minSym, maxSym)
}
