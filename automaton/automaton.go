// Package automaton implements §4.5's predicting multi-head sensing
// automaton: a 10-head deterministic finite-state machine (Smith 2018) that
// walks a tape of symbols and emits per-step confident/non-confident
// guesses, combined into a single Krichevsky-mixture code length.
//
// The head choreography (run/advance_one/advance_many/correction/matching)
// is a direct translation of the original implementation's sdfa.cc, kept
// procedure-for-procedure so the probability arithmetic in the literal-word
// scenarios of §8 matches exactly.
package automaton

import (
	"fmt"
	"math"

	"github.com/ictforecast/core/continuation"
	"github.com/ictforecast/core/errs"
	"github.com/ictforecast/core/internal/hpreal"
)

// Head indices, named exactly as the paper and resolved once here rather
// than per-instance (§9 design note: "name→index mapping resolved once at
// construction").
const (
	h3a = iota
	h1
	h2
	h3
	h4
	innerHead
	outerHead
	lHead
	rHead
	tHead
	headCount
)

var headNames = [headCount]string{
	h3a: "h3a", h1: "h1", h2: "h2", h3: "h3", h4: "h4",
	innerHead: "inner", outerHead: "outer", lHead: "l", rHead: "r", tHead: "t",
}

// sentinel is the beginning-of-tape symbol a[-1], distinct from every data
// symbol (which range over [0, 255]).
const sentinel = -1

// Automaton is the 10-head sensing DFA. It is not safe for concurrent use;
// a Pool constructs one instance per registered "automation" backend slot
// (§5).
type Automaton struct {
	heads     [headCount]int
	rightmost int

	minSym, maxSym int

	data []uint8

	p                  hpreal.Real
	confidentRun       int
	lettersFreq        map[int]int
	confidentGuessFreq map[int]int
}

// New returns an Automaton configured for the symbol range [minSym, maxSym].
func New(minSym, maxSym int) *Automaton {
	return &Automaton{minSym: minSym, maxSym: maxSym}
}

// HeadName returns the paper name of head index i, for visualization/debugging.
func HeadName(i int) string { return headNames[i] }

// SetMinSymbol reconfigures the alphabet's lower bound.
func (m *Automaton) SetMinSymbol(v int) { m.minSym = v }

// SetMaxSymbol reconfigures the alphabet's upper bound.
func (m *Automaton) SetMaxSymbol(v int) { m.maxSym = v }

// SetAlphabet sets both bounds at once, satisfying the compress.Compressor port.
func (m *Automaton) SetAlphabet(min, max int) error {
	if max < min {
		return fmt.Errorf("%w: max=%d < min=%d", errs.ErrInvalidArgument, max, min)
	}
	m.minSym, m.maxSym = min, max
	return nil
}

func (m *Automaton) alphabetRange() int { return m.maxSym - m.minSym + 1 }

func (m *Automaton) meanSymbol() int { return (m.minSym + m.maxSym) / 2 }

// reset reinitializes all mutable state before evaluating a new word,
// per §4.5's "state reset before every prediction".
func (m *Automaton) reset(data []uint8) {
	for i := range m.heads {
		m.heads[i] = -1
	}
	m.rightmost = 0
	m.data = data
	m.p = hpreal.One()
	m.confidentRun = 0
	m.lettersFreq = make(map[int]int)
	m.confidentGuessFreq = make(map[int]int)
}

// at returns the tape symbol at pos, or the sentinel if pos == -1.
func (m *Automaton) at(pos int) int {
	if pos < 0 {
		return sentinel
	}
	return int(m.data[pos])
}

// h is shorthand for the current position of head i.
func (m *Automaton) h(i int) int { return m.heads[i] }

// isRightmost reports whether head i is at the same position as the
// rightmost head.
func (m *Automaton) isRightmost(i int) bool { return m.heads[i] == m.heads[m.rightmost] }

// move advances head i by one position. It fails (returns false) if head i
// is already at the tape's last valid position, mirroring the paper's
// "early-exit if any move would fall off the tape end".
func (m *Automaton) move(i int) bool {
	if m.heads[i]+1 == len(m.data) {
		return false
	}
	m.heads[i]++
	if m.heads[m.rightmost] < m.heads[i] {
		m.rightmost = i
	}
	if i == m.rightmost {
		m.lettersFreq[m.at(m.heads[i])]++
	}
	return true
}

// moveAll moves each head in order, short-circuiting (and not moving the
// remaining heads) as soon as one move fails.
func (m *Automaton) moveAll(ids ...int) bool {
	for _, id := range ids {
		if !m.move(id) {
			return false
		}
	}
	return true
}

// guess updates the accumulated probability with the Krichevsky mixture for
// one predicted symbol, only if the rightmost head still has a symbol to
// its right (§4.5's "guess" procedure).
func (m *Automaton) guess(guessed int, confident bool) {
	if m.heads[m.rightmost] >= len(m.data)-1 {
		return
	}
	observed := m.at(m.heads[m.rightmost] + 1)

	var freq, total int
	if confident {
		m.confidentRun++
		total = m.confidentRun
		m.confidentGuessFreq[guessed] = m.confidentRun
		freq = m.confidentGuessFreq[observed]
		m.p = m.p.Mul(krichevsky(observed, freq, total, m.alphabetRange()))
		m.confidentGuessFreq[guessed] = 0
	} else {
		m.confidentRun = 0
		positionInWord := m.heads[m.rightmost]
		total = positionInWord + 1
		freq = m.lettersFreq[observed]
		m.p = m.p.Mul(krichevsky(observed, freq, total, m.alphabetRange()))
	}
}

// guessIfRightmost emits a low-confidence mean-symbol guess (or a specific
// symbol at the given confidence) only when head i is currently the
// rightmost head.
func (m *Automaton) guessIfRightmostMean(i int, confident bool) {
	if !m.isRightmost(i) {
		return
	}
	if confident {
		m.guess(m.at(m.heads[i]), true)
	} else {
		m.guess(m.meanSymbol(), false)
	}
}

func (m *Automaton) guessIfRightmostSymbol(i, symbol int, confident bool) {
	if !m.isRightmost(i) {
		return
	}
	m.guess(symbol, confident)
}

// krichevsky computes (freq + 1/2) / (total + |A|/2) for the observed
// symbol, matching §4.4/§4.5's shared mixture update.
func krichevsky(symbol, freq, total, alphabet int) hpreal.Real {
	return hpreal.FromFloat64(float64(freq) + 0.5).Quo(hpreal.FromFloat64(float64(total) + float64(alphabet)/2))
}

// run is the automaton's top-level loop, a direct translation of sdfa.cc's
// Sensing_DFA::run.
func (m *Automaton) run() bool {
	for m.h(h4) < len(m.data) {
		m.guessIfRightmostMean(rHead, false)
		if !m.move(rHead) {
			return false
		}
		if !m.correction() {
			return false
		}
		if !m.matching() {
			return false
		}
	}
	return true
}

func (m *Automaton) advanceOne(i int) bool {
	for m.h(tHead) != m.h(i) {
		m.move(tHead)
	}

	m.guessIfRightmostMean(i, false)
	if !m.move(i) {
		return false
	}

	for m.h(innerHead) != m.h(rHead) {
		m.move(innerHead)
	}

	for m.h(lHead) != m.h(innerHead) {
		if m.at(m.h(tHead)) == m.at(m.h(i)) {
			if !m.moveAll(lHead, rHead, outerHead) {
				return false
			}
		} else {
			for m.h(innerHead) != m.h(rHead) {
				m.move(innerHead)
			}
			m.guessIfRightmostMean(i, false)
			if !m.move(i) {
				return false
			}
		}

		if !m.move(tHead) {
			return false
		}
		m.guessIfRightmostMean(i, false)
		if !m.move(i) {
			return false
		}
	}

	for m.at(m.h(tHead)) == m.at(m.h(i)) {
		if !m.move(tHead) {
			return false
		}
		m.guessIfRightmostSymbol(i, m.at(m.h(tHead)), true)
		if !m.move(i) {
			return false
		}
	}

	return true
}

func (m *Automaton) advanceMany(i int) bool {
	for m.h(outerHead) != m.h(rHead) {
		m.move(outerHead)
	}
	for m.h(lHead) != m.h(outerHead) {
		if !m.advanceOne(i) || !m.moveAll(lHead, rHead) {
			return false
		}
	}
	return true
}

func (m *Automaton) correction() bool {
	for m.h(h1) != m.h(h4) {
		m.move(h1)
	}
	if !m.advanceOne(h1) {
		return false
	}

	for m.h(h2) != m.h(h1) {
		m.move(h2)
	}
	if !m.advanceMany(h2) {
		return false
	}

	for m.h(h3) != m.h(h2) {
		m.move(h3)
	}
	if !m.advanceMany(h3) {
		return false
	}

	for m.h(h4) != m.h(h3) {
		m.move(h4)
	}
	return m.advanceMany(h4)
}

func (m *Automaton) matching() bool {
	for m.h(h4) < len(m.data) {
		for m.h(h3a) != m.h(h3) {
			m.move(h3a)
		}

		for m.at(m.h(h1)) == m.at(m.h(h2)) && m.at(m.h(h2)) == m.at(m.h(h3)) && m.at(m.h(h3)) == m.at(m.h(h4)) {
			if !m.moveAll(h1, h2, h3a, h3) {
				return false
			}
			m.guessIfRightmostSymbol(h4, m.at(m.h(h2)), true)
			if !m.move(h4) {
				return false
			}
		}

		if m.at(m.h(h2)) != m.at(m.h(h4)) {
			break
		}

		for m.at(m.h(h2)) == m.at(m.h(h3)) && m.at(m.h(h3)) == m.at(m.h(h4)) {
			if !m.moveAll(h2, h3) {
				return false
			}
			m.guessIfRightmostSymbol(h4, m.at(m.h(h3)), true)
			if !m.move(h4) {
				return false
			}
		}

		if m.at(m.h(h3)) != m.at(m.h(h4)) {
			break
		}

		for m.at(m.h(h3a)) == m.at(m.h(h3)) && m.at(m.h(h3)) == m.at(m.h(h4)) {
			if !m.moveAll(h3a, h3) {
				return false
			}
			m.guessIfRightmostSymbol(h4, m.at(m.h(h3a)), true)
			if !m.move(h4) {
				return false
			}
		}

		if m.at(m.h(h3a)) != m.at(m.h(h4)) {
			break
		}

		for m.h(h3a) != m.h(h3) {
			if !m.move(h3a) {
				return false
			}
			m.guessIfRightmostSymbol(h4, m.at(m.h(h3a)), true)
			if !m.move(h4) {
				return false
			}
		}
	}

	return true
}

// Compress evaluates the automaton over data and returns ceil(-log2 P), the
// code length in bits, per §4.5.
func (m *Automaton) Compress(data []byte) (int, error) {
	m.reset(data)
	m.run()
	return codeLength(m.p), nil
}

// CompressContinuations evaluates history+continuation independently for
// each continuation.
func (m *Automaton) CompressContinuations(history []byte, continuations []continuation.Continuation) ([]int, error) {
	out := make([]int, len(continuations))
	var scratch []byte
	for i, cont := range continuations {
		scratch = append(scratch[:0], history...)
		scratch = append(scratch, cont.Symbols()...)
		bits, err := m.Compress(scratch)
		if err != nil {
			return nil, err
		}
		out[i] = bits
	}
	return out, nil
}

func codeLength(p hpreal.Real) int {
	if p.IsZero() {
		return math.MaxInt
	}
	negLog := hpreal.Zero().Sub(p.Log2())
	bits := negLog.Ceil().Float64()
	if bits >= float64(math.MaxInt) {
		return math.MaxInt
	}
	if bits < 0 {
		return 0
	}
	return int(bits)
}
