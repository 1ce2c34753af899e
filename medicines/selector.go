package medicines

import (
	"math/rand/v2"

	"github.com/giygas/myoncologist-api/entities"
)

const (
	// MinScanConfidence and MaxScanConfidence bound the displayed confidence.
	MinScanConfidence = 80
	MaxScanConfidence = 99
)

// Rand is the random source used by the selector.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Selector performs the mock recognition step.
type Selector struct {
	rnd Rand
}

// NewSelector returns a selector backed by rnd, or by the global source when rnd is nil.
func NewSelector(rnd Rand) *Selector {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Selector{rnd: rnd}
}

// Select returns the recognized medicine. The first scan of a session always
// yields the first table entry; later scans pick uniformly from the table.
// The returned confidence is drawn fresh in [MinScanConfidence, MaxScanConfidence].
func (s *Selector) Select(isFirstScan bool) entities.MedicineRecord {
	idx := 0
	if !isFirstScan {
		idx = s.rnd.IntN(len(table))
	}

	rec := table[idx].Clone()
	rec.Confidence = MinScanConfidence + s.rnd.IntN(MaxScanConfidence-MinScanConfidence+1)
	return rec
}
