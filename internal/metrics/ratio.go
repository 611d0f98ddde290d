package metrics

import "github.com/san-kum/sortviz/internal/trace"

// SwapRatio is the number of swaps per comparison. It is 0 until the
// first comparison is observed.
type SwapRatio struct {
	name  string
	cmp   int
	swaps int
}

func NewSwapRatio() *SwapRatio {
	return &SwapRatio{name: "swap_ratio"}
}

func (s *SwapRatio) Name() string {
	return s.name
}

func (s *SwapRatio) Observe(ev trace.Event) {
	switch ev.Kind {
	case trace.Compare:
		s.cmp++
	case trace.Swap:
		s.swaps++
	}
}

func (s *SwapRatio) Value() float64 {
	if s.cmp == 0 {
		return 0
	}
	return float64(s.swaps) / float64(s.cmp)
}

func (s *SwapRatio) Reset() {
	s.cmp = 0
	s.swaps = 0
}
