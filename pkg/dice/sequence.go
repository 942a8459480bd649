package dice

// Sequence is a deterministic Roller for tests. It returns the queued values in
// order and then Fallback forever. IntN is derived from the same queue so a
// single list of floats controls every draw.
type Sequence struct {
	Values   []float64
	Fallback float64
	pos      int
}

// NewSequence returns a Sequence that yields values, then fallback.
func NewSequence(fallback float64, values ...float64) *Sequence {
	return &Sequence{Values: values, Fallback: fallback}
}

// Fixed returns a Sequence that always yields v.
func Fixed(v float64) *Sequence {
	return &Sequence{Fallback: v}
}

func (s *Sequence) Float64() float64 {
	if s.pos < len(s.Values) {
		v := s.Values[s.pos]
		s.pos++
		return clampUnit(v)
	}
	return clampUnit(s.Fallback)
}

func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Consumed reports how many queued values have been drawn.
func (s *Sequence) Consumed() int {
	return s.pos
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v >= 1 {
		return 0.999999
	}
	return v
}
