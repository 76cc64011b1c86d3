package artex

// Strategy is one named way of extracting a value from a source.
// Extract returns false when it finds nothing usable.
type Strategy[In, Out any] struct {
	Name    string
	Extract func(In) (Out, bool)
}

// FirstOf runs the strategies in order and returns the first value found,
// together with the name of the strategy that produced it.
func FirstOf[In, Out any](in In, chain []Strategy[In, Out]) (Out, string, bool) {
	for _, s := range chain {
		if v, ok := s.Extract(in); ok {
			return v, s.Name, true
		}
	}
	var zero Out
	return zero, "", false
}
