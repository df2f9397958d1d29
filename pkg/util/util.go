package util

// Map applies f to every element of a, passing the element index.
func Map[A any, B any](a []A, f func(A, uint64) B) []B {
	out := make([]B, len(a))
	for i, v := range a {
		out[i] = f(v, uint64(i))
	}
	return out
}
