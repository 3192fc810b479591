package core

// EnsureLen returns a slice of length n, backed by buf when its capacity
// allows and freshly allocated otherwise. Contents are unspecified; callers
// overwrite them.
func EnsureLen(buf []float64, n int) []float64 {
	switch {
	case n <= 0:
		return buf[:0]
	case cap(buf) >= n:
		return buf[:n]
	}
	return make([]float64, n)
}
