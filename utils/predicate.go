package utils

// IsIndexOf reports whether i addresses an element of s.
func IsIndexOf[S ~[]E, E any](s S, i int) bool {
	return 0 <= i && i < len(s)
}
