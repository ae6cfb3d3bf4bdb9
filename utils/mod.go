package utils

// FindIndex returns the position of item in slice, or -1 when it is absent.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// AppendUnique appends item unless slice already holds it. The bool reports whether it was added.
func AppendUnique[T comparable](slice []T, item T) ([]T, bool) {
	if FindIndex(slice, item) >= 0 {
		return slice, false
	}
	return append(slice, item), true
}
