package atom

// Toggle flips a boolean cell and returns the new value.
func Toggle(c Cell[bool]) bool {
	var out bool
	c.Update(func(v bool) bool {
		out = !v
		return out
	})
	return out
}

// Add shifts a numeric cell by delta and returns the new value.
func Add(c Cell[float64], delta float64) float64 {
	var out float64
	c.Update(func(v float64) float64 {
		out = v + delta
		return out
	})
	return out
}

// Increment adds one to a numeric cell and returns the new value.
func Increment(c Cell[float64]) float64 {
	return Add(c, 1)
}

// Decrement subtracts one from a numeric cell and returns the new value.
func Decrement(c Cell[float64]) float64 {
	return Add(c, -1)
}
