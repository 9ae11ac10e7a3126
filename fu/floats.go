package fu

import "math"

func Mean(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	var c float64
	for _, x := range a {
		c += x
	}
	return c / float64(len(a))
}

/*
Mse is the mean squared difference between a and b
*/
func Mse(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	var c float64
	for i, x := range a {
		q := x - b[i]
		c += q * q
	}
	return c / float64(len(a))
}

/*
Mae is the mean absolute difference between a and b
*/
func Mae(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	var c float64
	for i, x := range a {
		c += math.Abs(x - b[i])
	}
	return c / float64(len(a))
}

// Sse is the sum of squared deviations from the mean
func Sse(a []float64) float64 {
	m := Mean(a)
	var c float64
	for _, x := range a {
		q := x - m
		c += q * q
	}
	return c
}

func Sub(a, b []float64) []float64 {
	r := make([]float64, len(a))
	for i, x := range a {
		r[i] = x - b[i]
	}
	return r
}

// Fnzi returns the first non-zero value
func Fnzi(a ...int) int {
	for _, x := range a {
		if x != 0 {
			return x
		}
	}
	return 0
}

// Fnzd returns the first non-zero value
func Fnzd(a ...float64) float64 {
	for _, x := range a {
		if x != 0 {
			return x
		}
	}
	return 0
}

func Maxi(a int, b ...int) int {
	for _, x := range b {
		if x > a {
			a = x
		}
	}
	return a
}

func Mini(a int, b ...int) int {
	for _, x := range b {
		if x < a {
			a = x
		}
	}
	return a
}

/*
Indmaxd returns index of the first maximal value, or -1 for an empty slice
*/
func Indmaxd(a []float64) int {
	j := -1
	for i, x := range a {
		if j < 0 || x > a[j] {
			j = i
		}
	}
	return j
}

/*
Limits returns min and max over all the slices padded by pad
*/
func Limits(pad float64, a ...[]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range a {
		for _, x := range s {
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
		}
	}
	if lo > hi {
		return -pad, pad
	}
	return lo - pad, hi + pad
}
