package algorithms

import (
	"fmt"
	"math/rand"
	"slices"
)

const (
	MinValue = 5
	MaxValue = 100
)

// RandomArray returns size values drawn uniformly from [MinValue, MaxValue].
func RandomArray(size int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	values := make([]int, size)
	for i := range values {
		values[i] = MinValue + rng.Intn(MaxValue-MinValue+1)
	}
	return values
}

// Shapes lists the array shapes accepted by Shape.
var Shapes = []string{"random", "sorted", "reversed", "nearly_sorted", "few_unique"}

// Shape builds an input array of the given shape.
func Shape(name string, size int, seed int64) ([]int, error) {
	if size < 0 {
		return nil, fmt.Errorf("algorithms: negative array size %d", size)
	}
	rng := rand.New(rand.NewSource(seed))
	values := RandomArray(size, seed)

	switch name {
	case "", "random":
		return values, nil
	case "sorted":
		slices.Sort(values)
		return values, nil
	case "reversed":
		slices.Sort(values)
		slices.Reverse(values)
		return values, nil
	case "nearly_sorted":
		slices.Sort(values)
		swaps := size / 10
		if swaps < 1 && size > 1 {
			swaps = 1
		}
		for k := 0; k < swaps; k++ {
			i := rng.Intn(size - 1)
			values[i], values[i+1] = values[i+1], values[i]
		}
		return values, nil
	case "few_unique":
		levels := []int{20, 45, 70, 95}
		for i := range values {
			values[i] = levels[rng.Intn(len(levels))]
		}
		return values, nil
	}
	return nil, fmt.Errorf("algorithms: unknown array shape %q", name)
}
