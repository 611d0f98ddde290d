package algorithms

type Complexity struct {
	Best    string `json:"best" yaml:"best"`
	Average string `json:"average" yaml:"average"`
	Worst   string `json:"worst" yaml:"worst"`
}

// Info describes an algorithm for the info panel.
type Info struct {
	Name            string     `json:"name" yaml:"name"`
	Description     string     `json:"description" yaml:"description"`
	TimeComplexity  Complexity `json:"time_complexity" yaml:"time_complexity"`
	SpaceComplexity string     `json:"space_complexity" yaml:"space_complexity"`
	Stable          bool       `json:"stable" yaml:"stable"`
	Steps           []string   `json:"steps" yaml:"steps"`
	Color           string     `json:"color" yaml:"color"`
}

const DefaultColor = "#4C51BF"

var builtinInfo = map[string]Info{
	"bubble": {
		Name:            "Bubble Sort",
		Description:     "Repeatedly steps through the list, compares adjacent elements and swaps them if they are in the wrong order.",
		TimeComplexity:  Complexity{Best: "O(n)", Average: "O(n²)", Worst: "O(n²)"},
		SpaceComplexity: "O(1)",
		Stable:          true,
		Steps: []string{
			"Compare each pair of adjacent elements",
			"Swap them if the left one is larger",
			"After each pass the largest unsorted element settles at the end",
			"Stop early when a pass makes no swaps",
		},
		Color: "#4C51BF",
	},
	"cocktail": {
		Name:            "Cocktail Shaker Sort",
		Description:     "A bidirectional bubble sort that alternates forward and backward passes.",
		TimeComplexity:  Complexity{Best: "O(n)", Average: "O(n²)", Worst: "O(n²)"},
		SpaceComplexity: "O(1)",
		Stable:          true,
		Steps: []string{
			"Bubble the largest element to the end with a forward pass",
			"Bubble the smallest element to the front with a backward pass",
			"Shrink both ends and repeat until no swaps occur",
		},
		Color: "#805AD5",
	},
	"selection": {
		Name:            "Selection Sort",
		Description:     "Divides the list into a sorted prefix and an unsorted suffix, repeatedly selecting the smallest remaining element.",
		TimeComplexity:  Complexity{Best: "O(n²)", Average: "O(n²)", Worst: "O(n²)"},
		SpaceComplexity: "O(1)",
		Stable:          false,
		Steps: []string{
			"Find the minimum of the unsorted suffix",
			"Swap it with the first unsorted element",
			"Grow the sorted prefix by one",
		},
		Color: "#D53F8C",
	},
	"insertion": {
		Name:            "Insertion Sort",
		Description:     "Builds the sorted list one element at a time by inserting each new element into its place.",
		TimeComplexity:  Complexity{Best: "O(n)", Average: "O(n²)", Worst: "O(n²)"},
		SpaceComplexity: "O(1)",
		Stable:          true,
		Steps: []string{
			"Take the next element from the unsorted part",
			"Swap it left while it is smaller than its neighbour",
			"Repeat until every element has been inserted",
		},
		Color: "#38A169",
	},
	"shell": {
		Name:            "Shell Sort",
		Description:     "Generalizes insertion sort by comparing elements a gap apart and shrinking the gap each round.",
		TimeComplexity:  Complexity{Best: "O(n log n)", Average: "O(n^1.5)", Worst: "O(n²)"},
		SpaceComplexity: "O(1)",
		Stable:          false,
		Steps: []string{
			"Start with a gap of half the array length",
			"Insertion-sort elements that are gap apart",
			"Halve the gap and repeat until the gap is 1",
		},
		Color: "#DD6B20",
	},
	"merge": {
		Name:            "Merge Sort",
		Description:     "Divide and conquer: split the array in halves, sort each half and merge the sorted halves.",
		TimeComplexity:  Complexity{Best: "O(n log n)", Average: "O(n log n)", Worst: "O(n log n)"},
		SpaceComplexity: "O(n)",
		Stable:          true,
		Steps: []string{
			"Split the array into two halves",
			"Recursively sort both halves",
			"Merge the halves by repeatedly taking the smaller head element",
		},
		Color: "#3182CE",
	},
	"quick": {
		Name:            "Quick Sort",
		Description:     "Divide and conquer: partition the array around a pivot and sort the partitions recursively.",
		TimeComplexity:  Complexity{Best: "O(n log n)", Average: "O(n log n)", Worst: "O(n²)"},
		SpaceComplexity: "O(log n)",
		Stable:          false,
		Steps: []string{
			"Pick the last element as the pivot",
			"Move every element smaller than the pivot to its left",
			"Place the pivot in its final position",
			"Recursively sort the left and right partitions",
		},
		Color: "#E53E3E",
	},
	"heap": {
		Name:            "Heap Sort",
		Description:     "Builds a max-heap from the array and repeatedly moves the maximum to the end.",
		TimeComplexity:  Complexity{Best: "O(n log n)", Average: "O(n log n)", Worst: "O(n log n)"},
		SpaceComplexity: "O(1)",
		Stable:          false,
		Steps: []string{
			"Build a max-heap from the input",
			"Swap the root with the last element of the heap",
			"Shrink the heap and sift the new root down",
			"Repeat until the heap is empty",
		},
		Color: "#D69E2E",
	},
}
