package algorithms

func bubbleSort(r *Recorder) {
	n := r.Len()
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-1-i; j++ {
			if r.Greater(j, j+1) {
				r.Swap(j, j+1)
				swapped = true
			}
		}
		r.Mark(n - 1 - i)
		if !swapped {
			break
		}
	}
}

func cocktailSort(r *Recorder) {
	start, end := 0, r.Len()-1
	swapped := true
	for swapped && start < end {
		swapped = false
		for i := start; i < end; i++ {
			if r.Greater(i, i+1) {
				r.Swap(i, i+1)
				swapped = true
			}
		}
		r.Mark(end)
		end--
		if !swapped {
			break
		}
		swapped = false
		for i := end - 1; i >= start; i-- {
			if r.Greater(i, i+1) {
				r.Swap(i, i+1)
				swapped = true
			}
		}
		r.Mark(start)
		start++
	}
}

func selectionSort(r *Recorder) {
	n := r.Len()
	for i := 0; i < n-1; i++ {
		min := i
		for j := i + 1; j < n; j++ {
			if r.Less(j, min) {
				min = j
			}
		}
		if min != i {
			r.Swap(i, min)
		}
		r.Mark(i)
	}
}

func insertionSort(r *Recorder) {
	for i := 1; i < r.Len(); i++ {
		for j := i; j > 0 && r.Less(j, j-1); j-- {
			r.Swap(j, j-1)
		}
	}
}

func shellSort(r *Recorder) {
	n := r.Len()
	for gap := n / 2; gap > 0; gap /= 2 {
		for i := gap; i < n; i++ {
			for j := i; j >= gap && r.Less(j, j-gap); j -= gap {
				r.Swap(j, j-gap)
			}
		}
	}
}

func mergeSort(r *Recorder) {
	mergeRange(r, 0, r.Len())
}

// mergeRange sorts [lo, hi).
func mergeRange(r *Recorder, lo, hi int) {
	if hi-lo < 2 {
		return
	}
	mid := lo + (hi-lo)/2
	mergeRange(r, lo, mid)
	mergeRange(r, mid, hi)

	// Rotate a[j] down to i with adjacent swaps; equal keys stay put so
	// the merge is stable.
	i, j := lo, mid
	for i < j && j < hi {
		if !r.Greater(i, j) {
			i++
			continue
		}
		for k := j; k > i; k-- {
			r.Swap(k-1, k)
		}
		i++
		j++
	}
}

func quickSort(r *Recorder) {
	quickRange(r, 0, r.Len()-1)
}

// quickRange sorts [lo, hi] with a Lomuto partition around a[hi].
func quickRange(r *Recorder, lo, hi int) {
	if lo > hi {
		return
	}
	if lo == hi {
		r.Mark(lo)
		return
	}
	i := lo
	for j := lo; j < hi; j++ {
		if r.Less(j, hi) {
			if i != j {
				r.Swap(i, j)
			}
			i++
		}
	}
	if i != hi {
		r.Swap(i, hi)
	}
	r.Mark(i)
	quickRange(r, lo, i-1)
	quickRange(r, i+1, hi)
}

func heapSort(r *Recorder) {
	n := r.Len()
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(r, i, n)
	}
	for end := n - 1; end > 0; end-- {
		r.Swap(0, end)
		r.Mark(end)
		siftDown(r, 0, end)
	}
}

func siftDown(r *Recorder, root, size int) {
	for {
		child := 2*root + 1
		if child >= size {
			return
		}
		if child+1 < size && r.Less(child, child+1) {
			child++
		}
		if !r.Less(root, child) {
			return
		}
		r.Swap(root, child)
		root = child
	}
}
