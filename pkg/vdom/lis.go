package vdom

// LongestIncreasingSubsequence returns the indices of one longest strictly
// increasing subsequence of arr. Zero entries mark positions without a
// source and never take part in the sequence.
//
// It runs in O(n log n): tails holds, for every length, the index of the
// smallest tail seen so far and prev links each index to its predecessor.
func LongestIncreasingSubsequence(arr []int) []int {
	prev := make([]int, len(arr))
	tails := make([]int, 0, len(arr))

	for i, v := range arr {
		if v == 0 {
			continue
		}
		if n := len(tails); n == 0 || arr[tails[n-1]] < v {
			if n > 0 {
				prev[i] = tails[n-1]
			}
			tails = append(tails, i)
			continue
		}

		lo, hi := 0, len(tails)-1
		for lo < hi {
			mid := (lo + hi) / 2
			if arr[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if v < arr[tails[lo]] {
			if lo > 0 {
				prev[i] = tails[lo-1]
			}
			tails[lo] = i
		}
	}

	n := len(tails)
	if n == 0 {
		return tails
	}
	last := tails[n-1]
	for k := n - 1; k >= 0; k-- {
		tails[k] = last
		last = prev[last]
	}
	return tails
}
