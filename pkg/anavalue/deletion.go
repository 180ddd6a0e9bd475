package anavalue

import "sort"

// Deletion is one result of enumerating bounded deletions from an
// encoded string: the AV of what remains after deleting some
// multisubset of classes, and how many classes were deleted.
type Deletion struct {
	Remaining AV
	Deleted   int
}

// EnumerateDeletions produces, for an encoded string's class indices,
// one Deletion per distinct multisubset of size 0..maxDepth removed.
// Duplicate class indices collapse into a single delete choice of
// multiplicity, per spec.md's C2 definition: two deletions that remove
// the same number of occurrences of the same classes yield one result,
// not one per ordering.
//
// This mirrors original_source/src/iterators.rs's DeletionIterator /
// RecurseDeletionIterator, flattened into a single pass since Go has
// no lazy generator idiom as convenient as Rust's Iterator trait; the
// visited-dedup behavior there is structural here (each distinct
// per-class delete count is visited exactly once, not tracked in a
// side set).
func EnumerateDeletions(classIndices []int, classPrimes []int64, maxDepth int) []Deletion {
	if maxDepth < 0 {
		maxDepth = 0
	}
	counts := map[int]int{}
	for _, c := range classIndices {
		counts[c]++
	}
	classes := make([]int, 0, len(counts))
	for c := range counts {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	var out []Deletion
	chosen := make([]int, len(classes))

	var rec func(i, deletedSoFar int)
	rec = func(i, deletedSoFar int) {
		if i == len(classes) {
			remaining := map[int]int{}
			for idx, c := range classes {
				r := counts[c] - chosen[idx]
				if r > 0 {
					remaining[c] = r
				}
			}
			out = append(out, Deletion{
				Remaining: FromClassCounts(remaining, classPrimes),
				Deleted:   deletedSoFar,
			})
			return
		}
		c := classes[i]
		maxHere := counts[c]
		if rem := maxDepth - deletedSoFar; maxHere > rem {
			maxHere = rem
		}
		for d := 0; d <= maxHere; d++ {
			chosen[i] = d
			rec(i+1, deletedSoFar+d)
		}
		chosen[i] = 0
	}
	rec(0, 0)
	return out
}
