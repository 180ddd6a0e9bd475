package anavalue

import "testing"

func TestOrderIndependence(t *testing.T) {
	primes := Primes(5)
	a := FromClasses([]int{0, 1, 2}, primes)
	b := FromClasses([]int{2, 1, 0}, primes)
	if !Eq(a, b) {
		t.Fatalf("permutations should share AV: %s vs %s", a, b)
	}
}

func TestCompositionality(t *testing.T) {
	primes := Primes(5)
	x := FromClasses([]int{0, 1}, primes)
	y := FromClasses([]int{2}, primes)
	combined := FromClasses([]int{0, 1, 2}, primes)
	if !Eq(Mul(x, y), combined) {
		t.Fatalf("AV(x)*AV(y) should equal AV(x+y)")
	}
}

func TestContainment(t *testing.T) {
	primes := Primes(5)
	a := FromClasses([]int{0, 1, 2}, primes) // superset
	b := FromClasses([]int{0, 2}, primes)    // subset
	if !DivisibleBy(a, b) {
		t.Fatalf("expected a to be divisible by b")
	}
	c := FromClasses([]int{3}, primes)
	if DivisibleBy(a, c) {
		t.Fatalf("a should not be divisible by an unrelated class")
	}
	complement := ExactDiv(a, b)
	if !Eq(complement, FromClasses([]int{1}, primes)) {
		t.Fatalf("a/b should equal the complement class AV")
	}
}

func TestCollisionFreedom(t *testing.T) {
	primes := Primes(5)
	a := FromClasses([]int{0, 0, 1}, primes)
	b := FromClasses([]int{0, 1, 1}, primes)
	if Eq(a, b) {
		t.Fatalf("distinct multisets must not collide")
	}
}

func TestEnumerateDeletionsCount(t *testing.T) {
	primes := Primes(5)
	classIndices := []int{0, 0, 1}
	dels := EnumerateDeletions(classIndices, primes, 1)
	// distinct multisubsets of size 0 or 1: {} and {0} (either occurrence
	// of class 0 collapses to one choice) and {1} => 3 distinct results.
	if len(dels) != 3 {
		t.Fatalf("expected 3 distinct deletions, got %d", len(dels))
	}
	full := FromClasses(classIndices, primes)
	seenFull := false
	for _, d := range dels {
		if d.Deleted == 0 && Eq(d.Remaining, full) {
			seenFull = true
		}
	}
	if !seenFull {
		t.Fatalf("expected the zero-deletion result to equal the full AV")
	}
}

func TestPrimeFactorCount(t *testing.T) {
	primes := Primes(5)
	a := FromClasses([]int{0, 1, 2}, primes)
	if got := PrimeFactorCount(a, primes); got != 3 {
		t.Fatalf("expected 3 prime factors, got %d", got)
	}
}
