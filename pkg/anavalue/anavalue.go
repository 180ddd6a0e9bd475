// Package anavalue implements the anagram-value algebra (C2): an
// arbitrary-precision positive integer equal to the product of primes
// assigned to the classes of an encoded string.
//
// Properties relied upon throughout the system: order-independence
// (permutations share an AV), compositionality (AV(x+y) = AV(x)*AV(y)),
// containment via exact divisibility, and collision freedom by unique
// prime factorization. math/big.Int provides the exact arithmetic;
// see SPEC_FULL.md for why no third-party bignum library is used here.
package anavalue

import (
	"math/big"
)

// AV is an anagram value: an unbounded positive integer.
type AV struct {
	n *big.Int
}

// One is the AV of the empty string (product of zero primes).
func One() AV { return AV{n: big.NewInt(1)} }

// FromClasses computes the AV of an encoded string given the prime
// assigned to each class index present in the alphabet.
func FromClasses(classIndices []int, classPrimes []int64) AV {
	v := big.NewInt(1)
	for _, ci := range classIndices {
		v.Mul(v, big.NewInt(classPrimes[ci]))
	}
	return AV{n: v}
}

// FromClassCounts computes the AV from a multiset of class indices
// given as counts, e.g. {class: multiplicity}.
func FromClassCounts(counts map[int]int, classPrimes []int64) AV {
	v := big.NewInt(1)
	for ci, mult := range counts {
		if mult == 0 {
			continue
		}
		p := new(big.Int).Exp(big.NewInt(classPrimes[ci]), big.NewInt(int64(mult)), nil)
		v.Mul(v, p)
	}
	return AV{n: v}
}

// Mul returns a*b.
func Mul(a, b AV) AV {
	return AV{n: new(big.Int).Mul(a.n, b.n)}
}

// DivisibleBy reports whether a mod b == 0 (containment test).
func DivisibleBy(a, b AV) bool {
	if b.n.Sign() == 0 {
		return false
	}
	var m big.Int
	m.Mod(a.n, b.n)
	return m.Sign() == 0
}

// ExactDiv returns a/b, assuming b divides a exactly (the complement
// string's AV, per spec.md's containment invariant). Callers must
// check DivisibleBy first if b might not divide a.
func ExactDiv(a, b AV) AV {
	return AV{n: new(big.Int).Div(a.n, b.n)}
}

// Mod returns a mod b.
func Mod(a, b AV) AV {
	return AV{n: new(big.Int).Mod(a.n, b.n)}
}

// Eq reports whether a == b.
func Eq(a, b AV) bool { return a.n.Cmp(b.n) == 0 }

// Cmp returns -1, 0, or 1 as a<b, a==b, a>b.
func Cmp(a, b AV) int { return a.n.Cmp(b.n) }

// Key returns a string suitable for use as a map key (base-36 text of
// the underlying integer - compact and collision-free since it is a
// faithful serialization of the exact value).
func (a AV) Key() string { return a.n.Text(36) }

// String renders the decimal value, mainly for debug/index-dump output.
func (a AV) String() string { return a.n.String() }

// IsOne reports whether this is the AV of the empty string.
func (a AV) IsOne() bool { return a.n.Cmp(big1) == 0 }

var big1 = big.NewInt(1)

// PrimeFactorCount returns the number of prime factors of a, counted
// with multiplicity, restricted to the given candidate prime set. Used
// to bound deletion-enumeration depth (§4.5's "at most d_A - |deleted|
// prime factors" check) without needing full factorization.
func PrimeFactorCount(a AV, primes []int64) int {
	n := new(big.Int).Set(a.n)
	count := 0
	for _, p := range primes {
		if n.Cmp(big1) == 0 {
			break
		}
		bp := big.NewInt(p)
		for {
			q, r := new(big.Int), new(big.Int)
			q.DivMod(n, bp, r)
			if r.Sign() != 0 {
				break
			}
			n = q
			count++
		}
	}
	return count
}
