// Package testutil provides factory builders shared by the apireg test
// suites.
package testutil

import "github.com/apireg/apireg"

// Const returns a factory producing a fixed value with no dependencies.
func Const[T any](ref apireg.Ref[T], value T) apireg.Factory {
	return apireg.Provide(ref, func(apireg.Values) (T, error) {
		return value, nil
	})
}

// Sum returns a factory producing the sum of its integer dependencies
// plus offset. Each dependency's local name is its identifier.
func Sum(ref apireg.Ref[int], offset int, deps ...apireg.Ref[int]) apireg.Factory {
	uses := make([]apireg.Dependency, len(deps))
	for i, d := range deps {
		uses[i] = apireg.Use(d.ID(), d)
	}

	return apireg.Provide(ref, func(v apireg.Values) (int, error) {
		total := offset
		for _, d := range deps {
			total += apireg.MustGet[int](v, d.ID())
		}
		return total, nil
	}, uses...)
}

// Failing returns a factory whose construction function always returns
// err.
func Failing[T any](ref apireg.Ref[T], err error) apireg.Factory {
	return apireg.Provide(ref, func(apireg.Values) (T, error) {
		var zero T
		return zero, err
	})
}

// Panicking returns a factory whose construction function panics with
// value.
func Panicking[T any](ref apireg.Ref[T], value any) apireg.Factory {
	return apireg.Provide(ref, func(apireg.Values) (T, error) {
		panic(value)
	})
}

// Permutations returns every permutation of indices 0..n-1 using Heap's
// algorithm. Intended for exhaustive batch-order tests; n above 7 or so
// is a bad idea.
func Permutations(n int) [][]int {
	base := make([]int, n)
	for i := range base {
		base[i] = i
	}

	var result [][]int
	var generate func(k int)
	generate = func(k int) {
		if k == 1 {
			perm := make([]int, n)
			copy(perm, base)
			result = append(result, perm)
			return
		}

		for i := 0; i < k; i++ {
			generate(k - 1)
			if k%2 == 0 {
				base[i], base[k-1] = base[k-1], base[i]
			} else {
				base[0], base[k-1] = base[k-1], base[0]
			}
		}
	}
	generate(n)

	return result
}
