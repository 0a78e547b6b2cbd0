package dataprocessing

import (
	"salespulse/pkg/contracts/domain"
)

// OrderID is the identifier used for every distinct-order count
func OrderID(r domain.Record) string { return r.OrderID }

// SafeDivide returns n/d, or 0 when d is zero
func SafeDivide(n, d float64) float64 {
	if d == 0 {
		return 0
	}
	return n / d
}

// Filter returns the records matching keep
func Filter(records []domain.Record, keep func(domain.Record) bool) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// SumBy sums Amount per key. NaN amounts are skipped.
func SumBy[K comparable](records []domain.Record, key func(domain.Record) K) map[K]float64 {
	sums := make(map[K]float64)
	for _, r := range records {
		k := key(r)
		if _, ok := sums[k]; !ok {
			sums[k] = 0
		}
		if r.HasAmount() {
			sums[k] += r.Amount
		}
	}
	return sums
}

// CountDistinctBy counts distinct id values per key
func CountDistinctBy[K comparable](records []domain.Record, key func(domain.Record) K, id func(domain.Record) string) map[K]int {
	seen := make(map[K]map[string]struct{})
	for _, r := range records {
		k := key(r)
		ids, ok := seen[k]
		if !ok {
			ids = make(map[string]struct{})
			seen[k] = ids
		}
		ids[id(r)] = struct{}{}
	}

	counts := make(map[K]int, len(seen))
	for k, ids := range seen {
		counts[k] = len(ids)
	}
	return counts
}

// CountDistinct counts distinct id values over all records
func CountDistinct(records []domain.Record, id func(domain.Record) string) int {
	ids := make(map[string]struct{})
	for _, r := range records {
		ids[id(r)] = struct{}{}
	}
	return len(ids)
}

type pair[A, B comparable] struct {
	a A
	b B
}

type triple[A, B, C comparable] struct {
	a A
	b B
	c C
}

// ConditionalProbability computes, for every outer key, the distinct ids in
// outer∩inner divided by the distinct ids in outer.
func ConditionalProbability[O, I comparable](records []domain.Record, outer func(domain.Record) O, inner func(domain.Record) I, id func(domain.Record) string) map[O]map[I]float64 {
	outerCounts := CountDistinctBy(records, outer, id)
	jointCounts := CountDistinctBy(records, func(r domain.Record) pair[O, I] {
		return pair[O, I]{outer(r), inner(r)}
	}, id)

	result := make(map[O]map[I]float64, len(outerCounts))
	for k, n := range jointCounts {
		probs, ok := result[k.a]
		if !ok {
			probs = make(map[I]float64)
			result[k.a] = probs
		}
		probs[k.b] = SafeDivide(float64(n), float64(outerCounts[k.a]))
	}
	return result
}

// NestedConditionalProbability is the three-level form of
// ConditionalProbability: the denominator is the distinct ids in outer∩middle.
func NestedConditionalProbability[O, M, I comparable](records []domain.Record, outer func(domain.Record) O, middle func(domain.Record) M, inner func(domain.Record) I, id func(domain.Record) string) map[O]map[M]map[I]float64 {
	partCounts := CountDistinctBy(records, func(r domain.Record) pair[O, M] {
		return pair[O, M]{outer(r), middle(r)}
	}, id)
	jointCounts := CountDistinctBy(records, func(r domain.Record) triple[O, M, I] {
		return triple[O, M, I]{outer(r), middle(r), inner(r)}
	}, id)

	result := make(map[O]map[M]map[I]float64)
	for k, n := range jointCounts {
		months, ok := result[k.a]
		if !ok {
			months = make(map[M]map[I]float64)
			result[k.a] = months
		}
		probs, ok := months[k.b]
		if !ok {
			probs = make(map[I]float64)
			months[k.b] = probs
		}
		probs[k.c] = SafeDivide(float64(n), float64(partCounts[pair[O, M]{k.a, k.b}]))
	}
	return result
}

// AveragePerDate divides revenue per key by the number of distinct calendar
// dates contributing to that key
func AveragePerDate[K comparable](records []domain.Record, key func(domain.Record) K) map[K]float64 {
	sums := SumBy(records, key)
	dates := CountDistinctBy(records, key, func(r domain.Record) string { return r.Date })

	avg := make(map[K]float64, len(sums))
	for k, sum := range sums {
		avg[k] = SafeDivide(sum, float64(dates[k]))
	}
	return avg
}
