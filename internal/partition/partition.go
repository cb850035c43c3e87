// Package partition splits a point index range into contiguous shares for
// concurrent workers.
package partition

// Range is a half-open index range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range contains no indices.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

// Split divides [0, m) into w contiguous ranges of m/w indices each.
// The final range absorbs the remainder of the integer division, so the
// ranges are disjoint and cover [0, m) exactly once. When w > m every range
// but the last is empty.
//
// Split returns nil if m < 0 or w <= 0.
func Split(m, w int) []Range {
	if m < 0 || w <= 0 {
		return nil
	}

	per := m / w
	ranges := make([]Range, w)
	for i := range ranges {
		ranges[i] = Range{
			Start: per * i,
			End:   min(per*(i+1), m),
		}
	}
	ranges[w-1].End = m

	return ranges
}
