package template

import (
	"github.com/wippyai/ttcn-runtime/errors"
)

// Interval is an inclusive range of template element indices whose
// elements may match the value in any order.
type Interval struct {
	Start, End int
}

// Size returns the number of template elements covered.
func (iv Interval) Size() int {
	return iv.End - iv.Start + 1
}

// Permutations is the ordered list of permutation intervals of a record
// of template. Intervals are kept strictly increasing and disjoint; Add
// enforces it, so they must be supplied left to right.
type Permutations struct {
	intervals []Interval
}

// Add appends the interval start..end.
func (p *Permutations) Add(start, end int) error {
	if start > end {
		return errors.InvalidInterval(start, end)
	}
	if start < 0 {
		return errors.New(errors.PhaseTemplate, errors.KindInvalidInterval).
			Detail("invalid permutation interval: negative start index (%d)", start).
			Value([2]int{start, end}).
			Build()
	}
	if n := len(p.intervals); n > 0 && start <= p.intervals[n-1].End {
		return errors.Overlap(n + 1)
	}
	p.intervals = append(p.intervals, Interval{start, end})
	return nil
}

func (p *Permutations) Count() int {
	return len(p.intervals)
}

func (p *Permutations) Start(i int) int { return p.intervals[i].Start }

func (p *Permutations) End(i int) int { return p.intervals[i].End }

func (p *Permutations) Size(i int) int { return p.intervals[i].Size() }

// StartsAt reports whether an interval starts at element index.
func (p *Permutations) StartsAt(index int) bool {
	for _, iv := range p.intervals {
		if iv.Start == index {
			return true
		}
	}
	return false
}

// EndsAt reports whether an interval ends at element index.
func (p *Permutations) EndsAt(index int) bool {
	for _, iv := range p.intervals {
		if iv.End == index {
			return true
		}
	}
	return false
}

func (p *Permutations) Clear() {
	p.intervals = nil
}

// Intervals returns a copy of the stored intervals.
func (p *Permutations) Intervals() []Interval {
	return append([]Interval(nil), p.intervals...)
}

// startingAt returns the interval starting at index.
func (p *Permutations) startingAt(index int) (Interval, bool) {
	for _, iv := range p.intervals {
		if iv.Start == index {
			return iv, true
		}
	}
	return Interval{}, false
}
