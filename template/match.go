package template

// maxMatching returns the size of a maximum matching between left and
// right vertices using augmenting paths.
func maxMatching(left, right int, edge func(i, j int) bool) int {
	adj := make([][]int, left)
	for i := range adj {
		for j := 0; j < right; j++ {
			if edge(i, j) {
				adj[i] = append(adj[i], j)
			}
		}
	}

	owner := make([]int, right)
	for j := range owner {
		owner[j] = -1
	}
	var augment func(i int, seen []bool) bool
	augment = func(i int, seen []bool) bool {
		for _, j := range adj[i] {
			if seen[j] {
				continue
			}
			seen[j] = true
			if owner[j] < 0 || augment(owner[j], seen) {
				owner[j] = i
				return true
			}
		}
		return false
	}

	n := 0
	for i := 0; i < left; i++ {
		if augment(i, make([]bool, right)) {
			n++
		}
	}
	return n
}

// isAnyOrNone reports whether an element template is the "*" element that
// absorbs zero or more values of a sequence.
func isAnyOrNone[T any](t *Scalar[T]) bool {
	w, ok := t.sel.(wildcard)
	return ok && w.k == AnyOrOmit
}

// splitOpen separates the "*" elements from the ones that must each
// match exactly one value.
func splitOpen[T any](elems []*Scalar[T]) (fixed []*Scalar[T], open bool) {
	fixed = make([]*Scalar[T], 0, len(elems))
	for _, e := range elems {
		if isAnyOrNone(e) {
			open = true
			continue
		}
		fixed = append(fixed, e)
	}
	return fixed, open
}

// coverAll reports whether every template in fixed can be assigned a
// distinct value of vals.
func coverAll[T any](fixed []*Scalar[T], vals []T, legacy bool) bool {
	if len(fixed) > len(vals) {
		return false
	}
	m := maxMatching(len(fixed), len(vals), func(i, j int) bool {
		return fixed[i].Match(vals[j], legacy)
	})
	return m == len(fixed)
}

type setMode uint8

const (
	setExact setMode = iota
	setSuperset
	setSubset
)

// matchUnordered matches vals against elems ignoring order.
func matchUnordered[T any](elems []*Scalar[T], vals []T, legacy bool, mode setMode) bool {
	fixed, open := splitOpen(elems)
	switch mode {
	case setSuperset:
		return coverAll(fixed, vals, legacy)
	case setSubset:
		if open {
			return true
		}
		m := maxMatching(len(vals), len(fixed), func(i, j int) bool {
			return fixed[j].Match(vals[i], legacy)
		})
		return m == len(vals)
	}
	if !open && len(fixed) != len(vals) {
		return false
	}
	return coverAll(fixed, vals, legacy)
}

// sequenceMatcher matches a record of value against element templates
// positionally, except inside permutation intervals where a contiguous run
// of values is matched to the interval's elements in any order.
type sequenceMatcher[T any] struct {
	elems  []*Scalar[T]
	perms  *Permutations
	vals   []T
	memo   map[[2]int]bool
	legacy bool
}

func matchSequence[T any](elems []*Scalar[T], perms *Permutations, vals []T, legacy bool) bool {
	m := &sequenceMatcher[T]{
		elems:  elems,
		perms:  perms,
		vals:   vals,
		memo:   make(map[[2]int]bool),
		legacy: legacy,
	}
	return m.match(0, 0)
}

func (m *sequenceMatcher[T]) match(ti, vi int) bool {
	key := [2]int{ti, vi}
	if r, ok := m.memo[key]; ok {
		return r
	}
	r := m.step(ti, vi)
	m.memo[key] = r
	return r
}

func (m *sequenceMatcher[T]) step(ti, vi int) bool {
	if ti == len(m.elems) {
		return vi == len(m.vals)
	}
	if iv, ok := m.perms.startingAt(ti); ok {
		return m.block(iv, vi)
	}
	e := m.elems[ti]
	if isAnyOrNone(e) {
		if m.match(ti+1, vi) {
			return true
		}
		return vi < len(m.vals) && m.match(ti, vi+1)
	}
	return vi < len(m.vals) && e.Match(m.vals[vi], m.legacy) && m.match(ti+1, vi+1)
}

// block tries every run length the interval can consume starting at vi.
func (m *sequenceMatcher[T]) block(iv Interval, vi int) bool {
	fixed, open := splitOpen(m.elems[iv.Start : iv.End+1])
	longest := len(fixed)
	if open {
		longest = len(m.vals) - vi
	}
	for n := len(fixed); n <= longest && vi+n <= len(m.vals); n++ {
		if coverAll(fixed, m.vals[vi:vi+n], m.legacy) && m.match(iv.End+1, vi+n) {
			return true
		}
	}
	return false
}
