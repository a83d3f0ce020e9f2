// Package template implements the matching templates of the test language.
//
// A template holds exactly one selection (a Kind and its payload) plus an
// independent ifpresent modifier:
//
//	SpecificValue     5, "abc", { 1, 2, 3 }
//	Omit, Any, AnyOrOmit   omit, ?, *
//	ValueList         (1, 2, 3)
//	ComplementedList  complement(1, 2)
//	ValueRange        (1 .. 10), (!0.0 .. infinity)
//	StringPattern     pattern "ab?d*"
//	SupersetMatch     superset(1, 2)
//	SubsetMatch       subset(1, 2)
//	DecodeMatch       decmatch T
//
// Setting a selection releases the previous payload, so a value list's
// items or a record of template's permutation intervals never outlive a
// kind change. The length restriction is dropped as well and is set after
// the selection.
//
// Scalar templates are generic over Traits; Integer, Float, Boolean,
// Charstring and Octetstring are provided. RecordOf adds permutation
// intervals, matched as unordered blocks by a bipartite assignment; SetOf
// matches without regard to order.
//
//	t := template.NewRecordOf(template.Integer)
//	t.SetValues(1, 2, 3, 4)
//	_ = t.AddPermutation(1, 2)
//	t.Match([]int64{1, 3, 2, 4}, false) // true
//
// Matching an uninitialized template panics with an *errors.Error of kind
// usage. Configuration mistakes are returned as errors.
package template
