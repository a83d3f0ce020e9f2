package template_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/wippyai/ttcn-runtime/template"
	"github.com/wippyai/ttcn-runtime/wire"
)

// recordOf builds a record of integer template; nil entries become "*".
func recordOf(t *testing.T, elems ...*int64) *template.RecordOf[int64] {
	t.Helper()
	r := template.NewRecordOf(template.Integer)
	if err := r.SetSize(len(elems)); err != nil {
		t.Fatal(err)
	}
	for i, v := range elems {
		e, err := r.Elem(i)
		if err != nil {
			t.Fatal(err)
		}
		if v == nil {
			_ = e.SetKind(template.AnyOrOmit)
		} else {
			e.SetValue(*v)
		}
	}
	return r
}

func permute(t *testing.T, r *template.RecordOf[int64], start, end int) {
	t.Helper()
	if err := r.AddPermutation(start, end); err != nil {
		t.Fatal(err)
	}
}

func TestRecordOf_Match(t *testing.T) {
	star := (*int64)(nil)
	i := func(v int64) *int64 { return &v }

	plain := recordOf(t, i(1), i(2), i(3))
	tail := recordOf(t, i(1), star, i(4))

	inner := recordOf(t, i(1), i(2), i(3), i(4))
	permute(t, inner, 1, 2)

	withStar := recordOf(t, i(1), i(2), star, i(5))
	permute(t, withStar, 1, 2)

	twoBlocks := recordOf(t, i(1), i(2), i(3), i(4))
	permute(t, twoBlocks, 0, 1)
	permute(t, twoBlocks, 2, 3)

	duplicates := recordOf(t, i(7), i(7), i(8))
	permute(t, duplicates, 0, 2)

	tests := []struct {
		name   string
		tmpl   *template.RecordOf[int64]
		accept [][]int64
		reject [][]int64
	}{
		{"positional", plain, [][]int64{{1, 2, 3}}, [][]int64{{1, 3, 2}, {1, 2}, {1, 2, 3, 4}, nil}},
		{"star", tail, [][]int64{{1, 4}, {1, 2, 3, 4}}, [][]int64{{1, 2, 3}, {4, 1}}},
		{"permutation", inner, [][]int64{{1, 2, 3, 4}, {1, 3, 2, 4}}, [][]int64{{3, 1, 2, 4}, {1, 3, 3, 4}, {1, 2, 4, 3}}},
		{"permutation with star", withStar, [][]int64{{1, 2, 5}, {1, 9, 2, 5}, {1, 9, 8, 2, 5}}, [][]int64{{1, 9, 5}, {1, 5}}},
		{"two permutations", twoBlocks, [][]int64{{2, 1, 4, 3}, {1, 2, 3, 4}}, [][]int64{{3, 1, 2, 4}, {1, 3, 2, 4}}},
		{"multiset", duplicates, [][]int64{{7, 8, 7}, {8, 7, 7}}, [][]int64{{7, 8, 8}, {7, 7}}},
		{"empty", recordOf(t), [][]int64{{}, nil}, [][]int64{{1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range tt.accept {
				if !tt.tmpl.Match(v, false) {
					t.Errorf("%v rejected by %s", v, tt.tmpl)
				}
			}
			for _, v := range tt.reject {
				if tt.tmpl.Match(v, false) {
					t.Errorf("%v accepted by %s", v, tt.tmpl)
				}
			}
		})
	}
}

func TestRecordOf_MatchKinds(t *testing.T) {
	anyOfTwo := template.NewRecordOf(template.Integer)
	_ = anyOfTwo.SetKind(template.Any)
	_ = anyOfTwo.SetSingleLength(2)
	if !anyOfTwo.Match([]int64{5, 6}, false) || anyOfTwo.Match([]int64{5}, false) {
		t.Error("? length (2)")
	}

	omit := template.NewRecordOf(template.Integer)
	_ = omit.SetKind(template.Omit)
	if omit.Match(nil, false) || !omit.MatchOmit(false) || !omit.MatchOptional(nil, false) {
		t.Error("omit")
	}

	lists := template.NewRecordOf(template.Integer)
	_ = lists.SetList(template.ComplementedList, 1)
	item, _ := lists.ListItem(0)
	item.SetValues(1, 2)
	if lists.Match([]int64{1, 2}, false) || !lists.Match([]int64{2, 1}, false) {
		t.Error("complemented list")
	}
	if n, err := lists.ListLen(); err != nil || n != 1 {
		t.Errorf("ListLen: %d, %v", n, err)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("matching an unbound template must panic")
		}
	}()
	template.NewRecordOf(template.Integer).Match(nil, false)
}

func TestRecordOf_AddPermutation(t *testing.T) {
	r := template.NewRecordOf(template.Integer)
	if err := r.AddPermutation(0, 1); !errors.Is(err, errUsage) {
		t.Errorf("permutation on an unbound template: %v", err)
	}
	if r.Permutations() != nil {
		t.Error("unbound template has no permutations")
	}

	r.SetValues(1, 2, 3, 4, 5, 6)
	if err := r.AddPermutation(0, 2); err != nil {
		t.Fatal(err)
	}
	if err := r.AddPermutation(1, 4); !errors.Is(err, errOverlap) {
		t.Errorf("overlap: %v", err)
	}
	if err := r.AddPermutation(5, 3); !errors.Is(err, errInterval) {
		t.Errorf("invalid interval: %v", err)
	}
	if err := r.AddPermutation(3, 6); !errors.Is(err, errUsage) {
		t.Errorf("interval past the last element: %v", err)
	}
	if err := r.AddPermutation(3, 5); err != nil {
		t.Fatal(err)
	}
	if r.Permutations().Count() != 2 {
		t.Fatalf("count %d", r.Permutations().Count())
	}
}

func TestRecordOf_PermutationsIsDetached(t *testing.T) {
	r := template.NewRecordOf(template.Integer)
	r.SetValues(1, 2, 3)

	if err := r.Permutations().Add(1, 7); err != nil {
		t.Fatal(err)
	}
	if r.Permutations().Count() != 0 {
		t.Fatal("an interval added to the copy reached the template")
	}
	if !r.Match([]int64{1, 2, 3}, false) {
		t.Error("template must still match its own value")
	}

	b := wire.New()
	if err := r.EncodeText(b); err != nil {
		t.Fatal(err)
	}
	out := template.NewRecordOf(template.Integer)
	if err := out.DecodeText(wire.FromBytes(b.Bytes())); err != nil {
		t.Fatalf("decode: %v", err)
	}

	permute(t, r, 1, 2)
	r.ClearPermutations()
	if r.Permutations().Count() != 0 {
		t.Error("ClearPermutations left intervals behind")
	}
}

func TestRecordOf_IntervalsFollowSelection(t *testing.T) {
	r := template.NewRecordOf(template.Integer)
	r.SetValues(1, 2, 3)
	permute(t, r, 0, 1)

	if err := r.SetSize(5); err != nil {
		t.Fatal(err)
	}
	if r.Permutations().Count() != 1 {
		t.Error("growing must keep intervals")
	}
	if err := r.SetSize(1); err != nil {
		t.Fatal(err)
	}
	if r.Permutations().Count() != 0 {
		t.Error("shrinking must drop intervals that no longer fit")
	}

	permuteAll := template.NewRecordOf(template.Integer)
	permuteAll.SetValues(1, 2)
	permute(t, permuteAll, 0, 1)
	_ = permuteAll.SetKind(template.Any)
	if permuteAll.Permutations() != nil {
		t.Error("intervals survived a kind change")
	}
	_ = permuteAll.SetSize(2)
	if permuteAll.Permutations().Count() != 0 {
		t.Error("a fresh specific value must start without intervals")
	}
}

func TestRecordOf_Value(t *testing.T) {
	r := template.NewRecordOf(template.Integer)
	r.SetValues(1, 2)
	if !r.IsValue() {
		t.Error("IsValue")
	}
	v, err := r.Value()
	if err != nil || len(v) != 2 || v[1] != 2 {
		t.Fatalf("got %v, %v", v, err)
	}
	if err := r.CheckRestriction(template.RestrictionValue, false); err != nil {
		t.Error(err)
	}

	permute(t, r, 0, 1)
	if r.IsValue() {
		t.Error("a permutation is not a value")
	}
	if _, err := r.Value(); err == nil {
		t.Error("valueof with permutation")
	}

	e, _ := r.Elem(0)
	_ = e.SetKind(template.Any)
	if _, err := r.Elem(2); !errors.Is(err, errUsage) {
		t.Errorf("index overflow: %v", err)
	}
	if n, _ := r.Len(); n != 2 {
		t.Errorf("Len %d", n)
	}
}

func TestRecordOf_SizeOf(t *testing.T) {
	star := (*int64)(nil)
	i := func(v int64) *int64 { return &v }

	open := recordOf(t, i(1), i(2), star)
	openFixed := recordOf(t, i(1), i(2), star)
	_ = openFixed.SetSingleLength(4)
	closedRange := recordOf(t, i(1), i(2), i(3))
	_ = closedRange.SetMinLength(2)
	_ = closedRange.SetMaxLength(5)
	closedBad := recordOf(t, i(1), i(2), i(3))
	_ = closedBad.SetSingleLength(2)

	same := template.NewRecordOf(template.Integer)
	_ = same.SetList(template.ValueList, 2)
	a, _ := same.ListItem(0)
	a.SetValues(1, 2)
	b, _ := same.ListItem(1)
	b.SetValues(3, 4)

	differ := template.NewRecordOf(template.Integer)
	_ = differ.SetList(template.ValueList, 2)
	a, _ = differ.ListItem(0)
	a.SetValues(1)
	b, _ = differ.ListItem(1)
	b.SetValues(3, 4)

	ifPresent := recordOf(t, i(1))
	ifPresent.SetIfPresent()
	omit := template.NewRecordOf(template.Integer)
	_ = omit.SetKind(template.Omit)

	tests := []struct {
		name    string
		tmpl    *template.RecordOf[int64]
		want    int
		wantErr string
	}{
		{"values", recordOf(t, i(1), i(2), i(3)), 3, ""},
		{"open", open, 0, "no exact size"},
		{"open with length", openFixed, 4, ""},
		{"closed in range", closedRange, 3, ""},
		{"closed contradiction", closedBad, 0, "does not match the length restriction (2)"},
		{"list", same, 2, ""},
		{"list of different sizes", differ, 0, "different sizes"},
		{"ifpresent", ifPresent, 0, "ifpresent"},
		{"omit", omit, 0, "omit value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.tmpl.SizeOf()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("got %d, %v; want error containing %q", got, err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("got %d, %v", got, err)
			}
		})
	}
}

func TestRecordOf_String(t *testing.T) {
	star := (*int64)(nil)
	i := func(v int64) *int64 { return &v }

	r := recordOf(t, i(1), i(2), star, i(5))
	permute(t, r, 1, 2)
	if got := r.String(); got != "{ 1, permutation(2, *), 5 }" {
		t.Errorf("got %q", got)
	}

	wild := template.NewRecordOf(template.Integer)
	_ = wild.SetKind(template.Any)
	_ = wild.SetMinLength(1)
	wild.SetIfPresent()
	if got := wild.String(); got != "? length (1 .. infinity) ifpresent" {
		t.Errorf("got %q", got)
	}

	if got := template.NewRecordOf(template.Integer).String(); got != "<uninitialized template>" {
		t.Errorf("got %q", got)
	}
}
