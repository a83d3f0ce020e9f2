package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseDecode,
				Kind:     KindCodec,
				Category: "TAG",
				Path:     []string{"msg", "header", "id"},
				TypeName: "integer",
				Detail:   "invalid tag",
			},
			contains: []string{"[decode]", "codec(TAG)", "msg.header.id", "type integer", "invalid tag"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseTemplate,
				Kind:  KindUsage,
			},
			contains: []string{"[template]", "usage"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseConfig,
				Kind:   KindInvalidInput,
				Detail: "bad settings",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[config]", "invalid_input", "bad settings", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PhaseDecode, KindInvalidData, cause, "decode message")

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not walk to cause")
	}
}

func TestError_Is(t *testing.T) {
	err := Overlap(2)

	if !errors.Is(err, &Error{Phase: PhaseTemplate, Kind: KindOverlap}) {
		t.Error("should match same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseTemplate, Kind: KindInvalidInterval}) {
		t.Error("should not match different kind")
	}
	if errors.Is(err, &Error{Phase: PhaseDecode, Kind: KindOverlap}) {
		t.Error("should not match different phase")
	}

	var target *Error
	if !errors.As(err, &target) || target.Value != 2 {
		t.Errorf("errors.As: got %+v", target)
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseDecode, KindIncomplete).
		Path("a", "b").
		TypeName("integer").
		Category("INCOMPL_MSG").
		Value(7).
		Detail("stopped after %d bytes", 3).
		Build()

	if err.Phase != PhaseDecode || err.Kind != KindIncomplete {
		t.Fatalf("phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if err.Detail != "stopped after 3 bytes" {
		t.Errorf("detail: %q", err.Detail)
	}
	if strings.Join(err.Path, ".") != "a.b" {
		t.Errorf("path: %v", err.Path)
	}
	if err.TypeName != "integer" || err.Category != "INCOMPL_MSG" || err.Value != 7 {
		t.Errorf("fields: %+v", err)
	}

	plain := New(PhaseConfig, KindInvalidInput).Detail("no arguments").Build()
	if plain.Detail != "no arguments" {
		t.Errorf("detail without args: %q", plain.Detail)
	}
	pct := New(PhaseConfig, KindInvalidInput).Detail("%d%% done", 100).Build()
	if pct.Detail != "100% done" {
		t.Errorf("formatted detail: %q", pct.Detail)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err   *Error
		phase Phase
		kind  Kind
		text  string
	}{
		{Usage("integer", "matching with an uninitialized template"), PhaseTemplate, KindUsage, "uninitialized"},
		{Internal("frame %d is not on top", 2), PhaseInternal, KindInternal, "frame 2"},
		{InvalidInterval(5, 3), PhaseTemplate, KindInvalidInterval, "(5) is greater than end index (3)"},
		{Overlap(3), PhaseTemplate, KindOverlap, "3rd permutation"},
		{LengthRestriction("charstring", "max %d < min %d", 1, 2), PhaseTemplate, KindLengthRestriction, "max 1 < min 2"},
		{UnknownSelection("boolean", 99), PhaseDecode, KindUnknownSelection, "(99)"},
		{Unsupported(PhaseEncode, "decmatch"), PhaseEncode, KindUnsupported, "decmatch"},
		{InvalidInput(PhaseConfig, "empty"), PhaseConfig, KindInvalidInput, "empty"},
		{NotFound(PhaseConfig, "error type", "FOO"), PhaseConfig, KindNotFound, `"FOO"`},
		{Codec(PhaseDecode, "TAG", "bad tag"), PhaseDecode, KindCodec, "bad tag"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if tt.err.Phase != tt.phase || tt.err.Kind != tt.kind {
				t.Fatalf("got %s/%s, want %s/%s", tt.err.Phase, tt.err.Kind, tt.phase, tt.kind)
			}
			if !strings.Contains(tt.err.Error(), tt.text) {
				t.Errorf("%q does not contain %q", tt.err.Error(), tt.text)
			}
		})
	}
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 101: "101st", 111: "111th",
	}
	for n, want := range tests {
		if got := Ordinal(n); got != want {
			t.Errorf("Ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}
