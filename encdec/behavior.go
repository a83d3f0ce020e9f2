package encdec

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/ttcn-runtime/errors"
)

// ErrorType classifies encode/decode failures. All is only meaningful
// for bulk configuration.
type ErrorType int

const (
	All ErrorType = iota
	Unbound
	IncompleteAny
	EncodeEnum
	IncompleteMessage
	LengthForm
	InvalidMessage
	Representation
	Constraint
	Tag
	Superfluous
	Extension
	DecodeEnum
	DuplicateField
	MissingField
	OpenType
	UniversalString
	Length
	Sign
	IncompatibleOrder
	Token
	LogMatching
	FloatTruncation
	FloatNaN
	OmittedTag
	NegativeTestConflict

	numErrorTypes
)

var errorTypeNames = [numErrorTypes]string{
	All:                  "ALL",
	Unbound:              "UNBOUND",
	IncompleteAny:        "INCOMPL_ANY",
	EncodeEnum:           "ENC_ENUM",
	IncompleteMessage:    "INCOMPL_MSG",
	LengthForm:           "LEN_FORM",
	InvalidMessage:       "INVAL_MSG",
	Representation:       "REPR",
	Constraint:           "CONSTRAINT",
	Tag:                  "TAG",
	Superfluous:          "SUPERFL",
	Extension:            "EXTENSION",
	DecodeEnum:           "DEC_ENUM",
	DuplicateField:       "DEC_DUPFLD",
	MissingField:         "DEC_MISSFLD",
	OpenType:             "DEC_OPENTYPE",
	UniversalString:      "DEC_UCSTR",
	Length:               "LEN_ERR",
	Sign:                 "SIGN_ERR",
	IncompatibleOrder:    "INCOMP_ORDER",
	Token:                "TOKEN_ERR",
	LogMatching:          "LOG_MATCHING",
	FloatTruncation:      "FLOAT_TR",
	FloatNaN:             "FLOAT_NAN",
	OmittedTag:           "OMITTED_TAG",
	NegativeTestConflict: "NEGTEST_CONFL",
}

func (t ErrorType) String() string {
	if t < 0 || t >= numErrorTypes {
		return fmt.Sprintf("ErrorType(%d)", int(t))
	}
	return errorTypeNames[t]
}

// Valid reports whether t is a member of the enumeration.
func (t ErrorType) Valid() bool {
	return t >= 0 && t < numErrorTypes
}

// ErrorTypes returns every error type except All, in declaration order.
func ErrorTypes() []ErrorType {
	out := make([]ErrorType, 0, numErrorTypes-1)
	for t := All + 1; t < numErrorTypes; t++ {
		out = append(out, t)
	}
	return out
}

// Phase returns the processing phase errors of type t are raised in.
func (t ErrorType) Phase() errors.Phase {
	switch t {
	case Unbound, IncompleteAny, EncodeEnum, NegativeTestConflict:
		return errors.PhaseEncode
	default:
		return errors.PhaseDecode
	}
}

// Behavior is the reaction to a reported error.
type Behavior int

const (
	// Default is only an argument to SetBehavior: it restores the
	// compiled-in behavior.
	Default Behavior = iota
	Fail
	Warn
	Ignore
)

func (b Behavior) String() string {
	switch b {
	case Default:
		return "DEFAULT"
	case Fail:
		return "ERROR"
	case Warn:
		return "WARNING"
	case Ignore:
		return "IGNORE"
	default:
		return fmt.Sprintf("Behavior(%d)", int(b))
	}
}

var defaultBehaviors = [numErrorTypes]Behavior{
	All:                  Fail,
	Unbound:              Fail,
	IncompleteAny:        Fail,
	EncodeEnum:           Fail,
	IncompleteMessage:    Fail,
	LengthForm:           Fail,
	InvalidMessage:       Fail,
	Representation:       Fail,
	Constraint:           Fail,
	Tag:                  Fail,
	Superfluous:          Fail,
	Extension:            Warn,
	DecodeEnum:           Fail,
	DuplicateField:       Fail,
	MissingField:         Fail,
	OpenType:             Fail,
	UniversalString:      Fail,
	Length:               Fail,
	Sign:                 Fail,
	IncompatibleOrder:    Warn,
	Token:                Fail,
	LogMatching:          Warn,
	FloatTruncation:      Warn,
	FloatNaN:             Warn,
	OmittedTag:           Warn,
	NegativeTestConflict: Fail,
}

// DefaultBehavior returns the compiled-in behavior for t.
func DefaultBehavior(t ErrorType) Behavior {
	if !t.Valid() {
		return Fail
	}
	return defaultBehaviors[t]
}

// Registry maps error types to behaviors and remembers the last reported
// error. It is safe for concurrent use; configuration is expected once at
// startup with many concurrent reporters afterwards.
type Registry struct {
	lastMsg  string
	current  [numErrorTypes]Behavior
	lastType ErrorType
	mu       sync.RWMutex
	hasLast  bool
}

// NewRegistry creates a registry holding the default behaviors.
func NewRegistry() *Registry {
	return &Registry{current: defaultBehaviors}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// SetBehavior overrides the behavior of t. Default restores the compiled-in
// behavior; All applies the change to every error type.
func (r *Registry) SetBehavior(t ErrorType, b Behavior) error {
	if !t.Valid() {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Detail("unknown error type %d", int(t)).
			Build()
	}
	if b < Default || b > Ignore {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Detail("unknown error behavior %d", int(b)).
			Build()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if t == All {
		for i := range r.current {
			if b == Default {
				r.current[i] = defaultBehaviors[i]
			} else {
				r.current[i] = b
			}
		}
		return nil
	}
	if b == Default {
		r.current[t] = defaultBehaviors[t]
	} else {
		r.current[t] = b
	}
	return nil
}

// Behavior returns the current behavior of t.
func (r *Registry) Behavior(t ErrorType) Behavior {
	if !t.Valid() {
		return Fail
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current[t]
}

// DefaultBehavior returns the compiled-in behavior of t.
func (r *Registry) DefaultBehavior(t ErrorType) Behavior {
	return DefaultBehavior(t)
}

// Reset restores every default behavior and forgets the last error.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.current = defaultBehaviors
	r.hasLast = false
	r.lastMsg = ""
	r.mu.Unlock()
	Logger().Debug("error behaviors reset to defaults")
}

// LastError returns the type and message of the most recent report.
func (r *Registry) LastError() (ErrorType, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastType, r.lastMsg, r.hasLast
}

// Clear forgets the last error.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.hasLast = false
	r.lastType = All
	r.lastMsg = ""
	r.mu.Unlock()
}

// Report classifies msg under t and reacts according to the configured
// behavior: Fail returns an error, Warn logs and returns nil, Ignore
// returns nil silently. The report is recorded as the last error in every
// case.
func (r *Registry) Report(t ErrorType, format string, args ...any) error {
	return r.report(t, fmt.Sprintf(format, args...))
}

func (r *Registry) report(t ErrorType, msg string) error {
	if !t.Valid() || t == All {
		return errors.Internal("reporting an error of invalid type %d: %s", int(t), msg)
	}

	r.mu.Lock()
	r.lastType = t
	r.lastMsg = msg
	r.hasLast = true
	b := r.current[t]
	r.mu.Unlock()

	switch b {
	case Warn:
		Logger().Warn("encode/decode warning",
			zap.Stringer("type", t),
			zap.String("message", msg))
		return nil
	case Ignore:
		return nil
	default:
		return errors.Codec(t.Phase(), t.String(), msg)
	}
}

// Snapshot returns the current behavior of every error type except All.
func (r *Registry) Snapshot() map[ErrorType]Behavior {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[ErrorType]Behavior, numErrorTypes-1)
	for t := All + 1; t < numErrorTypes; t++ {
		out[t] = r.current[t]
	}
	return out
}

// ParseErrorType resolves a name such as "TAG" or "ET_TAG".
func ParseErrorType(name string) (ErrorType, error) {
	n := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(name)), "ET_")
	for t, s := range errorTypeNames {
		if s == n {
			return ErrorType(t), nil
		}
	}
	return 0, errors.NotFound(errors.PhaseConfig, "error type", name)
}

// ParseBehavior resolves a name such as "WARNING" or "EB_WARNING".
func ParseBehavior(name string) (Behavior, error) {
	switch strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(name)), "EB_") {
	case "DEFAULT":
		return Default, nil
	case "ERROR", "FAIL":
		return Fail, nil
	case "WARNING", "WARN":
		return Warn, nil
	case "IGNORE":
		return Ignore, nil
	}
	return 0, errors.NotFound(errors.PhaseConfig, "error behavior", name)
}
