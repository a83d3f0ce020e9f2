package template

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/ttcn-runtime/errors"
)

type patternTranslator struct {
	pattern string
	result  strings.Builder
	i       int
	depth   int
	inSet   bool
}

// compilePattern translates a pattern in template notation to an anchored
// RE2 expression and compiles it.
//
// Supported: ? (any character), * (any string), + (one or more), #n and
// #(n,m) repetition, [...] sets, ( | ) grouping, \d \w \s \t \n \r and
// escaped literals. References ({name}) and \q / \N are rejected.
func compilePattern(source string, nocase bool) (*regexp.Regexp, error) {
	t := &patternTranslator{pattern: source}
	t.result.Grow(len(source) * 2)
	t.result.WriteString("(?s")
	if nocase {
		t.result.WriteByte('i')
	}
	t.result.WriteString(")^(?:")
	if err := t.translate(); err != nil {
		return nil, err
	}
	t.result.WriteString(")$")
	re, err := regexp.Compile(t.result.String())
	if err != nil {
		return nil, errors.Wrap(errors.PhaseTemplate, errors.KindInvalidInput, err,
			"pattern "+strconv.Quote(source)+" is not valid")
	}
	return re, nil
}

func (t *patternTranslator) fail(format string, args ...any) error {
	return errors.New(errors.PhaseTemplate, errors.KindInvalidInput).
		Value(t.pattern).
		Detail("pattern %q at offset %d: "+format, append([]any{t.pattern, t.i}, args...)...).
		Build()
}

func (t *patternTranslator) translate() error {
	for t.i < len(t.pattern) {
		c := t.pattern[t.i]
		if c == '\\' {
			if err := t.escape(); err != nil {
				return err
			}
			continue
		}
		if t.inSet {
			t.setChar(c)
			continue
		}
		switch c {
		case '?':
			t.result.WriteByte('.')
		case '*':
			t.result.WriteString(".*")
		case '+', '|':
			t.result.WriteByte(c)
		case '(':
			t.depth++
			t.result.WriteString("(?:")
		case ')':
			if t.depth == 0 {
				return t.fail("unbalanced ')'")
			}
			t.depth--
			t.result.WriteByte(')')
		case '[':
			t.inSet = true
			t.result.WriteByte('[')
			if t.i+1 < len(t.pattern) && t.pattern[t.i+1] == '^' {
				t.result.WriteByte('^')
				t.i++
			}
		case '#':
			if err := t.repetition(); err != nil {
				return err
			}
			continue
		case '{':
			return t.fail("references are not supported")
		default:
			t.literal()
			continue
		}
		t.i++
	}
	if t.inSet {
		return t.fail("unterminated set expression")
	}
	if t.depth != 0 {
		return t.fail("unbalanced '('")
	}
	return nil
}

func (t *patternTranslator) setChar(c byte) {
	switch c {
	case ']':
		t.inSet = false
		t.result.WriteByte(']')
	case '-':
		t.result.WriteByte('-')
	case '[', '^':
		t.result.WriteByte('\\')
		t.result.WriteByte(c)
	default:
		t.result.WriteByte(c)
	}
	t.i++
}

func (t *patternTranslator) escape() error {
	if t.i+1 >= len(t.pattern) {
		return t.fail("trailing backslash")
	}
	c := t.pattern[t.i+1]
	switch c {
	case 'd', 'w', 's', 't', 'n', 'r':
		t.result.WriteByte('\\')
		t.result.WriteByte(c)
	case 'q', 'N':
		return t.fail(`\%c is not supported`, c)
	default:
		t.i++
		t.literal()
		return nil
	}
	t.i += 2
	return nil
}

func (t *patternTranslator) literal() {
	r, size := utf8.DecodeRuneInString(t.pattern[t.i:])
	t.result.WriteString(regexp.QuoteMeta(string(r)))
	t.i += size
}

// repetition handles #n and #(n,m). t.i is at the '#'.
func (t *patternTranslator) repetition() error {
	t.i++
	if t.i >= len(t.pattern) {
		return t.fail("missing repetition count after '#'")
	}
	if c := t.pattern[t.i]; c >= '0' && c <= '9' {
		t.result.WriteByte('{')
		t.result.WriteByte(c)
		t.result.WriteByte('}')
		t.i++
		return nil
	}
	if t.pattern[t.i] != '(' {
		return t.fail("invalid repetition")
	}
	end := strings.IndexByte(t.pattern[t.i:], ')')
	if end < 0 {
		return t.fail("unterminated repetition")
	}
	body := strings.ReplaceAll(t.pattern[t.i+1:t.i+end], " ", "")
	lo, hi, ranged := strings.Cut(body, ",")
	if lo == "" {
		lo = "0"
	}
	if !digits(lo) || !digits(hi) {
		return t.fail("invalid repetition bounds %q", body)
	}
	t.result.WriteByte('{')
	t.result.WriteString(lo)
	if ranged {
		t.result.WriteByte(',')
		t.result.WriteString(hi)
	}
	t.result.WriteByte('}')
	t.i += end + 1
	return nil
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
