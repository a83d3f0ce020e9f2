package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/wippyai/ttcn-runtime/errors"
	"github.com/wippyai/ttcn-runtime/template"
	"github.com/wippyai/ttcn-runtime/wire"
)

// playTemplate is a parsed template expression, either over integers or
// charstrings.
type playTemplate interface {
	String() string
	EncodeText(b *wire.Buffer) error
	// matchInput parses v as a value of the template's type and matches it.
	// An empty v stands for an omitted field.
	matchInput(v string) (bool, error)
	// typeName names the value type the template was parsed for.
	typeName() string
}

type intTemplate struct{ *template.Scalar[int64] }

func (t intTemplate) typeName() string { return t.Traits().Name }

func (t intTemplate) matchInput(v string) (bool, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return t.MatchOmit(false), nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return false, errors.InvalidInput(errors.PhaseTemplate, fmt.Sprintf("%q is not an integer", v))
	}
	return t.Match(n, false), nil
}

type charTemplate struct{ *template.Scalar[string] }

func (t charTemplate) typeName() string { return t.Traits().Name }

func (t charTemplate) matchInput(v string) (bool, error) {
	if v == "" {
		return t.MatchOmit(false), nil
	}
	if s, err := strconv.Unquote(v); err == nil {
		v = s
	}
	return t.Match(v, false), nil
}

// parseTemplate parses expressions such as
//
//	(1 .. 10) length (2) ifpresent
//	complement (1, 2, ?)
//	pattern @nocase "a#(2,)b*"
//
// The expression is a charstring template when it holds a quoted string and
// an integer template otherwise.
func parseTemplate(src string) (playTemplate, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	for _, tk := range toks {
		if tk.kind == tokString {
			p := &exprParser[string]{toks: toks, tr: template.Charstring, value: stringLiteral}
			t, err := p.parse()
			if err != nil {
				return nil, err
			}
			return charTemplate{t}, nil
		}
	}
	p := &exprParser[int64]{toks: toks, tr: template.Integer, value: intLiteral}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	return intTemplate{t}, nil
}

type tokKind uint8

const (
	tokEOF tokKind = iota
	tokWord
	tokString
	tokPunct
)

type token struct {
	text string
	kind tokKind
	pos  int
}

func lex(src string) ([]token, error) {
	var toks []token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case strings.HasPrefix(src[i:], ".."):
			toks = append(toks, token{"..", tokPunct, i})
			i += 2
		case strings.IndexByte("(),!?*", c) >= 0:
			toks = append(toks, token{string(c), tokPunct, i})
			i++
		case c == '"':
			j := i + 1
			for j < len(src) && src[j] != '"' {
				if src[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(src) {
				return nil, syntaxError(i, "unterminated string")
			}
			s, err := strconv.Unquote(src[i : j+1])
			if err != nil {
				return nil, syntaxError(i, "invalid string literal")
			}
			toks = append(toks, token{s, tokString, i})
			i = j + 1
		default:
			j := i
			for j < len(src) && isWordByte(src[j]) && !strings.HasPrefix(src[j:], "..") {
				j++
			}
			if j == i {
				return nil, syntaxError(i, fmt.Sprintf("unexpected %q", c))
			}
			toks = append(toks, token{src[i:j], tokWord, i})
			i = j
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(src)}), nil
}

func isWordByte(c byte) bool {
	return c == '-' || c == '+' || c == '.' || c == '@' || c == '_' ||
		unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}

func syntaxError(pos int, msg string) error {
	return errors.New(errors.PhaseTemplate, errors.KindInvalidInput).
		Detail("offset %d: %s", pos, msg).
		Build()
}

type exprParser[T any] struct {
	toks  []token
	i     int
	tr    *template.Traits[T]
	value func(token) (T, error)
}

func intLiteral(tk token) (int64, error) {
	if tk.kind != tokWord {
		return 0, syntaxError(tk.pos, "expected an integer")
	}
	n, err := strconv.ParseInt(tk.text, 10, 64)
	if err != nil {
		return 0, syntaxError(tk.pos, fmt.Sprintf("%q is not an integer", tk.text))
	}
	return n, nil
}

func stringLiteral(tk token) (string, error) {
	if tk.kind != tokString {
		return "", syntaxError(tk.pos, "expected a quoted string")
	}
	return tk.text, nil
}

func (p *exprParser[T]) peek() token { return p.toks[p.i] }

func (p *exprParser[T]) next() token {
	tk := p.toks[p.i]
	if tk.kind != tokEOF {
		p.i++
	}
	return tk
}

func (p *exprParser[T]) accept(text string) bool {
	if tk := p.peek(); tk.kind != tokString && tk.text == text {
		p.i++
		return true
	}
	return false
}

func (p *exprParser[T]) expect(text string) error {
	if !p.accept(text) {
		return syntaxError(p.peek().pos, fmt.Sprintf("expected %q", text))
	}
	return nil
}

func (p *exprParser[T]) parse() (*template.Scalar[T], error) {
	t, err := p.template()
	if err != nil {
		return nil, err
	}
	if tk := p.peek(); tk.kind != tokEOF {
		return nil, syntaxError(tk.pos, fmt.Sprintf("unexpected %q", tk.text))
	}
	return t, nil
}

// template parses a body followed by optional length and ifpresent
// attributes.
func (p *exprParser[T]) template() (*template.Scalar[T], error) {
	t := template.New(p.tr)
	if err := p.body(t); err != nil {
		return nil, err
	}
	if p.accept("length") {
		if err := p.length(t); err != nil {
			return nil, err
		}
	}
	if p.accept("ifpresent") {
		t.SetIfPresent()
	}
	return t, nil
}

func (p *exprParser[T]) body(t *template.Scalar[T]) error {
	switch {
	case p.accept("?"):
		return t.SetKind(template.Any)
	case p.accept("*"):
		return t.SetKind(template.AnyOrOmit)
	case p.accept("omit"):
		return t.SetKind(template.Omit)
	case p.accept("pattern"):
		nocase := p.accept("@nocase")
		tk := p.next()
		if tk.kind != tokString {
			return syntaxError(tk.pos, "expected a quoted pattern")
		}
		return t.SetPattern(tk.text, nocase)
	case p.accept("complement"):
		if err := p.expect("("); err != nil {
			return err
		}
		return p.list(t, template.ComplementedList, nil)
	case p.accept("("):
		return p.group(t)
	}
	v, err := p.value(p.next())
	if err != nil {
		return err
	}
	t.SetValue(v)
	return nil
}

// group parses what follows "(": either a range or a value list.
func (p *exprParser[T]) group(t *template.Scalar[T]) error {
	if tk := p.peek(); tk.text == "!" || tk.text == "-infinity" {
		return p.valueRange(t)
	}
	start := p.i
	first, err := p.template()
	if err != nil {
		return err
	}
	if p.peek().text == ".." {
		p.i = start
		return p.valueRange(t)
	}
	return p.list(t, template.ValueList, first)
}

func (p *exprParser[T]) list(t *template.Scalar[T], k template.Kind, first *template.Scalar[T]) error {
	var items []*template.Scalar[T]
	if first != nil {
		items = append(items, first)
	} else if !p.accept(")") {
		it, err := p.template()
		if err != nil {
			return err
		}
		items = append(items, it)
	} else {
		return t.SetList(k, 0)
	}
	for p.accept(",") {
		it, err := p.template()
		if err != nil {
			return err
		}
		items = append(items, it)
	}
	if err := p.expect(")"); err != nil {
		return err
	}
	if err := t.SetList(k, len(items)); err != nil {
		return err
	}
	for i, it := range items {
		slot, err := t.ListItem(i)
		if err != nil {
			return err
		}
		*slot = *it
	}
	return nil
}

func (p *exprParser[T]) valueRange(t *template.Scalar[T]) error {
	var r template.Range[T]
	var err error
	if r.Min, r.MinExclusive, err = p.bound("-infinity"); err != nil {
		return err
	}
	if err := p.expect(".."); err != nil {
		return err
	}
	if r.Max, r.MaxExclusive, err = p.bound("infinity"); err != nil {
		return err
	}
	if err := p.expect(")"); err != nil {
		return err
	}
	return t.SetRange(r)
}

func (p *exprParser[T]) bound(open string) (*T, bool, error) {
	exclusive := p.accept("!")
	if p.accept(open) {
		return nil, exclusive, nil
	}
	v, err := p.value(p.next())
	if err != nil {
		return nil, false, err
	}
	return &v, exclusive, nil
}

func (p *exprParser[T]) length(t *template.Scalar[T]) error {
	if err := p.expect("("); err != nil {
		return err
	}
	lo, err := intLiteral(p.next())
	if err != nil {
		return err
	}
	if !p.accept("..") {
		if err := t.SetSingleLength(int(lo)); err != nil {
			return err
		}
		return p.expect(")")
	}
	if err := t.SetMinLength(int(lo)); err != nil {
		return err
	}
	if !p.accept("infinity") {
		hi, err := intLiteral(p.next())
		if err != nil {
			return err
		}
		if err := t.SetMaxLength(int(hi)); err != nil {
			return err
		}
	}
	return p.expect(")")
}
