package encdec

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/ttcn-runtime/errors"
)

// Context is a stack of diagnostic frames used to build hierarchical
// encode/decode messages. A Context is not safe for concurrent use: each
// test component goroutine owns its own and passes it down the codec call
// chain explicitly.
type Context struct {
	reg    *Registry
	frames []*Frame
}

// Frame is one level of a Context. Its message is rendered when a report
// is composed, so arguments may be updated in place via SetMessage.
type Frame struct {
	ctx    *Context
	format string
	args   []any
}

// NewContext creates an empty Context that reports through reg.
// A nil reg selects the process-wide registry.
func NewContext(reg *Registry) *Context {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Context{reg: reg}
}

// Registry returns the registry reports are routed through.
func (c *Context) Registry() *Registry {
	return c.reg
}

// Depth returns the number of active frames.
func (c *Context) Depth() int {
	return len(c.frames)
}

// Push opens a new innermost frame. An empty format pushes a frame that
// contributes nothing until SetMessage is called.
func (c *Context) Push(format string, args ...any) *Frame {
	f := &Frame{ctx: c, format: format, args: args}
	c.frames = append(c.frames, f)
	return f
}

// Pop closes f, which must be the innermost frame.
func (c *Context) Pop(f *Frame) error {
	n := len(c.frames)
	if n == 0 || c.frames[n-1] != f {
		return errors.Internal("diagnostic context stack is corrupt: the frame being closed is not on top (depth %d)", n)
	}
	c.frames[n-1] = nil
	c.frames = c.frames[:n-1]
	return nil
}

// Close pops the frame from its Context.
func (f *Frame) Close() error {
	return f.ctx.Pop(f)
}

// SetMessage replaces the frame's message, typically inside a loop over
// fields or elements.
func (f *Frame) SetMessage(format string, args ...any) {
	f.format = format
	f.args = args
}

func (f *Frame) String() string {
	if f.format == "" {
		return ""
	}
	if len(f.args) == 0 {
		return f.format
	}
	return fmt.Sprintf(f.format, f.args...)
}

// Within runs fn inside a frame. The frame is released even when fn
// panics, in which case any frames fn left open are discarded as well.
func (c *Context) Within(fn func() error, format string, args ...any) (err error) {
	f := c.Push(format, args...)
	depth := len(c.frames)
	defer func() {
		if p := recover(); p != nil {
			c.unwind(depth - 1)
			panic(p)
		}
		if perr := c.Pop(f); perr != nil && err == nil {
			err = perr
		}
	}()
	return fn()
}

func (c *Context) unwind(depth int) {
	for i := depth; i < len(c.frames); i++ {
		c.frames[i] = nil
	}
	c.frames = c.frames[:depth]
}

// Prefix renders every active frame, outermost first.
func (c *Context) Prefix() string {
	var b strings.Builder
	for _, f := range c.frames {
		b.WriteString(f.String())
	}
	return b.String()
}

func (c *Context) compose(format string, args []any) string {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return c.Prefix() + msg
}

// Error reports an encode/decode error of type t. The returned error is
// non-nil only when the configured behavior is Fail.
func (c *Context) Error(t ErrorType, format string, args ...any) error {
	return c.reg.report(t, c.compose(format, args))
}

// Warning emits a warning regardless of configured behaviors.
func (c *Context) Warning(format string, args ...any) {
	Logger().Warn("encode/decode warning", zap.String("message", c.compose(format, args)))
}

// Internal returns an internal consistency error carrying the frame
// prefix. It is never subject to configured behaviors.
func (c *Context) Internal(format string, args ...any) error {
	return errors.Internal("%s", c.compose(format, args))
}
