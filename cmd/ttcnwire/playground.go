package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/ttcn-runtime/wire"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const (
	fieldTemplate = iota
	fieldValue
)

type playgroundModel struct {
	inputs   []textinput.Model
	focusIdx int
	eval     evaluation
}

// evaluation is the outcome of matching the current value against the
// current template expression.
type evaluation struct {
	tmpl    playTemplate
	parse   error
	matched bool
	match   error
	size    string
	encoded string
}

func newPlaygroundModel() *playgroundModel {
	tmpl := textinput.New()
	tmpl.Prompt = "template: "
	tmpl.Placeholder = `(1 .. 10) length (2) ifpresent, pattern "a*"`
	tmpl.Width = 60
	tmpl.Focus()

	val := textinput.New()
	val.Prompt = "value:    "
	val.Placeholder = "empty means omitted"
	val.Width = 60

	return &playgroundModel{inputs: []textinput.Model{tmpl, val}}
}

func evaluate(expr, value string) evaluation {
	var ev evaluation
	if strings.TrimSpace(expr) == "" {
		return ev
	}
	ev.tmpl, ev.parse = parseTemplate(expr)
	if ev.parse != nil {
		return ev
	}
	ev.matched, ev.match = ev.tmpl.matchInput(value)

	if c, ok := ev.tmpl.(charTemplate); ok {
		if n, err := c.LengthOf(); err == nil {
			ev.size = fmt.Sprint(n)
		} else {
			ev.size = err.Error()
		}
	}

	b := wire.Get()
	defer wire.Put(b)
	if err := ev.tmpl.EncodeText(b); err != nil {
		ev.encoded = err.Error()
	} else {
		ev.encoded = hex.EncodeToString(b.Bytes())
	}
	return ev
}

func (m *playgroundModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *playgroundModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "up", "down":
			m.inputs[m.focusIdx].Blur()
			m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
			m.inputs[m.focusIdx].Focus()
			return m, nil
		}
	}

	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	m.eval = evaluate(m.inputs[fieldTemplate].Value(), m.inputs[fieldValue].Value())
	return m, tea.Batch(cmds...)
}

func (m *playgroundModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Template Playground"))
	b.WriteString("\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	ev := m.eval
	switch {
	case ev.parse != nil:
		b.WriteString(errorStyle.Render(ev.parse.Error()))
	case ev.tmpl == nil:
		b.WriteString(helpStyle.Render("type a template expression"))
	default:
		fmt.Fprintf(&b, "%s %s\n", kindStyle.Render(ev.tmpl.typeName()), ev.tmpl.String())
		switch {
		case ev.match != nil:
			b.WriteString(errorStyle.Render(ev.match.Error()))
		case ev.matched:
			b.WriteString(resultStyle.Render("match"))
		default:
			b.WriteString(errorStyle.Render("no match"))
		}
		b.WriteString("\n")
		if ev.size != "" {
			fmt.Fprintf(&b, "lengthof: %s\n", ev.size)
		}
		fmt.Fprintf(&b, "wire:     %s", ev.encoded)
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab switch field • esc quit"))
	return b.String()
}

func runPlayground() error {
	p := tea.NewProgram(newPlaygroundModel())
	_, err := p.Run()
	return err
}
