package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tetratelabs/wazero/api"
)

type interactiveModel struct {
	ctx      context.Context
	err      error
	sess     *session
	filename string
	result   string
	history  []historyEntry
	funcs    []export
	inputs   []textinput.Model
	selected int
	focusIdx int
	width    int
	state    modelState
	typeExpr string
}

type historyEntry struct {
	call   string
	result string
}

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

const maxHistory = 8

func newInteractiveModel(ctx context.Context, sess *session, filename, typeExpr string) *interactiveModel {
	return &interactiveModel{
		ctx:      ctx,
		sess:     sess,
		filename: filename,
		funcs:    sess.exports(),
		state:    stateSelectFunc,
		typeExpr: typeExpr,
	}
}

type evalResultMsg struct {
	err    error
	call   string
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.funcs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				if len(m.funcs) == 0 {
					return m, nil
				}
				m.prepareInputs()
				m.state = stateInputArgs
				return m, textinput.Blink

			case stateInputArgs:
				return m, m.evaluate()

			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}
			return m, nil

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}
			return m, nil

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectFunc
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}
			return m, nil
		}

	case evalResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
		if msg.err == nil {
			m.history = append(m.history, historyEntry{call: msg.call, result: msg.result})
			if len(m.history) > maxHistory {
				m.history = m.history[len(m.history)-maxHistory:]
			}
		}
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// prepareInputs builds one input per core parameter plus the result type.
func (m *interactiveModel) prepareInputs() {
	f := m.funcs[m.selected]
	m.inputs = make([]textinput.Model, 0, len(f.params)+1)
	for i, p := range f.params {
		ti := textinput.New()
		ti.Placeholder = api.ValueTypeName(p)
		ti.Prompt = fmt.Sprintf("arg%d: ", i)
		ti.Width = 40
		m.inputs = append(m.inputs, ti)
	}

	ti := textinput.New()
	ti.Placeholder = "int"
	ti.Prompt = "type: "
	ti.Width = 40
	ti.SetValue(m.typeExpr)
	m.inputs = append(m.inputs, ti)

	m.focusIdx = 0
	m.inputs[0].Focus()
}

// evaluate reads the inputs now and returns a command that calls the
// selected export with them.
func (m *interactiveModel) evaluate() tea.Cmd {
	f := m.funcs[m.selected]
	n := len(m.inputs) - 1

	args := make([]string, n)
	for i := range n {
		args[i] = m.inputs[i].Value()
	}
	typeExpr := m.inputs[n].Value()
	if typeExpr == "" {
		typeExpr = m.inputs[n].Placeholder
	}
	m.typeExpr = typeExpr

	ctx, sess := m.ctx, m.sess
	return func() tea.Msg {
		call := fmt.Sprintf("(%s) %s(%s)", typeExpr, f.name, strings.Join(args, ", "))
		result, err := sess.eval(ctx, f.name, args, typeExpr)
		return evalResultMsg{call: call, result: result, err: err}
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Value Printer"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if len(m.funcs) == 0 {
		b.WriteString("The module exports no functions.\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select an export to evaluate:\n\n")
		for i, f := range m.funcs {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + f.signature()))
			} else {
				b.WriteString("  " + m.formatFunc(f))
			}
			b.WriteString("\n")
		}
		if len(m.history) > 0 {
			b.WriteString("\nHistory:\n")
			for _, h := range m.history {
				b.WriteString("  " + typeStyle.Render(h.call) + " = " + resultStyle.Render(h.result) + "\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter evaluate • q quit"))

	case stateInputArgs:
		f := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n\n", funcStyle.Render(f.name)))
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter evaluate • esc back"))

	case stateShowResult:
		f := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(f.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			style := resultStyle
			if m.width > 0 {
				style = style.Width(m.width)
			}
			b.WriteString(style.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatFunc(f export) string {
	params := make([]string, len(f.params))
	for i, p := range f.params {
		params[i] = typeStyle.Render(api.ValueTypeName(p))
	}
	result := ""
	if len(f.results) > 0 {
		results := make([]string, len(f.results))
		for i, r := range f.results {
			results[i] = typeStyle.Render(api.ValueTypeName(r))
		}
		result = " -> " + strings.Join(results, ", ")
	}
	return funcStyle.Render(f.name) + "(" + strings.Join(params, ", ") + ")" + result
}

func runInteractive(ctx context.Context, sess *session, filename, typeExpr string) error {
	p := tea.NewProgram(newInteractiveModel(ctx, sess, filename, typeExpr), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
