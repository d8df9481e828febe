package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/inflate/pkg/errors"
	"github.com/matzehuels/inflate/pkg/growth"
	"github.com/matzehuels/inflate/pkg/pipeline"
)

// Form styles
var (
	formLabelStyle   = lipgloss.NewStyle().Foreground(colorGray).Width(20)
	formFocusStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Width(20)
	formHelpStyle    = lipgloss.NewStyle().Foreground(colorDim)
	formPanelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	formErrorStyle   = StyleError
	formSuccessStyle = StyleSuccess
)

// =============================================================================
// sessionModel - Interactive growth ratio form
// =============================================================================

type sessionStage int

const (
	stageInput  sessionStage = iota // editing the fields
	stageReview                     // showing a result or a solver error
	stageDone                       // accepted or quit
)

// sessionModel is the bubbletea model for the interactive session.
type sessionModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	opts   growth.Options

	inputs   []textinput.Model
	defaults sessionValues
	focus    int
	stage    sessionStage

	fieldErr string
	result   *pipeline.Result
	solveErr error
	accepted bool
}

func newSessionModel(ctx context.Context, runner *pipeline.Runner, opts growth.Options, defaults sessionValues) sessionModel {
	inputs := make([]textinput.Model, len(sessionFields))
	for i, f := range sessionFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.placeholder
		ti.CharLimit = 32
		ti.Width = 24
		if defaults[i] > 0 {
			ti.SetValue(formatFloat(defaults[i]))
		}
		inputs[i] = ti
	}
	inputs[0].Focus()

	return sessionModel{
		ctx:      ctx,
		runner:   runner,
		opts:     opts,
		inputs:   inputs,
		defaults: defaults,
	}
}

// runSessionProgram runs m until it quits and returns the final model.
func runSessionProgram(ctx context.Context, m sessionModel, in io.Reader, out io.Writer) (tea.Model, error) {
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	return p.Run()
}

func (m sessionModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.stage = stageDone
			return m, tea.Quit
		}

		switch m.stage {
		case stageReview:
			return m.updateReview(key)
		case stageInput:
			switch key.String() {
			case "enter":
				return m.submitField()
			case "tab", "down":
				return m.moveFocus(1), nil
			case "shift+tab", "up":
				return m.moveFocus(-1), nil
			}
		}
	}

	if m.stage != stageInput {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submitField accepts the focused field and moves on, or solves when the
// last field is submitted.
func (m sessionModel) submitField() (tea.Model, tea.Cmd) {
	if _, err := parseField(m.inputs[m.focus].Value(), m.defaults[m.focus]); err != nil {
		m.fieldErr = err.Error()
		return m, nil
	}
	m.fieldErr = ""
	if m.focus < len(m.inputs)-1 {
		return m.moveFocus(1), nil
	}

	var vals sessionValues
	for i := range m.inputs {
		v, err := parseField(m.inputs[i].Value(), m.defaults[i])
		if err != nil {
			m.fieldErr = err.Error()
			return m.focusField(i), nil
		}
		vals[i] = v
	}

	m.defaults = vals
	m.result, m.solveErr = m.runner.Solve(m.ctx, vals.request(), pipeline.Options{Options: m.opts})
	m.stage = stageReview
	m.inputs[m.focus].Blur()
	return m, nil
}

func (m sessionModel) updateReview(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "y":
		if m.result != nil {
			m.accepted = true
			m.stage = stageDone
			return m, tea.Quit
		}
	case "n", "enter":
		m.result, m.solveErr = nil, nil
		m.stage = stageInput
		return m.focusField(0), textinput.Blink
	}
	return m, nil
}

func (m sessionModel) moveFocus(delta int) sessionModel {
	n := len(m.inputs)
	return m.focusField(((m.focus+delta)%n + n) % n)
}

func (m sessionModel) focusField(i int) sessionModel {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	return m
}

func (m sessionModel) View() string {
	if m.stage == stageDone {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Boundary-layer growth ratio"))
	b.WriteString("\n\n")

	for i, f := range sessionFields {
		label := formLabelStyle
		if m.stage == stageInput && i == m.focus {
			label = formFocusStyle
		}
		b.WriteString("  " + label.Render(f.label) + " " + m.inputs[i].View() + "\n")
	}
	if m.fieldErr != "" {
		b.WriteString("\n  " + formErrorStyle.Render(m.fieldErr) + "\n")
	}

	if m.stage == stageReview {
		b.WriteString("\n")
		b.WriteString(m.reviewPanel())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(formHelpStyle.Render(m.help()))
	b.WriteString("\n")
	return b.String()
}

func (m sessionModel) reviewPanel() string {
	if m.solveErr != nil {
		return formPanelStyle.Render(formErrorStyle.Render(errors.UserMessage(m.solveErr)))
	}

	var lines []string
	if m.result.Solution.Converged {
		lines = append(lines, formSuccessStyle.Render(iconSuccess+" converged"))
	} else {
		lines = append(lines, StyleWarning.Render(iconWarning+" iteration cap reached; estimate only"))
	}
	for _, kv := range solutionLines(m.result.Solution, m.result.Summary) {
		lines = append(lines, styleKey.Render(kv[0])+" "+StyleValue.Render(kv[1]))
	}
	return formPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m sessionModel) help() string {
	switch {
	case m.stage == stageInput:
		return "enter next · tab/↑/↓ move · esc quit"
	case m.solveErr != nil:
		return "enter edit inputs · esc quit"
	default:
		return "accept? y yes · n edit inputs · esc quit"
	}
}
