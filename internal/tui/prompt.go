package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vvka-141/mkdb/internal/tui/components"
	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// nameModel asks for a database name. Enter on an empty field dismisses the
// prompt; enter is ignored while the validator reports a message.
type nameModel struct {
	title     string
	field     components.TextField
	keys      KeyMap
	submitted bool
	cancelled bool
}

func newNameModel(prompt string, validate func(string) string) nameModel {
	field := components.NewTextField("Database name", "").WithWidth(60).WithValidator(validate)
	field.Focus()
	return nameModel{title: prompt, field: field, keys: DefaultKeyMap()}
}

func (m nameModel) Init() tea.Cmd {
	return m.field.Init()
}

func (m nameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			if m.field.Value() == "" {
				m.cancelled = true
				return m, tea.Quit
			}
			if m.field.Validate() != "" {
				return m, nil
			}
			m.submitted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	return m, cmd
}

func (m nameModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.field.View())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.keys.InputHelpText()))
	return b.String()
}

// result returns the accepted name, or "" when dismissed.
func (m nameModel) result() string {
	if !m.submitted {
		return ""
	}
	return m.field.Value()
}

// Prompter implements mkdb.NamePrompter and mkdb.Confirmer with bubbletea
// programs. Use it only when DetectMode reports ModeInteractive.
type Prompter struct {
	input  io.Reader
	output io.Writer
}

// NewPrompter creates a Prompter on the given terminal streams. Nil streams
// fall back to bubbletea's defaults (stdin and stdout).
func NewPrompter(input io.Reader, output io.Writer) *Prompter {
	return &Prompter{input: input, output: output}
}

func (p *Prompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.input != nil {
		opts = append(opts, tea.WithInput(p.input))
	}
	if p.output != nil {
		opts = append(opts, tea.WithOutput(p.output))
	}

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, tea.ErrProgramKilled) {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return final, nil
}

// PromptDatabaseName shows a text field with inline validation.
func (p *Prompter) PromptDatabaseName(ctx context.Context, prompt string, validate func(string) string) (string, error) {
	final, err := p.run(ctx, newNameModel(prompt, validate))
	if err != nil {
		return "", err
	}
	return final.(nameModel).result(), nil
}

// Confirm shows a Yes/No selector. Quitting the selector counts as "no".
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	selector := components.NewSelector(question, []components.Option{
		{Label: "Yes", Value: "yes"},
		{Label: "No", Value: "no"},
	})

	final, err := p.run(ctx, selector)
	if err != nil {
		return false, err
	}
	s := final.(components.Selector)
	return s.Submitted() && s.Value() == "yes", nil
}

var (
	_ mkdb.NamePrompter = (*Prompter)(nil)
	_ mkdb.Confirmer    = (*Prompter)(nil)
)
