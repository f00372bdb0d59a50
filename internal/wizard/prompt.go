package wizard

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Prompter collects the answers for one screen of fields. Each field writes through
// its Value pointer.
type Prompter interface {
	Ask(ctx context.Context, fields ...Field) error
}

// Field is one question on a screen: *Input, *Confirm or *MultiSelect.
type Field interface {
	FieldTitle() string
	huhField() huh.Field
}

// Input asks for a line of text, or a block of text when Multiline is set.
type Input struct {
	Title       string
	Placeholder string
	Multiline   bool
	Value       *string
	Validate    func(string) error
}

func (f *Input) FieldTitle() string { return f.Title }

func (f *Input) huhField() huh.Field {
	if f.Multiline {
		text := huh.NewText().Title(f.Title).Placeholder(f.Placeholder).Value(f.Value)
		if f.Validate != nil {
			text = text.Validate(f.Validate)
		}
		return text
	}
	input := huh.NewInput().Title(f.Title).Placeholder(f.Placeholder).Value(f.Value)
	if f.Validate != nil {
		input = input.Validate(f.Validate)
	}
	return input
}

// Confirm asks a yes/no question.
type Confirm struct {
	Title string
	Value *bool
}

func (f *Confirm) FieldTitle() string { return f.Title }

func (f *Confirm) huhField() huh.Field {
	return huh.NewConfirm().Title(f.Title).Value(f.Value)
}

// Choice is one entry of a MultiSelect. Label defaults to Value.
type Choice struct {
	Label    string
	Value    string
	Selected bool
}

// MultiSelect asks for any number of choices.
type MultiSelect struct {
	Title   string
	Choices []Choice
	Value   *[]string
}

func (f *MultiSelect) FieldTitle() string { return f.Title }

func (f *MultiSelect) huhField() huh.Field {
	opts := make([]huh.Option[string], 0, len(f.Choices))
	for _, c := range f.Choices {
		label := c.Label
		if label == "" {
			label = c.Value
		}
		opts = append(opts, huh.NewOption(label, c.Value).Selected(c.Selected))
	}
	return huh.NewMultiSelect[string]().Title(f.Title).Options(opts...).Value(f.Value)
}

// FormPrompter renders each screen as a huh form. Off a terminal the form runs in
// accessible mode.
type FormPrompter struct{}

// Ask runs one form holding every field.
func (FormPrompter) Ask(ctx context.Context, fields ...Field) error {
	hf := make([]huh.Field, 0, len(fields))
	for _, f := range fields {
		hf = append(hf, f.huhField())
	}
	form := huh.NewForm(huh.NewGroup(hf...)).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func choices(opts []Option) []Choice {
	out := make([]Choice, 0, len(opts))
	for _, o := range opts {
		out = append(out, Choice{Value: o.Value, Selected: o.Selected})
	}
	return out
}
