// Package ui holds the interactive prompts shown before destructive
// operations and for gathering free-text input.
package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// Prompter asks the operator questions. Confirm returns whether the
// operator accepted. Input returns the entered text and false when the
// prompt was cancelled.
type Prompter interface {
	Confirm(message string) (bool, error)
	Input(title, message string) (string, bool, error)
}

// HuhPrompter renders prompts as huh forms in the terminal.
type HuhPrompter struct{}

func NewHuhPrompter() HuhPrompter { return HuhPrompter{} }

func (HuhPrompter) Confirm(message string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(message).
			Affirmative("OK").
			Negative("キャンセル").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

func (HuhPrompter) Input(title, message string) (string, bool, error) {
	var text string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Description(message).
			Value(&text),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", false, nil
		}
		return "", false, err
	}
	return strings.TrimSpace(text), true, nil
}
