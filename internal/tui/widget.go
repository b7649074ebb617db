// Package tui is a terminal implementation of typeahead.Widget built on Bubble Tea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/FACorreiaa/go-typeahead/internal/typeahead"
)

var (
	ErrNotBound     = errors.New("element is not bound")
	ErrAlreadyBound = errors.New("element is already bound")
	ErrCancelled    = errors.New("lookup cancelled")
)

var _ typeahead.Widget = (*Widget)(nil)

// Widget keeps the bound elements; Run prompts for one of them.
type Widget struct {
	mu       sync.Mutex
	bindings map[string]typeahead.Options
}

func NewWidget() *Widget {
	return &Widget{bindings: make(map[string]typeahead.Options)}
}

func (w *Widget) Bind(element string, opts typeahead.Options) error {
	if element == "" {
		return errors.New("element id must not be empty")
	}
	if opts.Source == nil || opts.OnSelect == nil {
		return errors.New("source and select callbacks are required")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.bindings[element]; ok {
		return fmt.Errorf("%s: %w", element, ErrAlreadyBound)
	}
	w.bindings[element] = opts
	return nil
}

// Model returns a fresh model for a bound element. A non-empty initial value
// is shown in the field and accepted by Enter until the user edits it.
func (w *Widget) Model(ctx context.Context, element, title, initial string) (Model, error) {
	w.mu.Lock()
	opts, ok := w.bindings[element]
	w.mu.Unlock()
	if !ok {
		return Model{}, fmt.Errorf("%s: %w", element, ErrNotBound)
	}
	return newModel(ctx, title, initial, opts), nil
}

// Run shows the prompt for element until the user selects a suggestion or
// cancels, and returns the text left in the field.
func (w *Widget) Run(ctx context.Context, element, title, initial string, opts ...tea.ProgramOption) (string, error) {
	m, err := w.Model(ctx, element, title, initial)
	if err != nil {
		return "", err
	}
	opts = append(opts, tea.WithContext(ctx))
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return "", fmt.Errorf("running prompt for %s: %w", element, err)
	}
	fm, ok := final.(Model)
	if !ok || !fm.Selected() {
		return "", ErrCancelled
	}
	return fm.Text(), nil
}
