package typeahead

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/FACorreiaa/go-typeahead/internal/types"
)

// Suggestion is a search record that can be shown as a label and resolved to an id.
type Suggestion interface {
	Label() string
	Identifier() int
}

// Binding is one bound (id field, name field) pair with its own lookup table.
type Binding[T Suggestion] struct {
	idField   string
	nameField string
	page      Page
	table     *LookupTable
	search    func(ctx context.Context, query string) ([]T, error)
	fetch     func(ctx context.Context, id int) (*T, error)
	logger    *slog.Logger
}

// Source queries the endpoint and records every returned label. Failures are
// logged and produce no suggestions.
func (b *Binding[T]) Source(ctx context.Context, query string) ([]string, error) {
	records, err := b.search(ctx, query)
	if err != nil {
		b.logger.WarnContext(ctx, "Typeahead search failed",
			slog.String("field", b.nameField),
			slog.String("query", query),
			slog.Any("error", err))
		return []string{}, nil
	}

	labels := make([]string, 0, len(records))
	for _, rec := range records {
		label := rec.Label()
		labels = append(labels, label)
		b.table.Put(label, rec.Identifier())
	}
	return labels, nil
}

// Select writes the id recorded for label into the id field, or "" if the
// label is unknown, and returns label unchanged.
func (b *Binding[T]) Select(label string) string {
	value := ""
	if id, ok := b.table.Get(label); ok {
		value = strconv.Itoa(id)
	}
	b.page.SetValue(b.idField, value)
	return label
}

// Resolve returns the id recorded for label.
func (b *Binding[T]) Resolve(label string) (int, bool) {
	return b.table.Get(label)
}

// Prefill loads the record for an existing id and fills both fields, as when
// an edit form opens with a value already chosen.
func (b *Binding[T]) Prefill(ctx context.Context, id int) error {
	rec, err := b.fetch(ctx, id)
	if err != nil {
		return fmt.Errorf("prefill %s with id %d: %w", b.nameField, id, err)
	}
	label := (*rec).Label()
	b.table.Put(label, (*rec).Identifier())
	b.page.SetValue(b.nameField, label)
	b.page.SetValue(b.idField, strconv.Itoa((*rec).Identifier()))
	return nil
}

// Options returns the widget callbacks for this binding.
func (b *Binding[T]) Options() Options {
	return Options{Source: b.Source, OnSelect: b.Select}
}

// Binder creates bindings on one page with one widget and searcher.
type Binder struct {
	Widget   Widget
	Page     Page
	Searcher Searcher
	Logger   *slog.Logger
}

// PersonTypeAhead binds nameField to the person search; selections write the
// person id into idField.
func (b *Binder) PersonTypeAhead(idField, nameField string) (*Binding[types.PersonLite], error) {
	binding := &Binding[types.PersonLite]{
		idField:   idField,
		nameField: nameField,
		page:      b.Page,
		table:     NewLookupTable(),
		search:    b.Searcher.SearchPeople,
		fetch:     b.Searcher.Person,
		logger:    b.logger().With(slog.String("typeahead", "person")),
	}
	if err := b.Widget.Bind(nameField, binding.Options()); err != nil {
		return nil, fmt.Errorf("binding person typeahead to %s: %w", nameField, err)
	}
	return binding, nil
}

// CityTypeAhead binds nameField to the city search. Labels are
// "<name>, <region>, <country>"; selections write the city id into idField.
func (b *Binder) CityTypeAhead(idField, nameField string) (*Binding[types.CityLite], error) {
	binding := &Binding[types.CityLite]{
		idField:   idField,
		nameField: nameField,
		page:      b.Page,
		table:     NewLookupTable(),
		search:    b.Searcher.SearchCities,
		fetch:     b.Searcher.City,
		logger:    b.logger().With(slog.String("typeahead", "city")),
	}
	if err := b.Widget.Bind(nameField, binding.Options()); err != nil {
		return nil, fmt.Errorf("binding city typeahead to %s: %w", nameField, err)
	}
	return binding, nil
}

func (b *Binder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}
