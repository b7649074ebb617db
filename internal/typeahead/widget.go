// Package typeahead binds name fields to remote person and city searches and
// resolves the chosen suggestion back to an id in a companion field.
//
// The suggestion UI is reached only through Widget and the hosting form only
// through Page, so any widget implementation can be swapped in.
package typeahead

import "context"

// Options are the callbacks a binding hands to a Widget.
type Options struct {
	// Source returns the suggestion labels for query, in display order.
	Source func(ctx context.Context, query string) ([]string, error)
	// OnSelect is called with the chosen label and returns the text the name
	// field should show.
	OnSelect func(label string) string
}

// Widget attaches suggestion behavior to an input element.
type Widget interface {
	Bind(element string, opts Options) error
}

// Page is the form hosting the bound fields.
type Page interface {
	SetValue(fieldID, value string)
}
