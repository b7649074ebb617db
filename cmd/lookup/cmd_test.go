package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-typeahead/internal/tui"
)

func newLookupServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/person/json/42":
			w.Write([]byte(`{"Id":42,"Name":"Grace Hopper","Gender":"Female"}`))
		case "/city/json/5":
			w.Write([]byte(`{"Id":5,"Name":"Paris","RegionAbbr":"75","CountryAbbr":"FR"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// pressKeys replaces the terminal prompt with a model fed the given keys.
func pressKeys(t *testing.T, keys ...tea.KeyType) *string {
	t.Helper()
	var initialSeen string
	orig := runPrompt
	t.Cleanup(func() { runPrompt = orig })

	runPrompt = func(ctx context.Context, w *tui.Widget, element, title, initial string) (string, error) {
		initialSeen = initial
		m, err := w.Model(ctx, element, title, initial)
		if err != nil {
			return "", err
		}
		var next tea.Model = m
		for _, k := range keys {
			next, _ = next.Update(tea.KeyMsg{Type: k})
		}
		fm := next.(tui.Model)
		if !fm.Selected() {
			return "", tui.ErrCancelled
		}
		return fm.Text(), nil
	}
	return &initialSeen
}

func TestLookupPrefillAccepted(t *testing.T) {
	server := newLookupServer(t)

	tests := []struct {
		kind    string
		id      string
		initial string
		want    string
	}{
		{"person", "42", "Grace Hopper", "42\tGrace Hopper\n"},
		{"city", "5", "Paris, 75, FR", "5\tParis, 75, FR\n"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			initial := pressKeys(t, tea.KeyEnter)

			var out bytes.Buffer
			root := newRootCmd(&out)
			root.SetArgs([]string{tt.kind, "--server", server.URL, "--id", tt.id})
			require.NoError(t, root.Execute())

			assert.Equal(t, tt.initial, *initial)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestLookupCancelPrintsNothing(t *testing.T) {
	server := newLookupServer(t)
	initial := pressKeys(t, tea.KeyEsc)

	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetArgs([]string{"person", "--server", server.URL})
	require.NoError(t, root.Execute())

	assert.Empty(t, *initial)
	assert.Empty(t, out.String())
}

func TestLookupPrefillUnknownID(t *testing.T) {
	server := newLookupServer(t)
	pressKeys(t, tea.KeyEnter)

	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetArgs([]string{"city", "--server", server.URL, "--id", "99"})
	root.SetErr(&bytes.Buffer{})

	assert.Error(t, root.Execute())
	assert.Empty(t, out.String())
}
