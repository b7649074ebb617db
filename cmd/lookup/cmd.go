package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	appLogger "github.com/FACorreiaa/go-typeahead/app/logger"
	"github.com/FACorreiaa/go-typeahead/internal/tui"
	"github.com/FACorreiaa/go-typeahead/internal/typeahead"
)

const (
	idField   = "id"
	nameField = "name"
)

var (
	serverURL string
	prefillID int
)

// runPrompt shows the terminal prompt for element and returns the chosen label.
var runPrompt = func(ctx context.Context, w *tui.Widget, element, title, initial string) (string, error) {
	return w.Run(ctx, element, title, initial, tea.WithOutput(os.Stderr))
}

// prefiller is the part of a binding the lookup needs besides its widget options.
type prefiller interface {
	Prefill(ctx context.Context, id int) error
}

func newRootCmd(out io.Writer) *cobra.Command {
	settings, settingsErr := LoadSettings()
	if settingsErr != nil {
		settings = &Settings{}
	}

	root := &cobra.Command{
		Use:   "lookup",
		Short: "Pick a person or city by name",
		Long: `Pick a person or city by name with suggestions from the search service.

The chosen record is printed as "<id>\t<label>". Press Esc to cancel.

Examples:
  lookup city                      # prompt for a city
  lookup person --id 42            # start from person 42
  lookup city --server http://api:8000`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return settingsErr
		},
	}
	root.PersistentFlags().StringVar(&serverURL, "server", settings.ServerURL, "base URL of the search service")
	root.PersistentFlags().DurationVar(&settings.Timeout, "timeout", settings.Timeout, "timeout for each search request")
	root.PersistentFlags().IntVar(&prefillID, "id", 0, "prefill the field from this record id")

	root.AddCommand(&cobra.Command{
		Use:   "person",
		Short: "Look up a person",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd.Context(), out, settings, "Person", func(b *typeahead.Binder) (prefiller, error) {
				return b.PersonTypeAhead(idField, nameField)
			})
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "city",
		Short: "Look up a city",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd.Context(), out, settings, "City", func(b *typeahead.Binder) (prefiller, error) {
				return b.CityTypeAhead(idField, nameField)
			})
		},
	})
	return root
}

func runLookup(ctx context.Context, out io.Writer, settings *Settings, title string, bind func(*typeahead.Binder) (prefiller, error)) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := appLogger.New(settings.Env, os.Stderr)
	widget := tui.NewWidget()
	form := typeahead.NewForm()
	binder := &typeahead.Binder{
		Widget:   widget,
		Page:     form,
		Searcher: typeahead.NewClient(serverURL, &http.Client{Timeout: settings.Timeout}, logger),
		Logger:   logger,
	}

	binding, err := bind(binder)
	if err != nil {
		return err
	}
	if prefillID > 0 {
		if err := binding.Prefill(ctx, prefillID); err != nil {
			return fmt.Errorf("prefilling %d: %w", prefillID, err)
		}
	}

	label, err := runPrompt(ctx, widget, nameField, title, form.Value(nameField))
	if errors.Is(err, tui.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}
	return printResult(out, form.Value(idField), label)
}

func printResult(out io.Writer, id, label string) error {
	_, err := fmt.Fprintf(out, "%s\t%s\n", id, label)
	return err
}
