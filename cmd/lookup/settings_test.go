package main

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	for _, key := range []string{"TYPEAHEAD_SERVER_URL", "TYPEAHEAD_TIMEOUT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", s.ServerURL)
	assert.Equal(t, 5*time.Second, s.Timeout)
}

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Setenv("TYPEAHEAD_SERVER_URL", "http://api:9000")
	t.Setenv("TYPEAHEAD_TIMEOUT", "750ms")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "http://api:9000", s.ServerURL)
	assert.Equal(t, 750*time.Millisecond, s.Timeout)
}

func TestLoadSettingsInvalidTimeout(t *testing.T) {
	t.Setenv("TYPEAHEAD_TIMEOUT", "soon")

	_, err := LoadSettings()
	assert.Error(t, err)
}

func TestRootCommandFlags(t *testing.T) {
	t.Setenv("TYPEAHEAD_SERVER_URL", "http://env:8000")
	root := newRootCmd(&bytes.Buffer{})

	assert.Equal(t, "http://env:8000", root.PersistentFlags().Lookup("server").DefValue)

	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"person", "city"}, names)
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printResult(&buf, "5", "Paris, 75, FR"))
	assert.Equal(t, "5\tParis, 75, FR\n", buf.String())
}
