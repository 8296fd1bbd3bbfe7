package logging

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWithWriterLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := NewWithWriter("warn", &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	require.NoError(t, log.Sync())

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "WARN")
	require.Contains(t, buf.String(), "shown")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New("chatty")
	require.Error(t, err)
}

func TestRequests(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := NewWithWriter("debug", &buf)
	require.NoError(t, err)

	h := Requests(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/docs/guides/swap", nil))

	require.Contains(t, buf.String(), "/docs/guides/swap")
	require.Contains(t, buf.String(), "418")
}
