package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var sawContextLogger bool
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawContextLogger = LoggerFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/reservas", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sawContextLogger, "expected handler to see the request scoped logger")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var started map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &started))
	assert.Equal(t, "request started", started["msg"])
	assert.Equal(t, "GET", started["method"])
	assert.Equal(t, "/reservas", started["path"])
	assert.NotEmpty(t, started["request_id"])

	var completed map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &completed))
	assert.Equal(t, "request completed", completed["msg"])
	assert.Equal(t, started["request_id"], completed["request_id"])
}

func TestRequestLoggerAssignsFreshIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ids := make(map[string]struct{})
	for range 3 {
		buf.Reset()
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cursos", nil))

		var entry map[string]any
		line := bytes.SplitN(bytes.TrimSpace(buf.Bytes()), []byte("\n"), 2)[0]
		require.NoError(t, json.Unmarshal(line, &entry))
		id, _ := entry["request_id"].(string)
		require.NotEmpty(t, id)
		ids[id] = struct{}{}
	}

	assert.Len(t, ids, 3, "expected a distinct request id per request")
}
