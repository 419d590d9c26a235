package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lumenarts/gallery-api/pkg/logger"
)

func TestRequestIDKeepsOrReplacesInboundID(t *testing.T) {
	cases := map[string]struct {
		inbound string
		keep    bool
	}{
		"missing":       {inbound: "", keep: false},
		"plain":         {inbound: "req-42", keep: true},
		"control chars": {inbound: "req\x01forged", keep: false},
		"spaces inside": {inbound: "two words", keep: false},
		"too long":      {inbound: strings.Repeat("a", maxRequestIDLen+1), keep: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.inbound != "" {
				req.Header.Set(requestIDHeader, tc.inbound)
			}
			resp := httptest.NewRecorder()
			RequestID(nil)(okHandler()).ServeHTTP(resp, req)

			got := resp.Header().Get(requestIDHeader)
			require.NotEmpty(t, got)
			if tc.keep {
				require.Equal(t, tc.inbound, got)
			} else {
				require.NotEqual(t, tc.inbound, got)
			}
		})
	}
}

func TestLoggingWritesAccessLine(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.InfoLevel, Output: &buf})

	handler := RequestID(logg)(Logging(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("made"))
	})))
	req := httptest.NewRequest(http.MethodPost, "/api/styles", nil)
	req.Header.Set(requestIDHeader, "req-7")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	require.Equal(t, "request.complete", line["message"])
	require.Equal(t, "info", line["level"])
	require.Equal(t, "req-7", line["request_id"])
	require.Equal(t, "/api/styles", line["path"])
	require.EqualValues(t, http.StatusCreated, line["status"])
	require.EqualValues(t, 4, line["bytes"])
}

func TestLoggingWarnsOnServerErrors(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.InfoLevel, Output: &buf})

	handler := Logging(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	require.Equal(t, "warn", line["level"])
	require.EqualValues(t, http.StatusServiceUnavailable, line["status"])
}

func TestLoggingDefaultsStatusWhenHandlerWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.InfoLevel, Output: &buf})

	Logging(logg)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	require.EqualValues(t, http.StatusOK, line["status"])
}
