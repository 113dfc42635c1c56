package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHello(t *testing.T) {
	srv := httptest.NewServer(newMux(zap.NewNop()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	rr := httptest.NewRecorder()
	newMux(zap.NewNop()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.JSONEq(t, `{"hello_world":"world from go!"}`, rr.Body.String())
}

func TestHello_Routing(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"post to root", http.MethodPost, "/", http.StatusMethodNotAllowed},
		{"unknown path", http.MethodGet, "/pets", http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			newMux(zap.NewNop()).ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestListenAddr(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "")
	t.Setenv("SERVER_PORT", "")
	assert.Equal(t, "0.0.0.0:80", listenAddr())

	t.Setenv("SERVER_ADDRESS", "127.0.0.1")
	t.Setenv("SERVER_PORT", "8080")
	assert.Equal(t, "127.0.0.1:8080", listenAddr())
}

type failingWriter struct {
	header http.Header
	code   int
}

func (w *failingWriter) Header() http.Header       { return w.header }
func (w *failingWriter) WriteHeader(code int)      { w.code = code }
func (w *failingWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestHello_WriteErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := &failingWriter{header: http.Header{}}

	newMux(zap.New(core)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.code)
	entries := logs.FilterMessage("writing response").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "connection reset", entries[0].ContextMap()["error"])
}
