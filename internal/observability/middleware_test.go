package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInjectLoggerMiddleware(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	handler := InjectLoggerMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Info("from handler")
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/characters", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, 1, logs.FilterMessage("from handler").Len())
}

func TestRequestLoggerMiddlewareLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		want   string
	}{
		{name: "success logs info", status: http.StatusOK, want: "INFO"},
		{name: "client error logs warn", status: http.StatusNotFound, want: "WARN"},
		{name: "server error logs error", status: http.StatusBadGateway, want: "ERROR"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zap.InfoLevel)
			logger := zap.New(core)

			var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})
			handler = RequestLoggerMiddleware()(handler)
			handler = InjectLoggerMiddleware(logger)(handler)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/planets", nil))

			entries := logs.FilterMessage("request completed").All()
			require.Len(t, entries, 1)
			require.Equal(t, tc.want, entries[0].Level.CapitalString())

			fields := entries[0].ContextMap()
			require.EqualValues(t, tc.status, fields["status"])
			require.Equal(t, http.MethodGet, fields["method"])
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	handler := RecoveryMiddleware(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestFromContextDefaultsToNoop(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NotNil(t, FromContext(req.Context()))
}
