package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/hallrush/internal/config"
	"github.com/nfrund/hallrush/internal/module"
	"github.com/nfrund/hallrush/internal/registry"
	"github.com/nfrund/hallrush/internal/rendering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPErrorHandler_WithStackTrace(t *testing.T) {
	// --- Setup ---
	e := echo.New()

	// Capture log output through a text handler on the default logger.
	var logBuffer bytes.Buffer
	handler := slog.NewTextHandler(&logBuffer, &slog.HandlerOptions{
		AddSource: true,
	})
	originalLogger := slog.Default()
	slog.SetDefault(slog.New(handler))
	defer slog.SetDefault(originalLogger)

	setupErrorHandling(e)

	e.GET("/test-unhandled-error", func(c echo.Context) error {
		return errors.New("a deliberate unhandled error occurred")
	})

	// --- Act ---
	req := httptest.NewRequest(http.MethodGet, "/test-unhandled-error", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// --- Assert ---
	require.Equal(t, http.StatusInternalServerError, rec.Code, "Expected a 500 Internal Server Error response")

	logOutput := logBuffer.String()
	assert.Contains(t, logOutput, "Internal Server Error (Unhandled)", "Log message should indicate an unhandled error")
	assert.Contains(t, logOutput, "error=\"a deliberate unhandled error occurred\"", "Log should contain the original error message")
	assert.Contains(t, logOutput, "stack_trace=", "Log must contain the stack_trace field")

	// A real stack trace names the debug package and this test file.
	assert.Contains(t, logOutput, "runtime/debug/stack.go", "Stack trace should originate from the debug package")
	assert.Contains(t, logOutput, "internal/server/server_test.go", "Stack trace should point back to this test file")
}

func TestHTTPErrorHandler_HTTPErrorPassesThrough(t *testing.T) {
	e := echo.New()

	var logBuffer bytes.Buffer
	originalLogger := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logBuffer, nil)))
	defer slog.SetDefault(originalLogger)

	setupErrorHandling(e)

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, logBuffer.String(), "stack_trace=")
}

// recordingModule notes the lifecycle calls it receives.
type recordingModule struct {
	module.BaseModule
	name  string
	calls *[]string
}

func (m *recordingModule) Name() string { return m.name }

func (m *recordingModule) Register(reg *registry.Registry) error {
	*m.calls = append(*m.calls, "register:"+m.name)
	return nil
}

func (m *recordingModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	*m.calls = append(*m.calls, "boot:"+m.name)
	g.GET("/"+m.name, func(c echo.Context) error { return c.String(http.StatusOK, m.name) })
	return nil
}

func (m *recordingModule) Shutdown(ctx context.Context) error {
	*m.calls = append(*m.calls, "shutdown:"+m.name)
	return nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Dependencies{
		Config:   &config.Config{ServerAddr: ":0", SessionSecret: "test-secret"},
		Renderer: rendering.NewUniversalRenderer(),
	})
	require.NoError(t, err)
	s.RegisterRoutes()
	return s
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(Dependencies{})
	assert.Error(t, err)
}

func TestRegisterRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/setup", rec.Header().Get(echo.HeaderLocation))

	rec = httptest.NewRecorder()
	s.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestInitModules_Lifecycle(t *testing.T) {
	s := newTestServer(t)

	var calls []string
	modules := []module.Module{
		&recordingModule{name: "first", calls: &calls},
		&recordingModule{name: "second", calls: &calls},
	}
	require.NoError(t, s.InitModules(context.Background(), modules, registry.New(s.Cfg)))

	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/second", nil))
	assert.Equal(t, "second", rec.Body.String())

	require.NoError(t, s.Shutdown(context.Background()))
	assert.Equal(t, []string{
		"register:first", "register:second",
		"boot:first", "boot:second",
		"shutdown:second", "shutdown:first",
	}, calls)
}
