package rendering

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

func TestRenderComponent(t *testing.T) {
	r := NewUniversalRenderer()
	ctx := context.Background()

	out, err := r.RenderComponent(ctx, html.P(g.Text("tile 12")))
	require.NoError(t, err)
	assert.Equal(t, "<p>tile 12</p>", string(out))

	tc := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<span>templ</span>")
		return err
	})
	out, err = r.RenderComponent(ctx, tc)
	require.NoError(t, err)
	assert.Equal(t, "<span>templ</span>", string(out))

	_, err = r.RenderComponent(ctx, 42)
	assert.Error(t, err)
}

func TestRenderPage(t *testing.T) {
	r := NewUniversalRenderer()
	e := echo.New()

	t.Run("writes html", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, r.RenderPage(c, http.StatusCreated, html.H1(g.Text("Hall Rush"))))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
		assert.Equal(t, "<h1>Hall Rush</h1>", rec.Body.String())
	})

	t.Run("failing component leaves response untouched", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		failing := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return errors.New("boom")
		})
		assert.Error(t, r.RenderPage(c, http.StatusOK, failing))
		assert.False(t, c.Response().Committed)
	})
}
