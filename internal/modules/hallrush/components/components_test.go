package components

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nfrund/hallrush/internal/game"
	"github.com/nfrund/hallrush/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func render(t *testing.T, node g.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, node.Render(&buf))
	return buf.String()
}

func testSession() *game.Session {
	s := game.NewSession("g-1", game.NewRoster([]string{"Ada", "Grace"}), time.Now())
	s.Positions[1] = 12
	s.Skips[0] = 1
	s.Turn = 1
	return s
}

func TestLogPanel(t *testing.T) {
	out := render(t, LogPanel([]string{"🎲 Game started!", "<b>Ada</b> rolled"}, false))
	assert.Contains(t, out, `id="game-log"`)
	assert.Contains(t, out, "<li>🎲 Game started!</li>")
	assert.Contains(t, out, "&lt;b&gt;Ada&lt;/b&gt; rolled")
	assert.NotContains(t, out, "hx-swap-oob")

	assert.Contains(t, render(t, LogPanel(nil, true)), `hx-swap-oob="true"`)
}

func TestBoardPage(t *testing.T) {
	tiles := game.TileTable{5: {Type: game.TileWetFloor, Effect: -2}}
	out := render(t, BoardPage(g.Text(""), testSession(), tiles, []string{"line"}))

	assert.Contains(t, out, `hx-ext="ws"`)
	assert.Contains(t, out, `ws-connect="/ws/board"`)
	assert.Contains(t, out, `action="/roll"`)
	assert.Contains(t, out, "Grace: tile 12")
	assert.Contains(t, out, "Ada: tile 0 (skips 1)")
	assert.Contains(t, out, "tile tile-special")
	assert.Contains(t, out, "tile tile-finish")
	assert.Equal(t, 1, strings.Count(out, `title="Ada"`), "one token per player on the track")
	assert.Equal(t, 1, strings.Count(out, `title="Grace"`))
}

func TestLiveUpdate(t *testing.T) {
	withSession := render(t, LiveUpdate(testSession(), nil, []string{"x"}))
	assert.Contains(t, withSession, `id="board-track"`)
	assert.Equal(t, 2, strings.Count(withSession, `hx-swap-oob="true"`))

	withoutSession := render(t, LiveUpdate(nil, nil, []string{"x"}))
	assert.NotContains(t, withoutSession, `id="board-track"`)
	assert.Contains(t, withoutSession, `id="game-log"`)
}

func TestSetupPage(t *testing.T) {
	out := render(t, SetupPage(g.Text(""), SetupForm{NumPlayers: 3, Names: []string{"Ada"}, Errors: []string{"Player 2 needs a name."}}, game.MaxPlayers))

	assert.Contains(t, out, `name="player4"`)
	assert.Contains(t, out, `value="Ada"`)
	assert.Contains(t, out, `<option value="3" selected>3</option>`)
	assert.Contains(t, out, "Player 2 needs a name.")
}

func TestCardAndWinnerPages(t *testing.T) {
	assert.Contains(t, render(t, CardPage("Pop quiz!")), "Pop quiz!")
	assert.Contains(t, render(t, WinnerPage("Someone")), "🎉 Someone wins the game!")
}

func TestLayoutAndFlash(t *testing.T) {
	flash := FlashBanner(view.FlashData{Error: []string{"No <game> yet"}})
	page := Layout("Board", flash)

	var buf bytes.Buffer
	require.NoError(t, page.Render(context.Background(), &buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Board - Hall Rush</title>")
	assert.Contains(t, out, "htmx-ext-ws")
	assert.Contains(t, out, `class="flash flash-error"`)
	assert.Contains(t, out, "No &lt;game&gt; yet")
	assert.Equal(t, "Hall Rush", PageTitle(""))
}
