package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/hallrush/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartGameRequest_Names(t *testing.T) {
	req := StartGameRequest{NumPlayers: 2, Player1: "ada", Player2: "  grace \t hopper ", Player3: "ignored"}
	assert.Equal(t, []string{"ada", "grace hopper"}, req.Names())

	assert.Empty(t, StartGameRequest{NumPlayers: -3}.Names())
	assert.Len(t, StartGameRequest{NumPlayers: 9}.Names(), 4)
}

func TestValidator_Roster(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Validate(Roster{Names: []string{"Ada", "Grace"}}))

	err := v.Validate(Roster{Names: []string{"Ada", ""}})
	require.Error(t, err)
	assert.Equal(t, []string{"Player 2 needs a name."}, ValidationMessages(err))

	blank := StartGameRequest{NumPlayers: 2, Player1: "Ada", Player2: " \t "}
	err = v.Validate(Roster{Names: blank.Names()})
	require.Error(t, err)
	assert.Equal(t, []string{"Player 2 needs a name."}, ValidationMessages(err))

	long := "abcdefghijklmnopqrstuvwxyzabcdefghij"
	err = v.Validate(Roster{Names: []string{long}})
	require.Error(t, err)
	assert.Equal(t, []string{"Player 1's name is too long (at most 32 characters)."}, ValidationMessages(err))
}

func TestValidator_StartGameRequest(t *testing.T) {
	v := NewValidator()

	err := v.Validate(StartGameRequest{NumPlayers: 5})
	require.Error(t, err)
	assert.Equal(t, []string{"Choose between 1 and 4 players."}, ValidationMessages(err))

	assert.NoError(t, v.Validate(StartGameRequest{NumPlayers: 1, Player1: "Ada"}))
}

func TestNewStateResponse(t *testing.T) {
	session := game.NewSession("g-1", game.NewRoster([]string{"Ada", "Grace"}), time.Now())
	session.Positions[1] = 45
	winner := 1
	session.Winner = &winner

	resp := NewStateResponse(session, []string{"🎲 Game started!"})
	assert.Equal(t, "g-1", resp.GameID)
	assert.Equal(t, "Grace", resp.Winner)
	assert.Equal(t, "Ada", resp.CurrentName)
	assert.Equal(t, PlayerResponse{Name: "Grace", Color: "green", Position: 45}, resp.Players[1])
}

func TestHomeHandler(t *testing.T) {
	e := echo.New()
	h := NewHomeHandler("/setup")
	e.GET("/", h.HomeGet)
	e.GET("/health", h.HealthGet)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/setup", rec.Header().Get(echo.HeaderLocation))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, "OK", rec.Body.String())
}
