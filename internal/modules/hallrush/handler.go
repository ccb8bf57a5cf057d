package hallrush

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/hallrush/internal/domain"
	"github.com/nfrund/hallrush/internal/game"
	"github.com/nfrund/hallrush/internal/handlers"
	"github.com/nfrund/hallrush/internal/middleware"
	"github.com/nfrund/hallrush/internal/modules/hallrush/components"
	"github.com/nfrund/hallrush/internal/rendering"
	"github.com/nfrund/hallrush/internal/view"
	g "maragu.dev/gomponents"
)

// MaskedCardError replaces any failure on the card path.
const MaskedCardError = "Error: Couldn't load or apply card."

// Flash texts.
const (
	flashNoGame     = "No game in progress. Set up a new game to play."
	flashStarted    = "Game started. Good luck!"
	flashReset      = "Game reset."
	flashBadConfig  = "The board configuration could not be loaded."
	defaultWinner   = "Someone"
	winnerNameParam = "name"
)

// Handler serves the Hall Rush pages.
type Handler struct {
	service  *Service
	catalog  Catalog
	renderer rendering.Renderer
}

// NewHandler creates a Handler.
func NewHandler(service *Service, catalog Catalog, renderer rendering.Renderer) *Handler {
	return &Handler{service: service, catalog: catalog, renderer: renderer}
}

func (h *Handler) page(c echo.Context, status int, title string, content g.Node) error {
	return h.renderer.RenderPage(c, status, components.Layout(title, view.AdaptGomponentToTempl(content)))
}

func (h *Handler) flash(c echo.Context) g.Node {
	return view.AdaptTemplToGomponent(c.Request().Context(), components.FlashBanner(view.GetFlashData(c)))
}

func (h *Handler) noGame(c echo.Context) error {
	view.SetFlashError(c, flashNoGame)
	return c.Redirect(http.StatusSeeOther, "/setup")
}

// SetupGet renders the setup form (GET /setup).
func (h *Handler) SetupGet(c echo.Context) error {
	return h.page(c, http.StatusOK, "Setup", components.SetupPage(h.flash(c), components.SetupForm{}, game.MaxPlayers))
}

// StartPost starts a new game from the setup form (POST /start).
func (h *Handler) StartPost(c echo.Context) error {
	var req handlers.StartGameRequest
	if err := c.Bind(&req); err != nil {
		return h.setupInvalid(c, req, []string{"Please check the form and try again."})
	}
	if err := c.Validate(&req); err != nil {
		return h.setupInvalid(c, req, handlers.ValidationMessages(err))
	}
	roster := handlers.Roster{Names: req.Names()}
	if err := c.Validate(&roster); err != nil {
		return h.setupInvalid(c, req, handlers.ValidationMessages(err))
	}

	session, err := h.service.Start(c.Request().Context(), roster.Names)
	if err != nil {
		return err
	}
	middleware.FromContext(c.Request().Context()).Info("Game started", "game_id", session.GameID, "players", len(session.Roster))
	view.SetFlashSuccess(c, flashStarted)
	return c.Redirect(http.StatusSeeOther, "/board")
}

func (h *Handler) setupInvalid(c echo.Context, req handlers.StartGameRequest, msgs []string) error {
	form := components.SetupForm{
		NumPlayers: req.NumPlayers,
		Names:      []string{req.Player1, req.Player2, req.Player3, req.Player4},
		Errors:     msgs,
	}
	return h.page(c, http.StatusUnprocessableEntity, "Setup", components.SetupPage(h.flash(c), form, game.MaxPlayers))
}

// BoardGet renders the board (GET /board). It redirects to a forced card
// draw when the card timer has run out.
func (h *Handler) BoardGet(c echo.Context) error {
	ctx := c.Request().Context()

	due, err := h.service.CheckCardTimer(ctx)
	if errors.Is(err, domain.ErrStateUnavailable) {
		return h.noGame(c)
	}
	if err != nil {
		return err
	}
	if due {
		return c.Redirect(http.StatusSeeOther, "/draw_card")
	}

	board, err := h.service.Board(ctx)
	if errors.Is(err, domain.ErrStateUnavailable) {
		return h.noGame(c)
	}
	if err != nil {
		return err
	}

	tiles, err := h.catalog.Tiles(ctx)
	if err != nil {
		// The board still renders, only without special tile highlights.
		middleware.FromContext(ctx).Warn("Tile table unavailable for board render", "error", err)
		tiles = game.TileTable{}
	}
	return h.page(c, http.StatusOK, "Board", components.BoardPage(h.flash(c), board.Session, tiles, board.Log))
}

// Roll resolves one turn (GET or POST /roll) and redirects to wherever
// play continues.
func (h *Handler) Roll(c echo.Context) error {
	ctx := c.Request().Context()

	session, result, err := h.service.Roll(ctx)
	switch {
	case errors.Is(err, domain.ErrStateUnavailable):
		return h.noGame(c)
	case errors.Is(err, domain.ErrGameOver):
		return c.Redirect(http.StatusSeeOther, winnerURL(session.WinnerName()))
	case errors.Is(err, domain.ErrConfigUnavailable):
		middleware.FromContext(ctx).Error("Roll failed", "error", err)
		view.SetFlashError(c, flashBadConfig)
		return c.Redirect(http.StatusSeeOther, "/board")
	case err != nil:
		return err
	}

	middleware.FromContext(ctx).Debug("Turn resolved", "game_id", session.GameID, "outcome", result.Outcome.Kind.String(), "roll", result.Outcome.Roll)
	switch result.Outcome.Kind {
	case game.OutcomeDrawCard:
		return c.Redirect(http.StatusSeeOther, "/draw_card")
	case game.OutcomeWin:
		return c.Redirect(http.StatusSeeOther, winnerURL(session.Roster.Name(result.Outcome.Player)))
	default:
		return c.Redirect(http.StatusSeeOther, "/board")
	}
}

// DrawCardGet draws and applies a card (GET /draw_card). Every failure is
// logged and shown as the same masked text.
func (h *Handler) DrawCardGet(c echo.Context) error {
	text := MaskedCardError
	result, err := h.service.DrawCard(c.Request().Context())
	if err != nil {
		middleware.FromContext(c.Request().Context()).Error("Card draw failed", "error", err)
	} else {
		text = result.Card.Text
	}
	return h.page(c, http.StatusOK, "Card", components.CardPage(text))
}

// WinnerGet renders the winner page (GET /winner?name=).
func (h *Handler) WinnerGet(c echo.Context) error {
	name := c.QueryParam(winnerNameParam)
	if name == "" {
		name = defaultWinner
	}
	return h.page(c, http.StatusOK, "Winner", components.WinnerPage(name))
}

// ResetGet resets the board (GET /reset).
func (h *Handler) ResetGet(c echo.Context) error {
	if err := h.service.Reset(c.Request().Context()); err != nil {
		return err
	}
	view.SetFlashSuccess(c, flashReset)
	return c.Redirect(http.StatusSeeOther, "/setup")
}

// StateGet serves the JSON snapshot (GET /api/state).
func (h *Handler) StateGet(c echo.Context) error {
	board, err := h.service.Board(c.Request().Context())
	if errors.Is(err, domain.ErrStateUnavailable) {
		return c.JSON(http.StatusNotFound, handlers.ErrorResponse{Code: "no_game", Message: flashNoGame})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, handlers.NewStateResponse(board.Session, board.Log))
}

func winnerURL(name string) string {
	if name == "" {
		return "/winner"
	}
	return "/winner?" + url.Values{winnerNameParam: {name}}.Encode()
}
