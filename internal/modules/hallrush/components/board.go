package components

import (
	"strconv"

	"github.com/nfrund/hallrush/internal/game"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

// Element IDs swapped by the live feed.
const (
	LogPanelID = "game-log"
	TrackID    = "board-track"
	BoardFeed  = "/ws/board"
)

// BoardPage renders the track, the players, the actions and the log.
func BoardPage(flash g.Node, session *game.Session, tiles game.TileTable, log []string) g.Node {
	return html.Section(
		hx.Ext("ws"), g.Attr("ws-connect", BoardFeed),
		flash,
		html.H1(g.Text("🏫 Hall Rush")),
		Track(session, tiles, false),
		Players(session),
		html.Div(html.Class("actions"),
			html.Form(html.Method("post"), html.Action("/roll"),
				html.Button(html.Type("submit"), g.Text("🎲 Roll the die")),
			),
			html.A(html.Href("/reset"), g.Text("🔄 Reset game")),
		),
		LogPanel(log, false),
	)
}

// Track renders tiles 0 through TotalTiles with each player's token.
func Track(session *game.Session, tiles game.TileTable, oob bool) g.Node {
	cells := make([]g.Node, 0, game.TotalTiles+1)
	for tile := 0; tile <= game.TotalTiles; tile++ {
		class := "tile"
		if _, special := tiles.Lookup(tile); special {
			class += " tile-special"
		}
		if tile == game.TotalTiles {
			class += " tile-finish"
		}

		var tokens []g.Node
		for i, pos := range session.Positions {
			if pos != tile {
				continue
			}
			player := session.Roster[i]
			tokens = append(tokens, html.Span(
				html.Class("token"),
				html.Style("background:"+player.Color),
				html.TitleAttr(player.Name),
			))
		}

		cells = append(cells, html.Div(html.Class(class),
			html.Data("tile", strconv.Itoa(tile)),
			html.Span(g.Text(strconv.Itoa(tile))),
			html.Div(g.Group(tokens)),
		))
	}

	return html.Div(html.ID(TrackID), html.Class("track"),
		g.If(oob, hx.SwapOOB("true")),
		g.Group(cells),
	)
}

// Players lists each seat with its position and pending skips.
func Players(session *game.Session) g.Node {
	rows := make([]g.Node, len(session.Roster))
	for i, player := range session.Roster {
		rows[i] = html.Li(
			g.If(i == session.Turn && !session.Finished(), html.Strong(g.Text("▶ "))),
			html.Span(html.Class("token"), html.Style("background:"+player.Color)),
			g.Textf(" %s: tile %d", player.Name, session.Positions[i]),
			g.If(session.Skips[i] > 0, g.Textf(" (skips %d)", session.Skips[i])),
		)
	}
	return html.Ul(html.Class("players"), g.Group(rows))
}

// LogPanel renders the narration journal. With oob set it is marked for an
// htmx out-of-band swap.
func LogPanel(lines []string, oob bool) g.Node {
	return html.Div(html.ID(LogPanelID), html.Class("log"),
		g.If(oob, hx.SwapOOB("true")),
		html.H2(g.Text("📝 Event log")),
		html.Ul(g.Map(lines, func(line string) g.Node { return html.Li(g.Text(line)) })),
	)
}

// LiveUpdate is pushed to viewers after every game event. The track is
// omitted when there is no session to draw.
func LiveUpdate(session *game.Session, tiles game.TileTable, lines []string) g.Node {
	if session == nil {
		return LogPanel(lines, true)
	}
	return g.Group([]g.Node{Track(session, tiles, true), LogPanel(lines, true)})
}
