package components

import (
	"fmt"
	"strconv"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

// SetupForm is the state of the setup form when it is re-rendered.
type SetupForm struct {
	NumPlayers int
	Names      []string
	Errors     []string
}

// SetupPage renders the form that starts a new game.
func SetupPage(flash g.Node, form SetupForm, maxPlayers int) g.Node {
	if form.NumPlayers == 0 {
		form.NumPlayers = 2
	}

	options := make([]g.Node, 0, maxPlayers)
	for n := 1; n <= maxPlayers; n++ {
		options = append(options, html.Option(
			html.Value(strconv.Itoa(n)),
			g.If(n == form.NumPlayers, html.Selected()),
			g.Textf("%d", n),
		))
	}

	inputs := make([]g.Node, 0, maxPlayers)
	for i := 0; i < maxPlayers; i++ {
		name := ""
		if i < len(form.Names) {
			name = form.Names[i]
		}
		field := fmt.Sprintf("player%d", i+1)
		inputs = append(inputs, html.Div(
			html.Label(html.For(field), g.Textf("Player %d", i+1)),
			html.Input(html.Type("text"), html.ID(field), html.Name(field), html.Value(name), html.MaxLength("32")),
		))
	}

	return html.Section(
		flash,
		html.H1(g.Text("🏫 Hall Rush")),
		html.P(g.Text("Race through the hallway to tile 45 before the bell rings.")),
		g.If(len(form.Errors) > 0, html.Ul(html.Class("flash flash-error"),
			g.Map(form.Errors, func(msg string) g.Node { return html.Li(g.Text(msg)) }),
		)),
		html.Form(html.Method("post"), html.Action("/start"),
			html.Label(html.For("num_players"), g.Text("Number of players")),
			html.Select(html.ID("num_players"), html.Name("num_players"), g.Group(options)),
			g.Group(inputs),
			html.Button(html.Type("submit"), g.Text("Start game")),
		),
	)
}
