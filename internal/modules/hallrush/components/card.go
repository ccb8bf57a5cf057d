package components

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

// CardPage shows the text of the card just drawn.
func CardPage(text string) g.Node {
	return html.Section(
		html.H1(g.Text("🃏 Hall Rush Card")),
		html.Div(html.Class("card"), g.Text(text)),
		html.P(html.A(html.Href("/board"), g.Text("Back to the board"))),
	)
}

// WinnerPage congratulates the winner.
func WinnerPage(name string) g.Node {
	return html.Section(
		html.H1(g.Textf("🎉 %s wins the game!", name)),
		html.P(g.Text("The bell rang and the hallway is clear.")),
		html.P(html.A(html.Href("/reset"), g.Text("Play again"))),
	)
}
