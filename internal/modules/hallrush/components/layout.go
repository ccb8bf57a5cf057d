// Package components renders the Hall Rush pages and live fragments.
package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const (
	htmxScript   = "https://unpkg.com/htmx.org@2.0.4"
	htmxWSScript = "https://unpkg.com/htmx-ext-ws@2.0.2/ws.js"
)

// PageTitle appends the game name to a page title.
func PageTitle(title string) string {
	if title != "" {
		return title + " - Hall Rush"
	}
	return "Hall Rush"
}

// Layout wraps page content in the HTML document shell.
func Layout(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><script src="%s"></script><script src="%s"></script><style>%s</style></head><body><main class="page">`,
			templ.EscapeString(PageTitle(title)), htmxScript, htmxWSScript, stylesheet); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

const stylesheet = `body{font-family:system-ui,sans-serif;background:#f4f1ea;margin:0}` +
	`.page{max-width:960px;margin:0 auto;padding:1.5rem}` +
	`.flash{padding:.75rem 1rem;border-radius:.5rem;margin-bottom:1rem}` +
	`.flash-success{background:#dcfce7}.flash-error{background:#fee2e2}` +
	`.track{display:grid;grid-template-columns:repeat(10,1fr);gap:4px;margin:1rem 0}` +
	`.tile{min-height:3rem;border:1px solid #ccc;border-radius:4px;background:#fff;font-size:.75rem;padding:2px}` +
	`.tile-special{background:#fef9c3}.tile-finish{background:#bbf7d0}` +
	`.token{display:inline-block;width:.9rem;height:.9rem;border-radius:50%;margin:1px}` +
	`.log{background:#fff;border-radius:.5rem;padding:1rem;max-height:20rem;overflow-y:auto}` +
	`.card{font-size:1.5rem;background:#fff;border-radius:1rem;padding:2rem;text-align:center}`
