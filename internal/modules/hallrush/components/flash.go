package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/nfrund/hallrush/internal/view"
)

// FlashBanner renders pending flash messages. It renders nothing when empty.
func FlashBanner(flashes view.FlashData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, msg := range flashes.Success {
			if _, err := fmt.Fprintf(w, `<div class="flash flash-success" role="status">%s</div>`, templ.EscapeString(msg)); err != nil {
				return err
			}
		}
		for _, msg := range flashes.Error {
			if _, err := fmt.Fprintf(w, `<div class="flash flash-error" role="alert">%s</div>`, templ.EscapeString(msg)); err != nil {
				return err
			}
		}
		return nil
	})
}
