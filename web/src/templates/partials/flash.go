package partials

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/kayotsaha/authweb/internal/view"
)

// Flash renders queued flash messages. It renders nothing when there are none.
func Flash(data view.FlashData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if data.Empty() {
			return nil
		}
		if _, err := io.WriteString(w, `<div id="flash" class="flash">`); err != nil {
			return err
		}
		for _, msg := range data.Success {
			if err := writeFlash(w, "flash-success", "status", msg); err != nil {
				return err
			}
		}
		for _, msg := range data.Error {
			if err := writeFlash(w, "flash-error", "alert", msg); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func writeFlash(w io.Writer, class, role, msg string) error {
	_, err := io.WriteString(w, `<p class="`+class+`" role="`+role+`">`+templ.EscapeString(msg)+`</p>`)
	return err
}
