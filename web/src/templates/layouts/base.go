package layouts

import (
	"time"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/kayotsaha/authweb/internal/view"
	"github.com/kayotsaha/authweb/web/src/templates/partials"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Refresh asks the browser to move to URL once Delay has passed.
type Refresh struct {
	URL   string
	Delay time.Duration
}

// Page is what every full page hands to Base.
type Page struct {
	Title   string
	Flash   view.FlashData
	Refresh *Refresh
}

// Base wraps page content in the shared document shell.
func Base(p Page, content ...cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				cmp.Iff(p.Refresh != nil, func() cmp.Node {
					return g.Meta(cmp.Attr("http-equiv", "refresh"), g.Content(refreshContent(p.Refresh.Delay, p.Refresh.URL)))
				}),
				g.TitleEl(cmp.Text(CalculateTitle(p.Title))),
				g.Link(g.Rel("stylesheet"), g.Href("/static/app.css")),
				g.Script(g.Src(htmxSrc), g.Defer()),
			),
			g.Body(
				g.Main(
					g.Class("page"),
					g.Div(
						g.Class("card"),
						view.AdaptTemplToGomponent(partials.Flash(p.Flash)),
						cmp.Group(content),
					),
				),
			),
		),
	)
}
