package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const chartBootstrap = `(function () {
  document.querySelectorAll("div.chart[data-figure]").forEach(function (el) {
    var source = document.getElementById(el.getAttribute("data-figure"));
    if (!source || !window.Plotly) { return; }
    var figure = JSON.parse(source.textContent);
    Plotly.newPlot(el, figure.data, figure.layout, {responsive: true});
  });
})();`

// Document renders the full dashboard page.
func Document(view PageView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<!doctype html><html")
		h.attr("lang", view.Lang)
		h.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		h.element("title", view.Title)
		for _, href := range view.Stylesheets {
			h.raw("<link rel=\"stylesheet\"")
			h.attr("href", href)
			h.raw(">")
		}
		if view.ScriptURL != "" {
			h.raw("<script")
			h.attr("src", view.ScriptURL)
			h.raw(" charset=\"utf-8\"></script>")
		}
		h.raw("</head><body><div class=\"container\"")
		h.attr("style", view.Styles.Container)
		h.raw("><h1")
		h.attr("style", view.Styles.Title)
		h.raw(">")
		h.text(view.Title)
		h.raw("</h1>")
		h.component(ctx, LanguageSwitch(view.Languages))
		for _, section := range view.Sections {
			h.component(ctx, Section(section, view.Styles))
		}
		h.raw("</div><script>")
		h.raw(chartBootstrap)
		h.raw("</script></body></html>")
		return h.err
	})
}

// LanguageSwitch renders links to the other supported languages.
func LanguageSwitch(options []LanguageOption) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(options) == 0 {
			return nil
		}
		h := &htmlWriter{w: w}
		h.raw("<nav class=\"languages\">")
		for _, opt := range options {
			h.raw("<a")
			h.attr("href", opt.URL)
			h.attr("hreflang", opt.Tag)
			if opt.Active {
				h.raw(" aria-current=\"true\"")
			}
			h.raw(">")
			h.text(opt.Label)
			h.raw("</a> ")
		}
		h.raw("</nav>")
		return h.err
	})
}

// Section renders one analysis block followed by its chart mount and the
// figure JSON the bootstrap script plots.
func Section(view SectionView, styles StyleView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<div class=\"section\"")
		h.attr("id", view.ID)
		h.attr("style", styles.ChartContainer)
		h.raw(">")
		h.element("h2", view.Title)
		h.raw("<div class=\"analysis\"")
		h.attr("style", styles.Analysis)
		h.raw(">")
		h.element("h3", view.Heading)
		h.element("p", view.Intro)
		h.raw("<ul>")
		for _, bullet := range view.Bullets {
			h.element("li", bullet)
		}
		h.raw("</ul><p>")
		if view.CalloutEmphasis {
			h.element("em", view.CalloutLabel)
		} else {
			h.element("strong", view.CalloutLabel)
		}
		h.text(view.CalloutText)
		h.raw("</p></div><div class=\"chart\"")
		h.attr("id", "chart-"+view.ID)
		h.attr("data-chart-kind", view.ChartKind)
		h.attr("data-figure", FigureScriptID(view.ID))
		h.raw("></div>")
		h.component(ctx, templ.JSONScript(FigureScriptID(view.ID), view.Figure))
		h.raw("</div>")
		return h.err
	})
}
