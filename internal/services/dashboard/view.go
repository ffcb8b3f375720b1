package dashboard

import (
	"github.com/louisbranch/insightboard/internal/services/dashboard/i18n"
	"github.com/louisbranch/insightboard/internal/services/dashboard/report"
	"github.com/louisbranch/insightboard/internal/services/dashboard/routepath"
	"github.com/louisbranch/insightboard/internal/services/dashboard/templates"
	"golang.org/x/text/language"
)

func pageView(page report.Page, tag language.Tag) templates.PageView {
	printer := i18n.Printer(tag)
	view := templates.PageView{
		Lang:  tag.String(),
		Title: page.Title,
		Styles: templates.StyleView{
			Container:      page.Styles.Container,
			ChartContainer: page.Styles.ChartContainer,
			Analysis:       page.Styles.Analysis,
			Title:          page.Styles.Title,
		},
		Stylesheets: page.Styles.Stylesheets,
		ScriptURL:   templates.PlotlyScriptURL,
		Sections:    make([]templates.SectionView, 0, len(page.Sections)),
	}
	for _, supported := range i18n.Supported() {
		base, _ := supported.Base()
		view.Languages = append(view.Languages, templates.LanguageOption{
			Tag:    supported.String(),
			Label:  printer.Sprintf("core.language." + base.String()),
			URL:    routepath.RootWithLang(supported.String()),
			Active: supported == tag,
		})
	}
	for _, s := range page.Sections {
		view.Sections = append(view.Sections, templates.SectionView{
			ID:              s.ID,
			Title:           s.Title,
			Heading:         s.Heading,
			Intro:           s.Intro,
			Bullets:         s.Bullets,
			CalloutLabel:    s.Callout.Label,
			CalloutText:     s.Callout.Text,
			CalloutEmphasis: s.Callout.Style == report.CalloutEm,
			ChartKind:       string(s.Chart.Kind),
			Figure:          s.Figure,
		})
	}
	return view
}
