package deckengine

import (
	"github.com/labstack/echo/v4"

	"github.com/eringen/deckengine/locale"
	"github.com/eringen/deckengine/present"
	"github.com/eringen/deckengine/views"
)

// translator picks the UI language from Accept-Language, falling back to the
// configured locale.
func (a *App) translator(c echo.Context) *locale.Translator {
	return a.locales.Translator(c.Request().Header.Get("Accept-Language"), a.Config.Locale)
}

// Labels resolves every chrome string for one state.
func Labels(t *locale.Translator, s present.State) views.Labels {
	return views.Labels{
		Lang:         t.Lang(),
		Previous:     t.T("previous"),
		Next:         t.T("next"),
		Export:       t.T("export"),
		Close:        t.T("close"),
		Print:        t.T("print"),
		Progress:     t.T("progress", map[string]any{"Current": s.Current(), "Total": s.Total}),
		SlideOf:      t.T("slide_of", map[string]any{"Current": s.Current(), "Total": s.Total}),
		Presenter:    t.T("presenter"),
		Password:     t.T("password"),
		Login:        t.T("login"),
		Logout:       t.T("logout"),
		LoginFailed:  t.T("login_failed"),
		History:      t.T("history"),
		HistoryEmpty: t.T("history_empty"),
		NotFound:     t.T("not_found"),
		ServerError:  t.T("server_error"),
		Back:         t.T("back"),
		Time:         t.T("time"),
		Fin:          t.T("fin"),
		Message:      t.T("message"),
		Spiral:       t.T("spiral"),
	}
}

func (a *App) labels(c echo.Context) views.Labels {
	return Labels(a.translator(c), a.Controller.State())
}

func transitionRows(ts []Transition) []views.Transition {
	rows := make([]views.Transition, len(ts))
	for i, t := range ts {
		rows[i] = views.Transition{
			At:      t.At.Local().Format("2006-01-02 15:04:05"),
			Event:   t.Event,
			From:    t.From,
			To:      t.To,
			SlideID: t.SlideID,
			Mode:    t.Mode,
		}
	}
	return rows
}
