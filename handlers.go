package deckengine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/eringen/deckengine/deck"
	"github.com/eringen/deckengine/present"
	"github.com/eringen/deckengine/views"
)

var errUnmappedKey = errors.New("deckengine: key has no binding")

func (a *App) handleIndex(c echo.Context) error {
	st, d := a.Controller.Snapshot()
	labels := Labels(a.translator(c), st)
	canControl := a.canControl(c)

	if st.Mode == present.Exporting {
		r := views.SlideRenderer{Labels: labels}
		body, err := a.Exports.Get(c.Request().Context(), st.Revision, labels.Lang, views.ExportSlides(r, d))
		if err != nil {
			return err
		}
		return Render(c, views.ExportPage(views.ExportData{
			DeckTitle:  d.Title(),
			Footer:     d.Footer(),
			Slides:     templ.Raw(string(body)),
			State:      st,
			Labels:     labels,
			CSRFToken:  CsrfToken(c),
			CanControl: canControl,
		}))
	}

	return Render(c, views.Page(views.PageData{
		DeckTitle:  d.Title(),
		Footer:     d.Footer(),
		Slide:      d.At(st.Position),
		State:      st,
		Labels:     labels,
		CSRFToken:  CsrfToken(c),
		CanControl: canControl,
		Meta: views.PageMeta{
			Description: d.Footer(),
			URL:         BuildURL(a.Config.SiteURL),
			Image:       BuildURL(a.Config.SiteURL, "preview.png"),
		},
	}))
}

func (a *App) handleState(c echo.Context) error {
	return c.JSON(http.StatusOK, a.Controller.State())
}

// handleInput applies one event, named directly (event=next) or through a
// key binding (key=ArrowRight).
func (a *App) handleInput(c echo.Context) error {
	if !a.canControl(c) {
		return echo.NewHTTPError(http.StatusForbidden, "presenter sign-in required")
	}
	ev, err := inputEvent(c.FormValue("event"), c.FormValue("key"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tr := a.Controller.Apply(ev)
	ctx := c.Request().Context()
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("deck.event", ev.String()),
		attribute.Int("deck.from", tr.From.Position),
		attribute.Int("deck.to", tr.To.Position),
		attribute.String("deck.mode", tr.To.Mode.String()),
	)
	if tr.Changed() {
		a.record(ctx, ev.String(), tr.From, tr.To)
	}

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, tr.To)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func inputEvent(name, key string) (present.Event, error) {
	if name = strings.TrimSpace(name); name != "" {
		return present.ParseEvent(name)
	}
	if key == "" {
		return 0, errors.New("deckengine: event or key is required")
	}
	ev, ok := present.EventForKey(key)
	if !ok {
		return 0, fmt.Errorf("%w: %q", errUnmappedKey, key)
	}
	return ev, nil
}

// ReplaceDeck swaps the presented deck, e.g. after the deck file changed on
// disk. Followers reload through the revision bump.
func (a *App) ReplaceDeck(ctx context.Context, d *deck.Deck) {
	tr := a.Controller.Replace(d)
	if a.Exports != nil {
		a.Exports.Invalidate()
	}
	a.Logger.Info("deck replaced",
		zap.Int("slides", d.Len()),
		zap.Int("revision", tr.To.Revision),
		zap.Int("position", tr.To.Position),
	)
	a.record(ctx, tr.Event.String(), tr.From, tr.To)
}

func (a *App) record(ctx context.Context, event string, from, to present.State) {
	a.Logger.Debug("transition",
		zap.String("event", event),
		zap.Int("from", from.Position),
		zap.Int("to", to.Position),
		zap.Stringer("mode", to.Mode),
	)
	err := a.History.Record(ctx, Transition{
		Event:    event,
		From:     from.Position,
		To:       to.Position,
		SlideID:  to.SlideID,
		Mode:     to.Mode.String(),
		Revision: to.Revision,
	})
	if err != nil {
		a.Logger.Warn("history write failed", zap.Error(err))
	}
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.errorLabels(c)))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error", zap.Error(err), zap.String("uri", c.Request().RequestURI))
		_ = RenderStatus(c, code, views.ServerError(a.errorLabels(c)))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// errorLabels works even if Init failed before the locale bundle loaded.
func (a *App) errorLabels(c echo.Context) views.Labels {
	if a.locales == nil {
		return views.Labels{Lang: "en", NotFound: "Page not found", ServerError: "Something went wrong", Back: "Back"}
	}
	return a.labels(c)
}
