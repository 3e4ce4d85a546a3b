package deckengine

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/deckengine/views"
)

func (a *App) handlePresenter(c echo.Context) error {
	if a.Config.PresenterPassword != "" && !IsPresenter(c) {
		return Render(c, views.Login(a.labels(c), CsrfToken(c), false))
	}
	return Render(c, views.Presenter(a.labels(c), CsrfToken(c), a.Controller.State()))
}

func (a *App) handlePresenterLogin(c echo.Context) error {
	if a.Config.PresenterPassword == "" {
		return c.Redirect(http.StatusSeeOther, "/presenter/")
	}
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.PresenterPassword)) == 1 {
		if err := setPresenterSession(c); err != nil {
			return err
		}
		a.Logger.Info("presenter signed in", zap.String("ip", ip))
		return c.Redirect(http.StatusSeeOther, "/")
	}
	a.loginLimiter.Record(ip)
	a.Logger.Warn("presenter sign-in failed", zap.String("ip", ip))
	return RenderStatus(c, http.StatusUnauthorized, views.Login(a.labels(c), CsrfToken(c), true))
}

func handlePresenterLogout(c echo.Context) error {
	if err := clearPresenterSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/presenter/")
}

func (a *App) handleHistory(c echo.Context) error {
	if !a.canControl(c) {
		return c.Redirect(http.StatusSeeOther, "/presenter/")
	}
	ctx := c.Request().Context()
	ts, err := a.History.Recent(ctx, a.Config.HistoryLimit)
	if err != nil {
		return err
	}
	total, err := a.History.Count(ctx)
	if err != nil {
		return err
	}
	return Render(c, views.History(a.labels(c), transitionRows(ts), total))
}
