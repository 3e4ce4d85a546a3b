package deckengine

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/goleak"

	"github.com/eringen/deckengine/deck"
	"github.com/eringen/deckengine/present"
	"github.com/eringen/deckengine/telemetry"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestApp(t *testing.T, cfg Config, opts ...Option) *App {
	t.Helper()
	a := New(cfg, present.NewController(deck.Sample()), opts...)
	require.NoError(t, a.Init())
	t.Cleanup(func() { a.Close() })
	return a
}

// client carries cookies between requests the way a browser would.
type client struct {
	t       *testing.T
	app     *App
	cookies map[string]*http.Cookie
	lang    string
}

func newClient(t *testing.T, a *App) *client {
	return &client{t: t, app: a, cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	if c.lang != "" {
		req.Header.Set("Accept-Language", c.lang)
	}
	rec := httptest.NewRecorder()
	c.app.Echo.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// post submits a form with the CSRF token, fetching one first if needed.
func (c *client) post(path string, form url.Values, accept string) *httptest.ResponseRecorder {
	c.t.Helper()
	if _, ok := c.cookies["_csrf"]; !ok {
		c.get("/state")
	}
	require.Contains(c.t, c.cookies, "_csrf")
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRF-Token", c.cookies["_csrf"].Value)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return c.do(req)
}

func decodeState(t *testing.T, body []byte) present.State {
	t.Helper()
	var s present.State
	require.NoError(t, json.Unmarshal(body, &s))
	return s
}

func TestIndexShowsFirstSlide(t *testing.T) {
	a := newTestApp(t, Config{})
	rec := newClient(t, a).get("/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ecce Homo: The Last Lucid Dream")
	assert.Contains(t, body, "1 / 10")
	assert.Contains(t, body, "Ecce Homo: Capstone Presentation")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestInputNavigates(t *testing.T) {
	a := newTestApp(t, Config{})
	c := newClient(t, a)

	rec := c.post("/input/", url.Values{"event": {"next"}}, "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, 1, a.Controller.State().Position)

	rec = c.post("/input/", url.Values{"key": {"ArrowLeft"}}, "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decodeState(t, rec.Body.Bytes()).Position)

	// Saturates at the first slide.
	rec = c.post("/input/", url.Values{"key": {"ArrowLeft"}}, "application/json")
	assert.Equal(t, 0, decodeState(t, rec.Body.Bytes()).Position)

	rec = c.post("/input/", url.Values{"key": {"End"}}, "application/json")
	s := decodeState(t, rec.Body.Bytes())
	assert.Equal(t, 9, s.Position)
	assert.Equal(t, 10, s.SlideID)

	body := c.get("/").Body.String()
	assert.Contains(t, body, "10 / 10")
}

func TestInputRejectsBadRequests(t *testing.T) {
	a := newTestApp(t, Config{})
	c := newClient(t, a)

	assert.Equal(t, http.StatusBadRequest, c.post("/input/", url.Values{"event": {"jump"}}, "").Code)
	assert.Equal(t, http.StatusBadRequest, c.post("/input/", url.Values{"key": {"q"}}, "").Code)
	assert.Equal(t, http.StatusBadRequest, c.post("/input/", url.Values{}, "").Code)

	// No CSRF token.
	req := httptest.NewRequest(http.MethodPost, "/input/", strings.NewReader("event=next"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, a.Controller.State().Position)
}

func TestExportMode(t *testing.T) {
	a := newTestApp(t, Config{})
	c := newClient(t, a)
	a.Controller.Goto(4)

	rec := c.post("/input/", url.Values{"event": {"toggle-export"}}, "application/json")
	s := decodeState(t, rec.Body.Bytes())
	assert.Equal(t, present.Exporting, s.Mode)
	assert.Equal(t, 4, s.Position)

	body := c.get("/").Body.String()
	assert.Equal(t, 10, strings.Count(body, `export-slide" id="slide-`))
	assert.Contains(t, body, "window.print()")
	assert.Equal(t, 1, a.Exports.Len())

	// Cached on the second request.
	c.get("/")
	assert.Equal(t, 1, a.Exports.Len())

	// Navigation is ignored while exporting.
	rec = c.post("/input/", url.Values{"event": {"next"}}, "application/json")
	assert.Equal(t, 4, decodeState(t, rec.Body.Bytes()).Position)

	rec = c.post("/input/", url.Values{"event": {"exit-export"}}, "application/json")
	s = decodeState(t, rec.Body.Bytes())
	assert.Equal(t, present.Presenting, s.Mode)
	assert.Equal(t, 4, s.Position)
}

func TestStateEndpoint(t *testing.T) {
	a := newTestApp(t, Config{})
	a.Controller.Advance()

	rec := newClient(t, a).get("/state")
	require.Equal(t, http.StatusOK, rec.Code)
	s := decodeState(t, rec.Body.Bytes())
	assert.Equal(t, present.State{Position: 1, Total: 10, Mode: present.Presenting, SlideID: 2}, s)
}

func TestPresenterAuth(t *testing.T) {
	a := newTestApp(t, Config{PresenterPassword: "lucid", SessionSecret: "test-secret-test-secret-test-sec"})
	audience := newClient(t, a)
	presenter := newClient(t, a)

	assert.Equal(t, http.StatusForbidden, audience.post("/input/", url.Values{"event": {"next"}}, "").Code)
	assert.NotContains(t, audience.get("/").Body.String(), `action="/input/"`)

	rec := presenter.post("/presenter/login/", url.Values{"password": {"wrong"}}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = presenter.post("/presenter/login/", url.Values{"password": {"lucid"}}, "")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, presenter.cookies, sessionName)

	assert.Equal(t, http.StatusSeeOther, presenter.post("/input/", url.Values{"event": {"next"}}, "").Code)
	assert.Equal(t, 1, a.Controller.State().Position)
	assert.Contains(t, presenter.get("/").Body.String(), `action="/input/"`)

	presenter.post("/presenter/logout/", url.Values{}, "")
	assert.Equal(t, http.StatusForbidden, presenter.post("/input/", url.Values{"event": {"next"}}, "").Code)
}

func TestInitRequiresSecretWithPassword(t *testing.T) {
	a := New(Config{PresenterPassword: "lucid"}, present.NewController(deck.Sample()))
	assert.ErrorContains(t, a.Init(), "SessionSecret")
}

func TestHistoryPage(t *testing.T) {
	a := newTestApp(t, Config{HistoryPath: filepath.Join(t.TempDir(), "history.db")})
	c := newClient(t, a)

	c.post("/input/", url.Values{"event": {"next"}}, "")
	c.post("/input/", url.Values{"event": {"next"}}, "")
	c.post("/input/", url.Values{"event": {"print"}}, "") // no change, not logged

	n, err := a.History.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	body := c.get("/presenter/history/").Body.String()
	assert.Contains(t, body, "2 &rarr; 3")
	assert.Contains(t, body, "1 &rarr; 2")
	assert.Contains(t, body, `<p class="history-count">2 / 2</p>`)
}

func TestHistoryPageCountsBeyondLimit(t *testing.T) {
	a := newTestApp(t, Config{HistoryPath: filepath.Join(t.TempDir(), "history.db"), HistoryLimit: 1})
	c := newClient(t, a)
	c.post("/input/", url.Values{"event": {"next"}}, "")
	c.post("/input/", url.Values{"event": {"next"}}, "")

	body := c.get("/presenter/history/").Body.String()
	assert.Contains(t, body, "2 &rarr; 3")
	assert.NotContains(t, body, "1 &rarr; 2")
	assert.Contains(t, body, `<p class="history-count">1 / 2</p>`)
}

func TestSharedHistoryOutlivesApp(t *testing.T) {
	h, err := NewHistoryStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer h.Close()

	a := New(Config{}, present.NewController(deck.Sample()), WithHistory(h))
	require.NoError(t, a.Init())
	newClient(t, a).post("/input/", url.Values{"event": {"next"}}, "")
	require.NoError(t, a.Close())

	n, err := h.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReplaceDeck(t *testing.T) {
	a := newTestApp(t, Config{HistoryPath: filepath.Join(t.TempDir(), "history.db")})
	a.Controller.Goto(8)
	a.Controller.EnterExportMode()
	newClient(t, a).get("/")
	require.Equal(t, 1, a.Exports.Len())

	short, err := deck.New("short", "", deck.Sample().Slides()[:2])
	require.NoError(t, err)
	a.ReplaceDeck(context.Background(), short)

	s := a.Controller.State()
	assert.Equal(t, 1, s.Position)
	assert.Equal(t, 1, s.Revision)
	assert.Equal(t, 0, a.Exports.Len())

	rows, err := a.History.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "reload", rows[0].Event)
	assert.Equal(t, 8, rows[0].From)
	assert.Equal(t, 1, rows[0].To)
	assert.Equal(t, 1, rows[0].Revision)
}

func TestPreviewPNG(t *testing.T) {
	a := newTestApp(t, Config{})
	rec := newClient(t, a).get("/preview.png")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, previewWidth*previewScale, img.Bounds().Dx())
	assert.Equal(t, previewHeight*previewScale, img.Bounds().Dy())
}

func TestNotFoundPage(t *testing.T) {
	a := newTestApp(t, Config{})
	rec := newClient(t, a).get("/no/such/page/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestLocalizedChrome(t *testing.T) {
	a := newTestApp(t, Config{})
	c := newClient(t, a)
	c.lang = "zh-CN,zh;q=0.9"

	body := c.get("/").Body.String()
	assert.Contains(t, body, `<html lang="zh">`)
	assert.Contains(t, body, "下一页")
	assert.Contains(t, body, `aria-valuetext="第 1 页，共 10 页"`)
}

func TestRequestSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	a := newTestApp(t, Config{}, WithTelemetry(telemetry.FromSDK(tp)))
	c := newClient(t, a)

	c.get("/state")
	c.post("/input/", url.Values{"event": {"next"}}, "application/json")

	var names []string
	for _, s := range sr.Ended() {
		names = append(names, s.Name())
	}
	assert.Contains(t, names, "GET /state")
	assert.Contains(t, names, "POST /input/")
	require.NoError(t, tp.Shutdown(context.Background()))
}

func TestFollowStream(t *testing.T) {
	a := newTestApp(t, Config{})
	srv := httptest.NewServer(a.Echo)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	var s present.State
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	s = decodeState(t, msg)
	assert.Equal(t, 0, s.Position)

	assert.Eventually(t, func() bool { return a.Followers() == 1 }, time.Second, 10*time.Millisecond)
	a.Controller.Advance()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, 1, decodeState(t, msg).Position)

	conn.Close()
	assert.Eventually(t, func() bool { return a.Followers() == 0 }, 2*time.Second, 10*time.Millisecond)
}
