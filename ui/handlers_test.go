package ui

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorelate/app"
	"gorelate/internal/analysis"
	"gorelate/internal/session"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	service := app.NewAnalysisService(analysis.NewEngine(), nil)
	webApp, err := NewApp(session.NewStore(), service, Config{})
	require.NoError(t, err)
	return webApp
}

// client carries the session cookie across requests like a browser would.
type client struct {
	t      *testing.T
	router http.Handler
	cookie *http.Cookie
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == sessionCookie {
			c.cookie = cookie
		}
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) uploadCSV(name, content string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("dataset", name)
	require.NoError(c.t, err)
	_, err = io.WriteString(part, content)
	require.NoError(c.t, err)
	require.NoError(c.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

func (c *client) analyze(columns ...string) *httptest.ResponseRecorder {
	form := url.Values{"columns": columns}
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

const peopleCSV = "age,gender,city\n" +
	"30,M,Berlin\n25,F,Berlin\n40,M,Paris\n35,F,Paris\n" +
	"28,M,Berlin\n33,F,Berlin\n45,M,Paris\n22,F,Paris\n"

func TestIndex_BeforeUpload(t *testing.T) {
	c := &client{t: t, router: newTestApp(t).Router()}

	w := c.get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Upload")
	assert.NotNil(t, c.cookie, "first request should set the session cookie")
}

func TestUpload_ShowsClassifiedColumns(t *testing.T) {
	c := &client{t: t, router: newTestApp(t).Router()}

	w := c.uploadCSV("people.csv", peopleCSV)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = c.get("/")
	body := w.Body.String()
	assert.Contains(t, body, "people.csv")
	assert.Contains(t, body, "age")
	assert.Contains(t, body, "gender")
	assert.Contains(t, body, "city")
}

func TestUpload_RejectsUnknownExtension(t *testing.T) {
	c := &client{t: t, router: newTestApp(t).Router()}

	w := c.uploadCSV("data.txt", "a,b\n1,2\n")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=")
}

func TestAnalyze_RequiresTwoColumns(t *testing.T) {
	c := &client{t: t, router: newTestApp(t).Router()}
	c.uploadCSV("people.csv", peopleCSV)

	w := c.analyze("age")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=")
}

func TestAnalyze_FullFlow(t *testing.T) {
	c := &client{t: t, router: newTestApp(t).Router()}
	c.uploadCSV("people.csv", peopleCSV)

	w := c.analyze("gender", "city")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/results", w.Header().Get("Location"))

	// The analysis runs off-request; poll until the snapshot lands.
	deadline := time.Now().Add(5 * time.Second)
	done := false
	for time.Now().Before(deadline) {
		var progress struct {
			Done  bool   `json:"done"`
			Error string `json:"error"`
		}
		resp := c.get("/api/progress")
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &progress))
		require.Empty(t, progress.Error)
		if progress.Done {
			done = true
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, done, "analysis never completed")

	w = c.get("/results")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Association analysis")
	assert.Contains(t, body, "Strength matrix")

	w = c.get("/details?row=gender&col=city")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "observations")
}

func TestRuns_EmptyWithoutRepository(t *testing.T) {
	c := &client{t: t, router: newTestApp(t).Router()}

	w := c.get("/api/runs")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
}

func TestResults_NoAnalysisYet(t *testing.T) {
	c := &client{t: t, router: newTestApp(t).Router()}

	w := c.get("/results")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No analysis has been run yet")
}
