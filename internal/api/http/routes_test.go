package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/cities"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

type stubProvider struct {
	records []weather.ForecastRecord
	err     error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) FetchForecast(_ context.Context, _, _ int, _ weather.TimeSlice) ([]weather.ForecastRecord, error) {
	return p.records, p.err
}

func seoulRecords() []weather.ForecastRecord {
	mk := func(cat, val string) weather.ForecastRecord {
		return weather.ForecastRecord{
			BaseDate: "20240510", BaseTime: "0500", Category: cat,
			FcstDate: "20240510", FcstTime: "1400", FcstValue: val, NX: 60, NY: 127,
		}
	}
	return []weather.ForecastRecord{mk("TMP", "21"), mk("SKY", "1"), mk("PTY", "0"), mk("REH", "40")}
}

func newTestApp(provider weather.Provider) (*fiber.App, Deps) {
	fs := store.NewForecastStore()
	ms := store.NewMessageStore(nil)
	clock := func() time.Time { return time.Date(2024, 5, 10, 14, 40, 0, 0, time.UTC) }
	d := Deps{
		Service:   weather.NewService(fs, provider, weather.WithClock(clock), weather.WithLocation(time.UTC)),
		Forecasts: fs,
		Messages:  ms,
		Themes:    store.NewThemeStore(),
		Board:     dashboard.NewBoard(cities.Featured(), cities.All(), fs, ms),
	}
	app := fiber.New()
	RegisterRoutes(app, d)
	return app, d
}

func do(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func TestForecastGridValidation(t *testing.T) {
	app, _ := newTestApp(&stubProvider{})

	for _, target := range []string{
		"/api/v1/forecast",
		"/api/v1/forecast?nx=60",
		"/api/v1/forecast?nx=abc&ny=127",
		"/api/v1/forecast?nx=0&ny=127",
	} {
		resp, _ := do(t, app, http.MethodGet, target, "")
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", target, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

func TestForecastNotFetchedYet(t *testing.T) {
	app, _ := newTestApp(&stubProvider{})

	resp, _ := do(t, app, http.MethodGet, "/api/v1/forecast?nx=60&ny=127", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestRefreshThenRead(t *testing.T) {
	app, _ := newTestApp(&stubProvider{records: seoulRecords()})

	resp, _ := do(t, app, http.MethodPost, "/api/v1/forecast/refresh?nx=60&ny=127", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp, body := do(t, app, http.MethodGet, "/api/v1/forecast?nx=60&ny=127", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	var got struct {
		Key      string                  `json:"key"`
		Slice    weather.TimeSlice       `json:"slice"`
		Forecast weather.GroupedForecast `json:"forecast"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Key != "60-127" || got.Slice.FcstTime != "1400" {
		t.Fatalf("unexpected response %+v", got)
	}
	if r, ok := got.Forecast.First("TMP"); !ok || r.FcstValue != "21" {
		t.Fatalf("expected TMP 21, got %+v", got.Forecast)
	}
}

func TestRefreshUpstreamFailure(t *testing.T) {
	app, d := newTestApp(&stubProvider{err: &weather.UpstreamError{Code: "03", Message: "NO_DATA"}})

	resp, body := do(t, app, http.MethodPost, "/api/v1/forecast/refresh?nx=60&ny=127", "")
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}
	if !strings.Contains(string(body), "API Error: NO_DATA") {
		t.Fatalf("expected store message in body, got %s", body)
	}
	if d.Forecasts.Err() != "API Error: NO_DATA" {
		t.Fatalf("unexpected store error %q", d.Forecasts.Err())
	}

	_, body = do(t, app, http.MethodGet, "/api/v1/status", "")
	var status struct {
		Loading bool   `json:"loading"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.Loading || status.Error != "API Error: NO_DATA" {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestCitiesScope(t *testing.T) {
	app, _ := newTestApp(&stubProvider{})

	cases := []struct {
		target string
		status int
		count  int
	}{
		{"/api/v1/cities", http.StatusOK, cities.Featured().Len()},
		{"/api/v1/cities?scope=all", http.StatusOK, cities.All().Len()},
		{"/api/v1/cities?scope=moon", http.StatusBadRequest, 0},
	}
	for _, tc := range cases {
		resp, body := do(t, app, http.MethodGet, tc.target, "")
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.target, tc.status, resp.StatusCode)
		}
		if tc.status != http.StatusOK {
			continue
		}
		var cards []dashboard.Card
		if err := json.Unmarshal(body, &cards); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(cards) != tc.count {
			t.Fatalf("%s: expected %d cards, got %d", tc.target, tc.count, len(cards))
		}
	}
}

func TestChatFlow(t *testing.T) {
	app, d := newTestApp(&stubProvider{records: seoulRecords()})
	if err := d.Service.Fetch(context.Background(), 60, 127); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	resp, _ := do(t, app, http.MethodPost, "/api/v1/messages", `{"text":"   "}`)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status %d for blank input, got %d", http.StatusNoContent, resp.StatusCode)
	}

	resp, body := do(t, app, http.MethodPost, "/api/v1/messages", `{"text":"Atlantis"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
	var miss dashboard.Outcome
	if err := json.Unmarshal(body, &miss); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if miss.Notice != dashboard.NoticeCityNotFound || miss.Popup != nil || miss.Message.Text != "Atlantis" {
		t.Fatalf("unexpected miss outcome %+v", miss)
	}

	resp, body = do(t, app, http.MethodPost, "/api/v1/messages", `{"text":"서울"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	var hit dashboard.Outcome
	if err := json.Unmarshal(body, &hit); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if hit.Popup == nil || hit.Popup.Forecast.Temperature.Value != "21" {
		t.Fatalf("unexpected hit outcome %+v", hit)
	}

	_, body = do(t, app, http.MethodGet, "/api/v1/messages", "")
	var transcript struct {
		Messages []store.ChatMessage `json:"messages"`
		LastCity string              `json:"lastCity"`
	}
	if err := json.Unmarshal(body, &transcript); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(transcript.Messages) != 2 || transcript.LastCity != "서울" {
		t.Fatalf("unexpected transcript %+v", transcript)
	}

	resp, _ = do(t, app, http.MethodGet, "/api/v1/popup", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected open popup, got %d", resp.StatusCode)
	}
	resp, _ = do(t, app, http.MethodDelete, "/api/v1/popup", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, resp.StatusCode)
	}
	resp, _ = do(t, app, http.MethodGet, "/api/v1/popup", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected closed popup, got %d", resp.StatusCode)
	}
}

func TestThemeEndpoints(t *testing.T) {
	app, d := newTestApp(&stubProvider{})

	_, body := do(t, app, http.MethodGet, "/api/v1/theme", "")
	if !strings.Contains(string(body), `"forest"`) {
		t.Fatalf("expected default theme forest, got %s", body)
	}

	resp, _ := do(t, app, http.MethodPut, "/api/v1/theme", `{"theme":"neon"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
	if d.Themes.Theme() != store.ThemeForest {
		t.Fatalf("theme changed on invalid input: %s", d.Themes.Theme())
	}

	resp, _ = do(t, app, http.MethodPut, "/api/v1/theme", `{"theme":"sea"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if d.Themes.Theme() != store.ThemeSea {
		t.Fatalf("expected sea, got %s", d.Themes.Theme())
	}
}

func TestCategories(t *testing.T) {
	app, _ := newTestApp(&stubProvider{})

	_, body := do(t, app, http.MethodGet, "/api/v1/categories", "")
	var names map[string]string
	if err := json.Unmarshal(body, &names); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if names["TMP"] != weather.CategoryNames["TMP"] || len(names) != len(weather.CategoryNames) {
		t.Fatalf("unexpected categories %v", names)
	}
}

type readOnlyView struct {
	grouped map[string]weather.GroupedForecast
}

func (v readOnlyView) Grouped(key string) (weather.GroupedForecast, error) {
	g, ok := v.grouped[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return g, nil
}

func (v readOnlyView) Loading() bool         { return true }
func (v readOnlyView) LoadingKeys() []string { return []string{"98-76"} }
func (v readOnlyView) Err() string           { return "API Error: NO_DATA" }

func TestRoutesReadThroughForecastView(t *testing.T) {
	fs := store.NewForecastStore()
	ms := store.NewMessageStore(nil)
	view := readOnlyView{grouped: map[string]weather.GroupedForecast{
		"60-127": {"TMP": seoulRecords()[:1]},
	}}
	app := fiber.New()
	RegisterRoutes(app, Deps{
		Service:   weather.NewService(fs, &stubProvider{}),
		Forecasts: view,
		Messages:  ms,
		Themes:    store.NewThemeStore(),
		Board:     dashboard.NewBoard(cities.Featured(), cities.All(), fs, ms),
	})

	resp, body := do(t, app, http.MethodGet, "/api/v1/forecast?nx=60&ny=127", "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"fcstValue":"21"`) {
		t.Fatalf("unexpected forecast response %d %s", resp.StatusCode, body)
	}

	_, body = do(t, app, http.MethodGet, "/api/v1/status", "")
	var status struct {
		Loading     bool     `json:"loading"`
		LoadingKeys []string `json:"loadingKeys"`
		Error       string   `json:"error"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !status.Loading || len(status.LoadingKeys) != 1 || status.Error != "API Error: NO_DATA" {
		t.Fatalf("unexpected status %+v", status)
	}
}
