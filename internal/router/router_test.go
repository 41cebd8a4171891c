package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"infant-feeding-tracker/internal/platform/config"
	"infant-feeding-tracker/internal/platform/metrics"
	"infant-feeding-tracker/internal/router"
)

var t0 = time.Date(2024, 8, 8, 8, 30, 0, 0, time.UTC)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func newServer(t *testing.T, capacity int) (*httptest.Server, *testClock) {
	t.Helper()
	clock := &testClock{t: t0}
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Tracker: config.TrackerConfig{
			Capacity:        capacity,
			NearDueWindow:   5 * time.Minute,
			DefaultInterval: 3 * time.Hour,
		},
		Metrics: metrics.New(),
		Swagger: true,
		Now:     clock.Now,
	}))
	t.Cleanup(ts.Close)
	return ts, clock
}

func TestHTTP_EndToEnd_FeedingCycle(t *testing.T) {
	ts, clock := newServer(t, 10)

	// 1) Alta con intervalo por defecto (3h)
	id := createSubject(t, ts.URL, map[string]any{"name": "Harvey"})

	// 2) Recién creado: no toca
	st := getStatus(t, ts.URL, id, "")
	if st.Due {
		t.Fatalf("expected not due right after add")
	}

	// 3) 2h59m: todavía no
	clock.Set(t0.Add(2*time.Hour + 59*time.Minute))
	if st := getStatus(t, ts.URL, id, ""); st.Due {
		t.Fatalf("expected not due at 2h59m")
	}
	if st := getStatus(t, ts.URL, id, ""); !st.NearDue {
		t.Fatalf("expected near due one minute before next feeding")
	}

	// 4) 3h1m: toca
	clock.Set(t0.Add(3*time.Hour + time.Minute))
	st = getStatus(t, ts.URL, id, "")
	if !st.Due {
		t.Fatalf("expected due at 3h1m")
	}
	if st.OverdueSeconds != 60 {
		t.Fatalf("expected overdue 60s, got %d", st.OverdueSeconds)
	}

	// 5) Toma realizada (sin body => ahora)
	{
		code, body := doReq(t, ts.URL, "POST", "/subjects/"+id+"/feedings", nil)
		if code != http.StatusOK {
			t.Fatalf("expected 200 mark fed, got %d body=%s", code, string(body))
		}
	}
	if st := getStatus(t, ts.URL, id, ""); st.Due {
		t.Fatalf("expected not due right after feeding")
	}

	// 5b) Toma en el futuro: se rechaza y el estado no cambia
	{
		future := clock.Now().Add(48 * time.Hour).Format(time.RFC3339)
		code, body := doReq(t, ts.URL, "POST", "/subjects/"+id+"/feedings", map[string]any{"at": future})
		if code != http.StatusBadRequest {
			t.Fatalf("expected 400 future feeding, got %d body=%s", code, string(body))
		}
	}

	// 6) 6h2m: toca de nuevo
	at := t0.Add(6*time.Hour + 2*time.Minute).Format(time.RFC3339)
	if st := getStatus(t, ts.URL, id, "?at="+at); !st.Due {
		t.Fatalf("expected due at 6h2m")
	}
}

func TestHTTP_CreateValidation(t *testing.T) {
	ts, _ := newServer(t, 10)

	cases := []struct {
		name    string
		payload any
		raw     string
	}{
		{name: "empty name", payload: map[string]any{"name": ""}},
		{name: "blank name", payload: map[string]any{"name": "   "}},
		{name: "negative minutes", payload: map[string]any{"name": "Baby", "interval_minutes": -1}},
		{name: "hours out of range", payload: map[string]any{"name": "Baby", "interval_hours": 24}},
		{name: "future last feeding", payload: map[string]any{"name": "Baby", "last_feeding_at": t0.Add(time.Hour).Format(time.RFC3339)}},
		{name: "bad date", payload: map[string]any{"name": "Baby", "profile": map[string]any{"checkout_date": "08/08/2024"}}},
		{name: "unknown field", payload: map[string]any{"name": "Baby", "weight": 3}},
		{name: "invalid json", raw: "{"},
	}

	for _, c := range cases {
		var code int
		var body []byte
		if c.raw != "" {
			code, body = doRaw(t, ts.URL, "POST", "/subjects", c.raw)
		} else {
			code, body = doReq(t, ts.URL, "POST", "/subjects", c.payload)
		}
		if code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d body=%s", c.name, code, string(body))
		}
	}
}

func TestHTTP_VeryOldLastFeedingIsDueNotNearDue(t *testing.T) {
	ts, _ := newServer(t, 10)

	id := createSubject(t, ts.URL, map[string]any{
		"name":            "Harvey",
		"last_feeding_at": "0001-01-01T00:00:00Z",
	})

	st := getStatus(t, ts.URL, id, "")
	if !st.Due || st.NearDue {
		t.Fatalf("expected due and not near due, got %+v", st)
	}
}

func TestHTTP_CustomIntervalAndUpdate(t *testing.T) {
	ts, _ := newServer(t, 10)

	id := createSubject(t, ts.URL, map[string]any{
		"name":             "Lily",
		"interval_hours":   1,
		"interval_minutes": 30,
	})

	s := getSubject(t, ts.URL, id)
	if s.FeedingIntervalMinutes != 90 {
		t.Fatalf("expected 90 minutes, got %d", s.FeedingIntervalMinutes)
	}

	at := "?at=" + t0.Add(time.Hour).Format(time.RFC3339)
	if st := getStatus(t, ts.URL, id, at); st.Due {
		t.Fatalf("expected not due after 1h with 1h30m interval")
	}

	code, body := doReq(t, ts.URL, "PUT", "/subjects/"+id+"/interval", map[string]any{
		"interval_hours":   0,
		"interval_minutes": 45,
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200 update interval, got %d body=%s", code, string(body))
	}
	if st := getStatus(t, ts.URL, id, at); !st.Due {
		t.Fatalf("expected due after interval shrink")
	}

	code, _ = doReq(t, ts.URL, "PUT", "/subjects/"+id+"/interval", map[string]any{"interval_minutes": -5})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative interval, got %d", code)
	}
}

func TestHTTP_ProfileRemarksAndDelete(t *testing.T) {
	ts, _ := newServer(t, 10)
	id := createSubject(t, ts.URL, map[string]any{"name": "James"})

	code, body := doReq(t, ts.URL, "PUT", "/subjects/"+id+"/profile", map[string]any{
		"room_no":             "403",
		"mother_name":         "Sophia",
		"checkout_date":       "2024-08-10",
		"mother_baby_care_at": "2024-08-09T10:00:00Z",
		"amount_range":        "90-100 ml",
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200 profile, got %d body=%s", code, string(body))
	}

	code, body = doReq(t, ts.URL, "POST", "/subjects/"+id+"/remarks", map[string]any{"text": "burped"})
	if code != http.StatusCreated {
		t.Fatalf("expected 201 remark, got %d body=%s", code, string(body))
	}

	s := getSubject(t, ts.URL, id)
	if s.Profile.RoomNo != "403" || s.Profile.CheckoutDate == nil || *s.Profile.CheckoutDate != "2024-08-10" {
		t.Fatalf("unexpected profile: %+v", s.Profile)
	}
	if len(s.Remarks) != 1 || s.Remarks[0].Text != "burped" {
		t.Fatalf("unexpected remarks: %+v", s.Remarks)
	}

	code, _ = doReq(t, ts.URL, "POST", "/subjects/"+id+"/remarks", map[string]any{"text": ""})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 empty remark, got %d", code)
	}

	code, _ = doReq(t, ts.URL, "DELETE", "/subjects/"+id, nil)
	if code != http.StatusNoContent {
		t.Fatalf("expected 204 delete, got %d", code)
	}
	code, _ = doReq(t, ts.URL, "GET", "/subjects/"+id, nil)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", code)
	}
}

func TestHTTP_NotFound(t *testing.T) {
	ts, _ := newServer(t, 10)

	for _, rq := range []struct{ method, path string }{
		{"GET", "/subjects/nope"},
		{"GET", "/subjects/nope/status"},
		{"POST", "/subjects/nope/feedings"},
		{"DELETE", "/subjects/nope"},
	} {
		code, body := doReq(t, ts.URL, rq.method, rq.path, nil)
		if code != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d body=%s", rq.method, rq.path, code, string(body))
		}
	}

	code, _ := doReq(t, ts.URL, "PUT", "/subjects/nope/interval", map[string]any{"interval_hours": 1})
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 update interval, got %d", code)
	}
}

func TestHTTP_DashboardAndCapacity(t *testing.T) {
	ts, clock := newServer(t, 2)

	createSubject(t, ts.URL, map[string]any{"name": "Lily", "interval_hours": 1})
	createSubject(t, ts.URL, map[string]any{"name": "Harvey"})

	code, body := doReq(t, ts.URL, "POST", "/subjects", map[string]any{"name": "James"})
	if code != http.StatusConflict {
		t.Fatalf("expected 409 over capacity, got %d body=%s", code, string(body))
	}

	clock.Set(t0.Add(2 * time.Hour))

	code, body = doReq(t, ts.URL, "GET", "/dashboard", nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200 dashboard, got %d body=%s", code, string(body))
	}

	var d struct {
		Count    int    `json:"count"`
		Capacity int    `json:"capacity"`
		Window   string `json:"window"`
		Subjects []struct {
			Name string `json:"name"`
			Due  bool   `json:"due"`
		} `json:"subjects"`
	}
	if err := json.Unmarshal(body, &d); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if d.Count != 2 || d.Capacity != 2 || d.Window != "5m0s" {
		t.Fatalf("unexpected dashboard header: %+v", d)
	}
	if d.Subjects[0].Name != "Lily" || !d.Subjects[0].Due || d.Subjects[1].Due {
		t.Fatalf("unexpected dashboard subjects: %+v", d.Subjects)
	}

	code, _ = doReq(t, ts.URL, "GET", "/dashboard?window=abc", nil)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 bad window, got %d", code)
	}
	code, _ = doReq(t, ts.URL, "GET", "/dashboard?window=-1m", nil)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 negative window, got %d", code)
	}
}

func TestHTTP_HealthMetricsSwagger(t *testing.T) {
	ts, _ := newServer(t, 10)
	createSubject(t, ts.URL, map[string]any{"name": "Harvey"})

	code, body := doReq(t, ts.URL, "GET", "/health", nil)
	if code != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health: %d %s", code, string(body))
	}

	code, body = doReq(t, ts.URL, "GET", "/metrics", nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", code)
	}
	for _, want := range []string{
		"feeding_tracker_subjects 1",
		"feeding_tracker_subjects_added_total 1",
		`feeding_tracker_http_requests_total{method="POST",route=`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics missing %q", want)
		}
	}

	code, body = doReq(t, ts.URL, "GET", "/swagger/doc.json", nil)
	if code != http.StatusOK || !strings.Contains(string(body), "/subjects/{subjectID}/feedings") {
		t.Fatalf("unexpected swagger doc: %d", code)
	}
}

type subjectBody struct {
	ID                     string `json:"id"`
	FeedingIntervalMinutes int64  `json:"feeding_interval_minutes"`
	Profile                struct {
		RoomNo       string  `json:"room_no"`
		CheckoutDate *string `json:"checkout_date"`
	} `json:"profile"`
	Remarks []struct {
		Text string `json:"text"`
	} `json:"remarks"`
}

type statusBody struct {
	Due            bool  `json:"due"`
	NearDue        bool  `json:"near_due"`
	OverdueSeconds int64 `json:"overdue_seconds"`
}

func createSubject(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	code, body := doReq(t, baseURL, "POST", "/subjects", payload)
	if code != http.StatusCreated {
		t.Fatalf("expected 201 create subject, got %d body=%s", code, string(body))
	}

	var resp subjectBody
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create subject: missing id body=%s", string(body))
	}
	return resp.ID
}

func getSubject(t *testing.T, baseURL, id string) subjectBody {
	t.Helper()

	code, body := doReq(t, baseURL, "GET", "/subjects/"+id, nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200 get subject, got %d body=%s", code, string(body))
	}
	var resp subjectBody
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode subject: %v", err)
	}
	return resp
}

func getStatus(t *testing.T, baseURL, id, query string) statusBody {
	t.Helper()

	code, body := doReq(t, baseURL, "GET", "/subjects/"+id+"/status"+query, nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200 status, got %d body=%s", code, string(body))
	}
	var resp statusBody
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	return resp
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}
	return send(t, baseURL, method, path, rdr, body != nil)
}

func doRaw(t *testing.T, baseURL, method, path, raw string) (int, []byte) {
	t.Helper()
	return send(t, baseURL, method, path, strings.NewReader(raw), true)
}

func send(t *testing.T, baseURL, method, path string, rdr io.Reader, isJSON bool) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if isJSON {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
