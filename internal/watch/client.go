package watch

import (
	"context"
	"net/url"
	"time"

	"infant-feeding-tracker/internal/platform/httpclient"
)

// Status es la vista de un bebé tal como la devuelve GET /dashboard.
type Status struct {
	SubjectID       string    `json:"subject_id"`
	Name            string    `json:"name"`
	FeedingInterval string    `json:"feeding_interval"`
	LastFeedingAt   time.Time `json:"last_feeding_at"`
	NextFeedingAt   time.Time `json:"next_feeding_at"`
	Due             bool      `json:"due"`
	NearDue         bool      `json:"near_due"`
	OverdueSeconds  int64     `json:"overdue_seconds"`
}

type Dashboard struct {
	Count       int       `json:"count"`
	Capacity    int       `json:"capacity"`
	Window      string    `json:"window"`
	EvaluatedAt time.Time `json:"evaluated_at"`
	Subjects    []Status  `json:"subjects"`
}

type Subject struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	FeedingInterval string    `json:"feeding_interval"`
	LastFeedingAt   time.Time `json:"last_feeding_at"`
	NextFeedingAt   time.Time `json:"next_feeding_at"`
}

// Client consume la API del tracker.
type Client struct {
	api *httpclient.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	api, err := httpclient.New(baseURL, timeout, httpclient.WithUserAgent("feedwatch"))
	if err != nil {
		return nil, err
	}
	return &Client{api: api}, nil
}

// Dashboard pide el tablero. window 0 = ventana configurada en el servidor.
func (c *Client) Dashboard(ctx context.Context, window time.Duration) (Dashboard, error) {
	q := url.Values{}
	if window > 0 {
		q.Set("window", window.String())
	}

	var d Dashboard
	if err := c.api.GetJSON(ctx, "/dashboard", q, &d); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

func (c *Client) List(ctx context.Context) ([]Subject, error) {
	var out []Subject
	if err := c.api.GetJSON(ctx, "/subjects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkFed confirma la toma "ahora" (hora del servidor).
func (c *Client) MarkFed(ctx context.Context, id string) (Subject, error) {
	var s Subject
	if err := c.api.PostJSON(ctx, "/subjects/"+url.PathEscape(id)+"/feedings", nil, &s); err != nil {
		return Subject{}, err
	}
	return s, nil
}
