package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/d-orlov/tempgrid/internal/geo"
)

func TestOpenWeatherFetchParsesForecast(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{
			"cod": "200",
			"cnt": 2,
			"list": [
				{"dt": 1659722400, "main": {"temp": 290.18, "humidity": 70}},
				{"dt": 1659733200, "main": {"temp": 291.0, "humidity": 68}}
			]
		}`)
	}))
	defer server.Close()

	p := NewOpenWeatherProviderURL(server.Client(), "test-key", server.URL)

	samples, err := p.Fetch(context.Background(), geo.Coordinate{Lat: 47.36, Lon: -122.19})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(samples) != 2 {
		t.Fatalf("got %d samples; want 2", len(samples))
	}
	if samples[0].Timestamp != 1659722400 || samples[0].Value != 290.18 {
		t.Fatalf("samples[0] = %+v; want dt 1659722400, temp 290.18", samples[0])
	}
	if samples[1].Timestamp != 1659733200 || samples[1].Value != 291.0 {
		t.Fatalf("samples[1] = %+v; want dt 1659733200, temp 291.0", samples[1])
	}

	req := httptest.NewRequest(http.MethodGet, "/?"+gotQuery, nil)
	q := req.URL.Query()
	if q.Get("lat") == "" || q.Get("lon") == "" || q.Get("appid") != "test-key" {
		t.Fatalf("request query missing expected parameters: %s", gotQuery)
	}
}

func TestOpenWeatherFetchRejectsMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"list": [`)
	}))
	defer server.Close()

	p := NewOpenWeatherProviderURL(server.Client(), "", server.URL)

	if _, err := p.Fetch(context.Background(), geo.Coordinate{}); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestOpenWeatherFetchHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"cnt": 0, "list": []}`)
	}))
	defer server.Close()

	p := NewOpenWeatherProviderURL(server.Client(), "", server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Fetch(ctx, geo.Coordinate{}); err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
}
