// Package providers implements forecast.Fetcher against external weather
// APIs with retries and circuit breaking.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/d-orlov/tempgrid/internal/geo"
	"github.com/d-orlov/tempgrid/internal/series"
)

// DefaultBaseURL is the OpenWeather 5-day/3-hour forecast endpoint.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/forecast"

// OpenWeatherProvider fetches the 5-day/3-hour temperature forecast for a
// coordinate. It implements forecast.Fetcher.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherProvider creates a provider against the public API.
func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return NewOpenWeatherProviderURL(client, apiKey, DefaultBaseURL)
}

// NewOpenWeatherProviderURL is NewOpenWeatherProvider with an explicit
// endpoint, used to point the provider at a local mock server.
func NewOpenWeatherProviderURL(client *http.Client, apiKey, baseURL string) *OpenWeatherProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather-forecast",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Fetch returns the forecast temperature samples for coord in the order the
// API returns them. Only dt and main.temp are read from the payload.
func (p *OpenWeatherProvider) Fetch(ctx context.Context, coord geo.Coordinate) ([]series.Sample, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", fmt.Sprintf("%f", coord.Lat))
		values.Set("lon", fmt.Sprintf("%f", coord.Lon))
		if p.apiKey != "" {
			values.Set("appid", p.apiKey)
		}

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("openweather forecast for %s: %w", coord, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Cnt  int `json:"cnt"`
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
		} `json:"list"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode openweather forecast: %w", err)
	}

	samples := make([]series.Sample, 0, len(payload.List))
	for _, e := range payload.List {
		samples = append(samples, series.Sample{Timestamp: e.Dt, Value: e.Main.Temp})
	}
	return samples, nil
}
