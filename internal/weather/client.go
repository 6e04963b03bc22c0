// Package weather wraps the OpenWeatherMap current-conditions API behind a
// narrow call-and-response contract.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/doccrop/farm-assist/internal/common"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Report is the normalized weather payload for one city.
type Report struct {
	City      string  `json:"city"`
	TempC     float64 `json:"temp_c"`
	Humidity  int     `json:"humidity"`
	Condition string  `json:"condition"`
	WindMPS   float64 `json:"wind_mps"`
}

// Client fetches current conditions with a bounded timeout. Any failure,
// including timeout, non-2xx responses, and malformed payloads, comes back
// wrapped in common.ErrExternalService. There are no retries.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a weather client for the given API key. The key may be
// blank; lookups then fail with common.ErrMissingConfig without calling the
// service.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// OpenWeather response, trimmed to the fields we surface.
type apiResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Current fetches metric-unit conditions for city.
func (c *Client) Current(ctx context.Context, city string) (Report, error) {
	if c.apiKey == "" {
		return Report{}, fmt.Errorf("%w: OPENWEATHER_API_KEY not set", common.ErrMissingConfig)
	}

	params := url.Values{
		"q":     {city},
		"appid": {c.apiKey},
		"units": {"metric"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Report{}, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("%w: weather request failed: %v", common.ErrExternalService, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("%w: weather service returned %d", common.ErrExternalService, resp.StatusCode)
	}

	var data apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Report{}, fmt.Errorf("%w: malformed weather payload: %v", common.ErrExternalService, err)
	}

	report := Report{
		City:     city,
		TempC:    data.Main.Temp,
		Humidity: data.Main.Humidity,
		WindMPS:  data.Wind.Speed,
	}
	if data.Name != "" {
		report.City = data.Name
	}
	if len(data.Weather) > 0 {
		report.Condition = data.Weather[0].Description
	}
	return report, nil
}
