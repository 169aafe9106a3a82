package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/newskeeper/newskeeper/internal/apperr"
)

type WeatherClient struct {
	baseURL string
	client  *http.Client
}

func NewWeatherClient(baseURL string) *WeatherClient {
	return &WeatherClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
	} `json:"current_weather"`
}

// Current returns the current temperature formatted as "<temp>°C".
func (w *WeatherClient) Current(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("current_weather", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return "", apperr.NewUpstreamWrap("weather source unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperr.NewUpstreamWrap("weather source unavailable", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", apperr.NewUpstreamWrap("weather source returned malformed response", err)
	}

	if payload.CurrentWeather == nil {
		return "", apperr.NewUpstreamWrap("weather source returned no current weather", nil)
	}

	return strconv.FormatFloat(payload.CurrentWeather.Temperature, 'f', -1, 64) + "°C", nil
}
