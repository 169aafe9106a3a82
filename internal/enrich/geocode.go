// Package enrich resolves best-effort location and weather strings for
// the profile surface. Every failure degrades to a placeholder; nothing
// here ever fails a request.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/newskeeper/newskeeper/internal/apperr"
)

const defaultTimeout = 10 * time.Second

// UnknownCountry is what the geocoder yields when no result carries the
// country type.
const UnknownCountry = "Unknown"

type Geocoder struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewGeocoder(baseURL, apiKey string) *Geocoder {
	return &Geocoder{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

type geocodeResponse struct {
	Results []struct {
		FormattedAddress string   `json:"formatted_address"`
		Types            []string `json:"types"`
	} `json:"results"`
}

// Country reverse-geocodes coordinates to a country name: the first
// result whose types include "country", else UnknownCountry.
func (g *Geocoder) Country(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{}
	q.Set("latlng", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/geocode/json?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", apperr.NewUpstreamWrap("geocoder unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperr.NewUpstreamWrap("geocoder unavailable", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", apperr.NewUpstreamWrap("geocoder returned malformed response", err)
	}

	for _, result := range payload.Results {
		for _, t := range result.Types {
			if t == "country" {
				return result.FormattedAddress, nil
			}
		}
	}

	return UnknownCountry, nil
}
