package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Placeholder strings shown when a source could not be resolved.
const (
	LocationPlaceholder = "Location unavailable"
	WeatherPlaceholder  = "Weather unavailable"
)

// Enricher resolves location and weather for a coordinate pair,
// degrading each independently to a placeholder. On a fully successful
// resolution it appends a line to an optional plain-text log file.
type Enricher struct {
	geocoder *Geocoder
	weather  *WeatherClient

	logPath string
	logMu   sync.Mutex
}

func NewEnricher(geocoder *Geocoder, weather *WeatherClient, logPath string) *Enricher {
	return &Enricher{
		geocoder: geocoder,
		weather:  weather,
		logPath:  logPath,
	}
}

// Resolve fetches country and weather concurrently. It never returns an
// error: each field falls back to its placeholder on failure.
func (e *Enricher) Resolve(ctx context.Context, lat, lng float64) (location, weather string) {
	location = LocationPlaceholder
	weather = WeatherPlaceholder

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		country, err := e.geocoder.Country(gctx, lat, lng)
		if err != nil {
			slog.Warn("Location resolution failed", "error", err)
			return nil
		}
		location = country
		return nil
	})

	g.Go(func() error {
		current, err := e.weather.Current(gctx, lat, lng)
		if err != nil {
			slog.Warn("Weather resolution failed", "error", err)
			return nil
		}
		weather = current
		return nil
	})

	_ = g.Wait()

	if location != LocationPlaceholder {
		e.appendLog(location, weather)
	}

	return location, weather
}

func (e *Enricher) appendLog(location, weather string) {
	if e.logPath == "" {
		return
	}

	e.logMu.Lock()
	defer e.logMu.Unlock()

	f, err := os.OpenFile(e.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		slog.Warn("Failed to open location log", "path", e.logPath, "error", err)
		return
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s %s\n", location, weather); err != nil {
		slog.Warn("Failed to write location log", "path", e.logPath, "error", err)
	}
}
