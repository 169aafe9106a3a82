package router

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/newskeeper/newskeeper/internal/account"
	"github.com/newskeeper/newskeeper/internal/apperr"
	"github.com/newskeeper/newskeeper/internal/dto"
	"github.com/newskeeper/newskeeper/internal/enrich"
	"github.com/newskeeper/newskeeper/internal/middleware"
)

// LocationResolver turns coordinates into display strings, degrading to
// placeholders on failure.
type LocationResolver interface {
	Resolve(ctx context.Context, lat, lng float64) (location, weather string)
}

type ProfileRouter struct {
	e        *echo.Echo
	accounts *account.Service
	enricher LocationResolver
	sessions middleware.Sessions
}

func NewProfileRouter(e *echo.Echo, accounts *account.Service, enricher LocationResolver, sessions middleware.Sessions) *ProfileRouter {
	return &ProfileRouter{
		e:        e,
		accounts: accounts,
		enricher: enricher,
		sessions: sessions,
	}
}

func (r *ProfileRouter) Bind() {
	r.e.GET("/v1/profile", r.profileHandler, middleware.RequireSession(r.sessions))
}

// profileHandler returns the profile plus best-effort location and
// weather. Coordinates are optional: without them the enrichment fields
// stay placeholders, mirroring a denied location permission.
func (r *ProfileRouter) profileHandler(c echo.Context) error {
	profile, err := r.accounts.Current(c.Request().Context(), middleware.SessionToken(c))
	if err != nil {
		return err
	}
	if profile == nil {
		return apperr.NewUnauthorized("session has no profile")
	}

	location := enrich.LocationPlaceholder
	weather := enrich.WeatherPlaceholder

	latStr, lngStr := c.QueryParam("lat"), c.QueryParam("lng")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			return apperr.NewValidation("lat and lng must be numbers")
		}
		location, weather = r.enricher.Resolve(c.Request().Context(), lat, lng)
	}

	return c.JSON(http.StatusOK, dto.ProfileResponse{
		Profile:  dto.ProfileFromDomain(profile),
		Location: location,
		Weather:  weather,
	})
}
