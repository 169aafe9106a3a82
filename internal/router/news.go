package router

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/newskeeper/newskeeper/internal/domain"
	"github.com/newskeeper/newskeeper/internal/dto"
	"github.com/newskeeper/newskeeper/internal/middleware"
	"github.com/newskeeper/newskeeper/internal/news"
	"github.com/newskeeper/newskeeper/internal/saved"
)

// HeadlineSource fetches one page of headlines.
type HeadlineSource interface {
	TopHeadlines(ctx context.Context, country string, pageSize int) ([]domain.Headline, error)
}

type NewsRouter struct {
	e        *echo.Echo
	source   HeadlineSource
	saved    *saved.Service
	sessions middleware.Sessions

	country  string
	pageSize int
}

func NewNewsRouter(e *echo.Echo, source HeadlineSource, savedSvc *saved.Service, sessions middleware.Sessions, country string, pageSize int) *NewsRouter {
	return &NewsRouter{
		e:        e,
		source:   source,
		saved:    savedSvc,
		sessions: sessions,
		country:  country,
		pageSize: pageSize,
	}
}

func (r *NewsRouter) Bind() {
	r.e.GET("/v1/headlines", r.headlinesHandler, middleware.RequireSession(r.sessions))
}

// headlinesHandler fetches the headline page and the account's saved
// set concurrently, then applies the title filter and annotates each
// headline with saved membership. The filter runs over the fetched page
// only; it mirrors the in-memory search box, not a server query.
func (r *NewsRouter) headlinesHandler(c echo.Context) error {
	accountID := middleware.AccountID(c)
	query := c.QueryParam("query")

	var (
		headlines []domain.Headline
		savedSet  map[string]struct{}
	)

	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		headlines, err = r.source.TopHeadlines(ctx, r.country, r.pageSize)
		return err
	})
	g.Go(func() error {
		var err error
		savedSet, err = r.saved.SavedSet(ctx, accountID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	filtered := news.FilterByTitle(headlines, query)

	articles := make([]dto.Headline, 0, len(filtered))
	for _, h := range filtered {
		_, isSaved := savedSet[h.URL]
		articles = append(articles, dto.HeadlineFromDomain(h, isSaved))
	}

	return c.JSON(http.StatusOK, dto.HeadlinesResponse{Articles: articles})
}
