package router

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/newskeeper/newskeeper/internal/apperr"
	"github.com/newskeeper/newskeeper/internal/dto"
	"github.com/newskeeper/newskeeper/internal/middleware"
	"github.com/newskeeper/newskeeper/internal/saved"
	"github.com/newskeeper/newskeeper/pkg/pagination"
)

type SavedRouter struct {
	e        *echo.Echo
	saved    *saved.Service
	sessions middleware.Sessions
}

func NewSavedRouter(e *echo.Echo, savedSvc *saved.Service, sessions middleware.Sessions) *SavedRouter {
	return &SavedRouter{
		e:        e,
		saved:    savedSvc,
		sessions: sessions,
	}
}

func (r *SavedRouter) Bind() {
	auth := middleware.RequireSession(r.sessions)
	r.e.POST("/v1/saved", r.saveHandler, auth)
	r.e.GET("/v1/saved", r.listHandler, auth)
	r.e.DELETE("/v1/saved/:id", r.deleteHandler, auth)
}

func (r *SavedRouter) saveHandler(c echo.Context) error {
	var req dto.SaveArticleRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	result, err := r.saved.Save(c.Request().Context(), middleware.AccountID(c), req)
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if !result.Success {
		// duplicate save is a normal outcome, reported in the envelope
		status = http.StatusOK
	}

	return c.JSON(status, dto.SaveResponseFromResult(result))
}

func (r *SavedRouter) listHandler(c echo.Context) error {
	var page pagination.OffsetRequest
	if err := c.Bind(&page); err != nil {
		return apperr.NewValidationWrap("invalid pagination", err)
	}

	result, err := r.saved.List(c.Request().Context(), middleware.AccountID(c), &page)
	if err != nil {
		return err
	}

	items := make([]dto.SavedArticle, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, dto.SavedArticleFromDomain(&result.Items[i]))
	}

	return c.JSON(http.StatusOK, pagination.OffsetResult[dto.SavedArticle]{
		Items:   items,
		Total:   result.Total,
		Page:    result.Page,
		Size:    result.Size,
		HasMore: result.HasMore,
	})
}

func (r *SavedRouter) deleteHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid saved article id", err)
	}

	if err := r.saved.Delete(c.Request().Context(), middleware.AccountID(c), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
