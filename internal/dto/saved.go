package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/newskeeper/newskeeper/internal/domain"
)

// SaveArticleRequest carries the derived subset of a headline that gets
// persisted. NewsID is the source article URL.
type SaveArticleRequest struct {
	Title       string `json:"title"`
	NewsID      string `json:"newsId"`
	Description string `json:"description"`
	Link        string `json:"link"`
	LinkPhoto   string `json:"linkPhoto"`
}

type SavedArticle struct {
	ID          uuid.UUID `json:"id"`
	NewsID      string    `json:"newsId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	LinkPhoto   string    `json:"linkPhoto"`
	IsFavourite bool      `json:"isFavourite"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SaveResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    *SavedArticle `json:"data,omitempty"`
}

func SavedArticleFromDomain(a *domain.SavedArticle) SavedArticle {
	return SavedArticle{
		ID:          a.ID,
		NewsID:      a.NewsID,
		Title:       a.Title,
		Description: a.Description,
		Link:        a.Link,
		LinkPhoto:   a.LinkPhoto,
		IsFavourite: a.IsFavourite,
		CreatedAt:   a.CreatedAt,
	}
}

func SaveResponseFromResult(r *domain.SaveResult) SaveResponse {
	resp := SaveResponse{
		Success: r.Success,
		Message: r.Message,
	}
	if r.Article != nil {
		a := SavedArticleFromDomain(r.Article)
		resp.Data = &a
	}
	return resp
}
