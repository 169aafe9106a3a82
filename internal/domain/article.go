package domain

import (
	"time"

	"github.com/google/uuid"
)

// Headline is a transient news article fetched from the remote news
// source. Never persisted verbatim; a derived subset becomes a
// SavedArticle when the user bookmarks it.
type Headline struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	URL         string `json:"url"`
}

// SavedArticle is a user's durable bookmark of a Headline. NewsID is the
// source article URL, used as a natural key: at most one SavedArticle
// exists per (AccountID, NewsID) pair, enforced by a unique index.
type SavedArticle struct {
	ID          uuid.UUID `json:"id"`
	AccountID   uuid.UUID `json:"accountId"`
	NewsID      string    `json:"newsId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	LinkPhoto   string    `json:"linkPhoto"`
	IsFavourite bool      `json:"isFavourite"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SaveResult is the envelope returned by a save attempt. A duplicate save
// is not an error: it comes back with Success=false and a message, the
// same shape the success path uses.
type SaveResult struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Article *SavedArticle `json:"data,omitempty"`
}
