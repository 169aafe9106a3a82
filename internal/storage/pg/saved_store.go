package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/newskeeper/newskeeper/internal/domain"
	"github.com/newskeeper/newskeeper/pkg/pagination"
)

// ErrAlreadySaved reports that the (account, newsId) pair already has a
// saved row. Callers turn it into an "already saved" result, not a
// failure.
var ErrAlreadySaved = errors.New("article already saved")

// ErrSavedNotFound reports a delete that matched no row owned by the
// caller.
var ErrSavedNotFound = errors.New("saved article not found")

// SavedStore persists saved-article bookmarks. Uniqueness of
// (account_id, news_id) is enforced by the database, so a save is a
// single atomic statement with no check-then-insert window.
type SavedStore struct {
	db *pgxpool.Pool
}

func NewSavedStore(pool *ConnectionPool) *SavedStore {
	return &SavedStore{db: pool.conn}
}

func (s *SavedStore) Save(ctx context.Context, article domain.SavedArticle) (domain.SavedArticle, error) {
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}

	cmd := `
        INSERT INTO saved_news (id, account_id, news_id, title, description, link, link_photo, is_favourite, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (account_id, news_id) DO NOTHING
        RETURNING id;
    `
	var id uuid.UUID
	err := s.db.QueryRow(
		ctx,
		cmd,
		article.ID,
		article.AccountID,
		article.NewsID,
		article.Title,
		article.Description,
		article.Link,
		article.LinkPhoto,
		article.IsFavourite,
		article.CreatedAt,
	).Scan(&id)
	if err != nil {
		// DO NOTHING returns no row on conflict
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SavedArticle{}, ErrAlreadySaved
		}
		return domain.SavedArticle{}, fmt.Errorf("failed to insert saved article: %w", err)
	}
	article.ID = id

	return article, nil
}

func (s *SavedStore) List(ctx context.Context, accountID uuid.UUID, page *pagination.OffsetRequest) (*pagination.OffsetResult[domain.SavedArticle], error) {
	var total int64
	countSQL := `SELECT COUNT(*) FROM saved_news WHERE account_id = $1`
	if err := s.db.QueryRow(ctx, countSQL, accountID).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count saved articles: %w", err)
	}

	query := `
        SELECT id, account_id, news_id, title, description, link, link_photo, is_favourite, created_at
        FROM saved_news
        WHERE account_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3
    `
	offset := (page.Page - 1) * page.Size
	rows, err := s.db.Query(ctx, query, accountID, page.Size, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.SavedArticle
	for rows.Next() {
		var a domain.SavedArticle
		if err := rows.Scan(&a.ID, &a.AccountID, &a.NewsID, &a.Title, &a.Description, &a.Link, &a.LinkPhoto, &a.IsFavourite, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saved article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read saved articles: %w", err)
	}

	return pagination.NewOffsetResult(articles, total, page.Page, page.Size), nil
}

// ListNewsIDs returns the set of news ids an account has saved, used to
// annotate fetched headlines with membership.
func (s *SavedStore) ListNewsIDs(ctx context.Context, accountID uuid.UUID) (map[string]struct{}, error) {
	rows, err := s.db.Query(ctx, `SELECT news_id FROM saved_news WHERE account_id = $1`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved news ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var newsID string
		if err := rows.Scan(&newsID); err != nil {
			return nil, fmt.Errorf("failed to scan news id: %w", err)
		}
		ids[newsID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read news ids: %w", err)
	}

	return ids, nil
}

// Delete removes one saved article. The account id is part of the
// predicate, so a caller can only ever delete its own rows.
func (s *SavedStore) Delete(ctx context.Context, id uuid.UUID, accountID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM saved_news WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete saved article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSavedNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
