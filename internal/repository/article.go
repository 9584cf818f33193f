package repository

import (
	"context"

	"newshub/internal/model"
)

// ArticleSort selects the ordering of an article query.
// Every ordering ends with a tie-break on id so results are stable.
type ArticleSort int

const (
	// SortOldest is insertion order: created_at ASC, id ASC.
	SortOldest ArticleSort = iota
	// SortNewest is created_at DESC, id DESC.
	SortNewest
	// SortMostViewed is views DESC, then insertion order.
	SortMostViewed
)

// ArticleQuery filters an article read. Zero values mean "no filter".
type ArticleQuery struct {
	Status         string
	PremiumOnly    bool
	ExclusiveOnly  bool
	AuthorEmail    string
	TitleContains  string
	PublisherValue string
	// Tags matches articles carrying any of the given tag values.
	Tags  []string
	Sort  ArticleSort
	Limit int
}

// ArticleRepository defines data access for articles.
// Single-row mutations report how many rows they touched so callers can
// tell "not found" from success without a prior read.
type ArticleRepository interface {
	// Create inserts a new article and returns the stored row.
	Create(ctx context.Context, a *model.Article) (*model.Article, error)

	// FindByID returns sql.ErrNoRows when the article does not exist.
	FindByID(ctx context.Context, id string) (*model.Article, error)

	// ExistsByAuthor reports whether any article is authored by email.
	ExistsByAuthor(ctx context.Context, email string) (bool, error)

	// Find returns the articles matching q.
	Find(ctx context.Context, q ArticleQuery) ([]model.Article, error)

	// List returns one page in insertion order with an approximate total.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Article], error)

	// UpdateStatus sets status and decline reason in one statement.
	UpdateStatus(ctx context.Context, id, status string, reason *string) (int64, error)

	// IncrementViews atomically adds one view and returns the new count.
	// It returns sql.ErrNoRows when the article does not exist.
	IncrementViews(ctx context.Context, id string) (int64, error)

	// MarkPremium sets is_premium to true.
	MarkPremium(ctx context.Context, id string) (int64, error)

	// Patch applies the non-nil fields of p and returns the updated row,
	// or sql.ErrNoRows when the article does not exist.
	Patch(ctx context.Context, id string, p model.ArticlePatch) (*model.Article, error)

	// Delete hard-deletes an article and returns the number of rows removed.
	Delete(ctx context.Context, id string) (int64, error)

	// CountByPublisher groups articles by publisher label.
	CountByPublisher(ctx context.Context) ([]model.PublisherCount, error)
}
