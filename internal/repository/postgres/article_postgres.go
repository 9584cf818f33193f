package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"newshub/internal/model"
	"newshub/internal/repository"
)

var articleColumns = []string{
	"id", "title", "content", "image", "author_email", "author_name", "author_photo",
	"publisher", "tags", "status", "decline_reason", "views", "is_premium", "is_exclusive", "created_at",
}

// ArticlePostgres is a PostgreSQL implementation of repository.ArticleRepository.
type ArticlePostgres struct {
	db *sql.DB
}

// NewArticlePostgres creates a new ArticlePostgres repository.
func NewArticlePostgres(db *sql.DB) *ArticlePostgres {
	return &ArticlePostgres{db: db}
}

var _ repository.ArticleRepository = (*ArticlePostgres)(nil)

// Create inserts a new article row and returns the stored record.
func (r *ArticlePostgres) Create(ctx context.Context, a *model.Article) (*model.Article, error) {
	publisher, err := encodePublisher(a.Publisher)
	if err != nil {
		return nil, err
	}
	tags, err := encodeTags(a.Tags)
	if err != nil {
		return nil, err
	}

	q, args, err := psql.Insert("articles").
		Columns(articleColumns...).
		Values(
			a.ID, a.Title, a.Content, a.Image, a.AuthorEmail, a.AuthorName, a.AuthorPhoto,
			publisher, tags, a.Status, a.DeclineReason, a.Views, a.IsPremium, a.IsExclusive, a.CreatedAt,
		).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanArticle(r.db.QueryRowContext(ctx, q, args...))
}

// FindByID fetches a single article by its ID.
func (r *ArticlePostgres) FindByID(ctx context.Context, id string) (*model.Article, error) {
	q, args, err := psql.Select(articleColumns...).From("articles").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanArticle(r.db.QueryRowContext(ctx, q, args...))
}

// ExistsByAuthor reports whether the author already has an article.
func (r *ArticlePostgres) ExistsByAuthor(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM articles WHERE author_email = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Find runs a filtered, ordered, optionally limited article query.
func (r *ArticlePostgres) Find(ctx context.Context, aq repository.ArticleQuery) ([]model.Article, error) {
	sb := psql.Select(articleColumns...).From("articles")

	if aq.Status != "" {
		sb = sb.Where(sq.Eq{"status": aq.Status})
	}
	if aq.PremiumOnly {
		sb = sb.Where(sq.Eq{"is_premium": true})
	}
	if aq.ExclusiveOnly {
		sb = sb.Where(sq.Eq{"is_exclusive": true})
	}
	if aq.AuthorEmail != "" {
		sb = sb.Where(sq.Eq{"author_email": aq.AuthorEmail})
	}
	if aq.TitleContains != "" {
		sb = sb.Where(sq.ILike{"title": containsPattern(aq.TitleContains)})
	}
	if aq.PublisherValue != "" {
		sb = sb.Where(sq.Expr("publisher->>'value' = ?", aq.PublisherValue))
	}
	if len(aq.Tags) > 0 {
		anyTag := sq.Or{}
		for _, tag := range aq.Tags {
			needle, err := json.Marshal([]map[string]string{{"value": tag}})
			if err != nil {
				return nil, err
			}
			anyTag = append(anyTag, sq.Expr("tags @> ?::jsonb", string(needle)))
		}
		sb = sb.Where(anyTag)
	}

	sb = sb.OrderBy(orderBy(aq.Sort)...)
	if aq.Limit > 0 {
		sb = sb.Limit(uint64(aq.Limit))
	}

	q, args, err := sb.ToSql()
	if err != nil {
		return nil, err
	}
	return r.query(ctx, q, args...)
}

// List returns articles using LIMIT/OFFSET pagination in insertion order.
func (r *ArticlePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Article], error) {
	total, err := approximateCount(ctx, r.db, "articles")
	if err != nil {
		return nil, err
	}

	q, args, err := psql.Select(articleColumns...).
		From("articles").
		OrderBy(orderBy(repository.SortOldest)...).
		Limit(uint64(pq.Limit)).
		Offset(uint64(pq.Offset)).
		ToSql()
	if err != nil {
		return nil, err
	}
	items, err := r.query(ctx, q, args...)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Article]{Items: items, Total: total}, nil
}

// UpdateStatus writes the moderation outcome.
func (r *ArticlePostgres) UpdateStatus(ctx context.Context, id, status string, reason *string) (int64, error) {
	const q = `UPDATE articles SET status = $1, decline_reason = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, q, status, reason, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// IncrementViews relies on the single-statement update for atomicity.
func (r *ArticlePostgres) IncrementViews(ctx context.Context, id string) (int64, error) {
	const q = `UPDATE articles SET views = views + 1 WHERE id = $1 RETURNING views`
	var views int64
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&views); err != nil {
		return 0, err
	}
	return views, nil
}

// MarkPremium promotes an article; repeating it is harmless.
func (r *ArticlePostgres) MarkPremium(ctx context.Context, id string) (int64, error) {
	const q = `UPDATE articles SET is_premium = true WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Patch updates only the provided fields.
func (r *ArticlePostgres) Patch(ctx context.Context, id string, p model.ArticlePatch) (*model.Article, error) {
	set := map[string]any{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Content != nil {
		set["content"] = *p.Content
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	if p.Publisher != nil {
		v, err := encodePublisher(p.Publisher)
		if err != nil {
			return nil, err
		}
		set["publisher"] = v
	}
	if p.Tags != nil {
		v, err := encodeTags(*p.Tags)
		if err != nil {
			return nil, err
		}
		set["tags"] = v
	}
	if p.IsExclusive != nil {
		set["is_exclusive"] = *p.IsExclusive
	}
	if len(set) == 0 {
		return nil, errors.New("empty article patch")
	}

	q, args, err := psql.Update("articles").
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanArticle(r.db.QueryRowContext(ctx, q, args...))
}

// Delete removes an article by ID and reports how many rows went away.
func (r *ArticlePostgres) Delete(ctx context.Context, id string) (int64, error) {
	const q = `DELETE FROM articles WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountByPublisher groups articles that carry a publisher by its label.
func (r *ArticlePostgres) CountByPublisher(ctx context.Context) ([]model.PublisherCount, error) {
	const q = `
		SELECT publisher->>'label' AS label, COUNT(*)
		FROM articles
		WHERE publisher IS NOT NULL
		GROUP BY publisher->>'label'
		ORDER BY label
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.PublisherCount, 0)
	for rows.Next() {
		var (
			label sql.NullString
			pc    model.PublisherCount
		)
		if err := rows.Scan(&label, &pc.Count); err != nil {
			return nil, err
		}
		pc.Label = label.String
		out = append(out, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ArticlePostgres) query(ctx context.Context, q string, args ...any) ([]model.Article, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func orderBy(s repository.ArticleSort) []string {
	switch s {
	case repository.SortNewest:
		return []string{"created_at DESC", "id DESC"}
	case repository.SortMostViewed:
		return []string{"views DESC", "created_at ASC", "id ASC"}
	default:
		return []string{"created_at ASC", "id ASC"}
	}
}

func joinColumns() string {
	return strings.Join(articleColumns, ", ")
}

func scanArticle(s rowScanner) (*model.Article, error) {
	var (
		a         model.Article
		publisher []byte
		tags      []byte
		reason    sql.NullString
	)
	if err := s.Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.Image,
		&a.AuthorEmail,
		&a.AuthorName,
		&a.AuthorPhoto,
		&publisher,
		&tags,
		&a.Status,
		&reason,
		&a.Views,
		&a.IsPremium,
		&a.IsExclusive,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}

	if len(publisher) > 0 && string(publisher) != "null" {
		var p model.Option
		if err := json.Unmarshal(publisher, &p); err != nil {
			return nil, fmt.Errorf("decode publisher: %w", err)
		}
		a.Publisher = &p
	}
	a.Tags = make([]model.Option, 0)
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &a.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	if reason.Valid {
		a.DeclineReason = &reason.String
	}
	return &a, nil
}

// encodePublisher returns nil for a missing publisher so the column stays NULL.
func encodePublisher(p *model.Option) (any, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode publisher: %w", err)
	}
	return string(b), nil
}

func encodeTags(tags []model.Option) (string, error) {
	if tags == nil {
		tags = []model.Option{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}
