package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"newshub/internal/content"
	"newshub/internal/model"
	"newshub/internal/policy"
	"newshub/internal/repository"
)

const (
	TrendingLimit  = 6
	LatestLimit    = 6
	ExclusiveLimit = 10
	MaxPageLimit   = 100
)

// SubmitInput is the schema accepted for a new article.
type SubmitInput struct {
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Image       string         `json:"image"`
	AuthorName  string         `json:"authorName"`
	AuthorPhoto string         `json:"authorPhoto"`
	Publisher   *model.Option  `json:"publisher"`
	Tags        []model.Option `json:"tags"`
	IsExclusive bool           `json:"isExclusive"`
}

// ArticleListResult is one page of the admin article listing.
// Total is an estimate and may lag recent writes.
type ArticleListResult struct {
	Total    int64           `json:"total"`
	Articles []model.Article `json:"articles"`
}

// ArticleService covers the article lifecycle and every read view over articles.
type ArticleService interface {
	// Submit stores a pending article authored by email, subject to the one-article rule.
	Submit(ctx context.Context, email string, in SubmitInput) (*model.Article, error)
	// Moderate sets the status; a decline reason is kept only for declined articles.
	Moderate(ctx context.Context, id, status string, reason *string) error
	// RecordView adds one view and returns the new total.
	RecordView(ctx context.Context, id string) (int64, error)
	PromotePremium(ctx context.Context, id string) error
	// Delete is idempotent and reports how many articles were removed.
	Delete(ctx context.Context, id string) (int64, error)
	// UpdateFields applies an author or admin edit.
	UpdateFields(ctx context.Context, email, id string, p model.ArticlePatch) (*model.Article, error)
	Get(ctx context.Context, id string) (*model.Article, error)

	Trending(ctx context.Context) ([]model.Article, error)
	Latest(ctx context.Context) ([]model.Article, error)
	Exclusive(ctx context.Context) ([]model.Article, error)
	Premium(ctx context.Context) ([]model.Article, error)
	// ApprovedSearch filters approved articles; tags is a comma-separated list matched with OR.
	ApprovedSearch(ctx context.Context, search, publisher, tags string) ([]model.Article, error)
	List(ctx context.Context, page, limit int) (*ArticleListResult, error)
	MyArticles(ctx context.Context, email string) ([]model.Article, error)
	PublisherArticleCounts(ctx context.Context) ([]model.PublisherCount, error)
}

type articleService struct {
	articles repository.ArticleRepository
	users    repository.UserRepository
	now      func() time.Time
}

// NewArticleService constructs a new ArticleService.
func NewArticleService(articles repository.ArticleRepository, users repository.UserRepository) ArticleService {
	return &articleService{articles: articles, users: users, now: time.Now}
}

func (s *articleService) Submit(ctx context.Context, email string, in SubmitInput) (*model.Article, error) {
	if err := validateSubmit(&in); err != nil {
		return nil, err
	}

	user, err := lookupUser(ctx, s.users, email)
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}

	now := s.now()
	hasArticle := false
	if user != nil && !policy.IsPremium(user, now) {
		// Check-then-insert: two concurrent first submissions can both pass.
		hasArticle, err = s.articles.ExistsByAuthor(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("check existing articles: %w", err)
		}
	}
	if err := policy.AuthorizeSubmission(user, hasArticle, now); err != nil {
		return nil, err
	}

	a := &model.Article{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Content:     in.Content,
		Image:       in.Image,
		AuthorEmail: email,
		AuthorName:  in.AuthorName,
		AuthorPhoto: in.AuthorPhoto,
		Publisher:   in.Publisher,
		Tags:        in.Tags,
		Status:      model.StatusPending,
		IsExclusive: in.IsExclusive,
		CreatedAt:   now.UTC(),
	}
	if a.AuthorName == "" {
		a.AuthorName = user.Name
	}
	if a.AuthorPhoto == "" {
		a.AuthorPhoto = user.Photo
	}
	if a.Tags == nil {
		a.Tags = []model.Option{}
	}

	stored, err := s.articles.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("save article: %w", err)
	}
	return stored, nil
}

func (s *articleService) Moderate(ctx context.Context, id, status string, reason *string) error {
	if status == "" {
		return ErrStatusRequired
	}
	if !model.ValidStatus(status) {
		return ErrInvalidStatus
	}
	id, err := parseID(id)
	if err != nil {
		return err
	}

	var keep *string
	if status == model.StatusDeclined && reason != nil {
		if r := strings.TrimSpace(*reason); r != "" {
			keep = &r
		}
	}

	n, err := s.articles.UpdateStatus(ctx, id, status, keep)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *articleService) RecordView(ctx context.Context, id string) (int64, error) {
	id, err := parseID(id)
	if err != nil {
		return 0, err
	}
	views, err := s.articles.IncrementViews(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("increment views: %w", err)
	}
	return views, nil
}

func (s *articleService) PromotePremium(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	n, err := s.articles.MarkPremium(ctx, id)
	if err != nil {
		return fmt.Errorf("mark premium: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *articleService) Delete(ctx context.Context, id string) (int64, error) {
	id, err := parseID(id)
	if err != nil {
		return 0, err
	}
	n, err := s.articles.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete article: %w", err)
	}
	return n, nil
}

func (s *articleService) UpdateFields(ctx context.Context, email, id string, p model.ArticlePatch) (*model.Article, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := validatePatch(p); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user, err := lookupUser(ctx, s.users, email)
	if err != nil {
		return nil, fmt.Errorf("load editor: %w", err)
	}
	if err := policy.AuthorizeArticleEdit(email, user, current); err != nil {
		return nil, err
	}

	updated, err := s.articles.Patch(ctx, id, p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("patch article: %w", err)
	}
	return updated, nil
}

func (s *articleService) Get(ctx context.Context, id string) (*model.Article, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	a, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *articleService) Trending(ctx context.Context) ([]model.Article, error) {
	return s.articles.Find(ctx, repository.ArticleQuery{Sort: repository.SortMostViewed, Limit: TrendingLimit})
}

func (s *articleService) Latest(ctx context.Context) ([]model.Article, error) {
	return s.articles.Find(ctx, repository.ArticleQuery{
		Status: model.StatusApproved,
		Sort:   repository.SortNewest,
		Limit:  LatestLimit,
	})
}

func (s *articleService) Exclusive(ctx context.Context) ([]model.Article, error) {
	return s.articles.Find(ctx, repository.ArticleQuery{
		ExclusiveOnly: true,
		Sort:          repository.SortOldest,
		Limit:         ExclusiveLimit,
	})
}

func (s *articleService) Premium(ctx context.Context) ([]model.Article, error) {
	return s.articles.Find(ctx, repository.ArticleQuery{
		Status:      model.StatusApproved,
		PremiumOnly: true,
		Sort:        repository.SortNewest,
	})
}

func (s *articleService) ApprovedSearch(ctx context.Context, search, publisher, tags string) ([]model.Article, error) {
	q := repository.ArticleQuery{
		Status:         model.StatusApproved,
		TitleContains:  strings.TrimSpace(search),
		PublisherValue: strings.TrimSpace(publisher),
		Sort:           repository.SortNewest,
	}
	for _, tag := range strings.Split(tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			q.Tags = append(q.Tags, tag)
		}
	}
	return s.articles.Find(ctx, q)
}

func (s *articleService) List(ctx context.Context, page, limit int) (*ArticleListResult, error) {
	if page < 0 {
		return nil, invalid("page must be >= 0")
	}
	if limit < 1 || limit > MaxPageLimit {
		return nil, invalid("limit must be between 1 and %d", MaxPageLimit)
	}

	res, err := s.articles.List(ctx, repository.PageQuery{Limit: limit, Offset: page * limit})
	if err != nil {
		return nil, err
	}
	return &ArticleListResult{Total: res.Total, Articles: res.Items}, nil
}

func (s *articleService) MyArticles(ctx context.Context, email string) ([]model.Article, error) {
	if strings.TrimSpace(email) == "" {
		return nil, invalid("email is required")
	}
	return s.articles.Find(ctx, repository.ArticleQuery{AuthorEmail: email, Sort: repository.SortNewest})
}

func (s *articleService) PublisherArticleCounts(ctx context.Context) ([]model.PublisherCount, error) {
	return s.articles.CountByPublisher(ctx)
}

// lookupUser returns a nil user, not an error, when email is unknown.
func lookupUser(ctx context.Context, users repository.UserRepository, email string) (*model.User, error) {
	u, err := users.FindByEmail(ctx, canonicalEmail(email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func validateSubmit(in *SubmitInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return invalid("title is required")
	}
	if content.PlainText(in.Content) == "" {
		return invalid("content is required")
	}
	in.Image = strings.TrimSpace(in.Image)
	if in.Publisher != nil && strings.TrimSpace(in.Publisher.Value) == "" {
		return invalid("publisher value is required")
	}
	return validateTags(in.Tags)
}

func validatePatch(p model.ArticlePatch) error {
	if p.Empty() {
		return invalid("no updatable fields given")
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("title must not be empty")
	}
	if p.Content != nil && content.PlainText(*p.Content) == "" {
		return invalid("content must not be empty")
	}
	if p.Publisher != nil && strings.TrimSpace(p.Publisher.Value) == "" {
		return invalid("publisher value is required")
	}
	if p.Tags != nil {
		return validateTags(*p.Tags)
	}
	return nil
}

func validateTags(tags []model.Option) error {
	for i, t := range tags {
		if strings.TrimSpace(t.Value) == "" {
			return invalid("tags[%d] value is required", i)
		}
	}
	return nil
}
