package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"newshub/internal/model"
	"newshub/internal/service"
)

type MockArticleService struct {
	mock.Mock
}

func (m *MockArticleService) articleResult(args mock.Arguments) (*model.Article, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleService) listResult(args mock.Arguments) ([]model.Article, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Article), args.Error(1)
}

func (m *MockArticleService) Submit(ctx context.Context, email string, in service.SubmitInput) (*model.Article, error) {
	return m.articleResult(m.Called(ctx, email, in))
}

func (m *MockArticleService) Moderate(ctx context.Context, id, status string, reason *string) error {
	args := m.Called(ctx, id, status, reason)
	return args.Error(0)
}

func (m *MockArticleService) RecordView(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArticleService) PromotePremium(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArticleService) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArticleService) UpdateFields(ctx context.Context, email, id string, p model.ArticlePatch) (*model.Article, error) {
	return m.articleResult(m.Called(ctx, email, id, p))
}

func (m *MockArticleService) Get(ctx context.Context, id string) (*model.Article, error) {
	return m.articleResult(m.Called(ctx, id))
}

func (m *MockArticleService) Trending(ctx context.Context) ([]model.Article, error) {
	return m.listResult(m.Called(ctx))
}

func (m *MockArticleService) Latest(ctx context.Context) ([]model.Article, error) {
	return m.listResult(m.Called(ctx))
}

func (m *MockArticleService) Exclusive(ctx context.Context) ([]model.Article, error) {
	return m.listResult(m.Called(ctx))
}

func (m *MockArticleService) Premium(ctx context.Context) ([]model.Article, error) {
	return m.listResult(m.Called(ctx))
}

func (m *MockArticleService) ApprovedSearch(ctx context.Context, search, publisher, tags string) ([]model.Article, error) {
	return m.listResult(m.Called(ctx, search, publisher, tags))
}

func (m *MockArticleService) List(ctx context.Context, page, limit int) (*service.ArticleListResult, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticleListResult), args.Error(1)
}

func (m *MockArticleService) MyArticles(ctx context.Context, email string) ([]model.Article, error) {
	return m.listResult(m.Called(ctx, email))
}

func (m *MockArticleService) PublisherArticleCounts(ctx context.Context) ([]model.PublisherCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PublisherCount), args.Error(1)
}
