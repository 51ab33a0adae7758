package article

import (
	"context"
	"fmt"

	"betpress/internal/common/pagination"
	"betpress/internal/domain/entity"
	"betpress/internal/repository"
)

// Service serves the public article read API.
type Service struct {
	Repo repository.ArticleRepository
}

// PaginatedResult bundles one page of articles with its metadata.
type PaginatedResult struct {
	Data       []*entity.Article
	Pagination pagination.Metadata
}

// ListPublished returns one page of published articles, newest first.
func (s *Service) ListPublished(ctx context.Context, params pagination.Params) (*PaginatedResult, error) {
	total, err := s.Repo.CountPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("count published articles: %w", err)
	}

	articles, err := s.Repo.ListPublished(ctx, params.Offset(), params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list published articles: %w", err)
	}

	return &PaginatedResult{
		Data:       articles,
		Pagination: pagination.BuildMetadata(params, total),
	}, nil
}

// Get returns one article by ID, or ErrArticleNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}
	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	return art, nil
}

// GetBySlug returns one article by slug, or ErrArticleNotFound.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	if slug == "" {
		return nil, ErrInvalidSlug
	}
	art, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get article by slug %q: %w", slug, err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	return art, nil
}
