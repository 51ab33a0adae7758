package article_test

import (
	"context"
	"errors"
	"testing"

	"betpress/internal/common/pagination"
	"betpress/internal/domain/entity"
	"betpress/internal/usecase/article"
)

type stubArticleRepo struct {
	articles []*entity.Article
	total    int64
	byID     map[int64]*entity.Article
	bySlug   map[string]*entity.Article
	err      error

	gotOffset, gotLimit int
}

func (s *stubArticleRepo) Create(_ context.Context, _ *entity.Article) error { return nil }
func (s *stubArticleRepo) ExistsBySourceURL(_ context.Context, _ string) (bool, error) {
	return false, nil
}
func (s *stubArticleRepo) ExistsBySourceURLBatch(_ context.Context, _ []string) (map[string]bool, error) {
	return nil, nil
}
func (s *stubArticleRepo) ExistsBySlug(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (s *stubArticleRepo) ListPublished(_ context.Context, offset, limit int) ([]*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.gotOffset, s.gotLimit = offset, limit
	return s.articles, nil
}

func (s *stubArticleRepo) CountPublished(_ context.Context) (int64, error) {
	return s.total, s.err
}

func (s *stubArticleRepo) Get(_ context.Context, id int64) (*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byID[id], nil
}

func (s *stubArticleRepo) GetBySlug(_ context.Context, slug string) (*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.bySlug[slug], nil
}

func TestListPublished(t *testing.T) {
	repo := &stubArticleRepo{
		articles: []*entity.Article{{ID: 1, Title: "Haber"}},
		total:    41,
	}
	svc := &article.Service{Repo: repo}

	result, err := svc.ListPublished(context.Background(), pagination.Params{Page: 3, Limit: 20})
	if err != nil {
		t.Fatalf("ListPublished() error = %v", err)
	}
	if repo.gotOffset != 40 || repo.gotLimit != 20 {
		t.Errorf("repo called with offset=%d limit=%d, want 40/20", repo.gotOffset, repo.gotLimit)
	}
	if result.Pagination.Total != 41 || result.Pagination.TotalPages != 3 {
		t.Errorf("Pagination = %+v, want total 41 over 3 pages", result.Pagination)
	}
	if len(result.Data) != 1 {
		t.Errorf("Data length = %d, want 1", len(result.Data))
	}
}

func TestGet(t *testing.T) {
	stored := &entity.Article{ID: 5, Title: "Var Olan Haber"}
	repo := &stubArticleRepo{byID: map[int64]*entity.Article{5: stored}}
	svc := &article.Service{Repo: repo}

	got, err := svc.Get(context.Background(), 5)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != stored {
		t.Errorf("Get() = %+v, want the stored article", got)
	}

	if _, err := svc.Get(context.Background(), 99); !errors.Is(err, article.ErrArticleNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrArticleNotFound", err)
	}
	if _, err := svc.Get(context.Background(), 0); !errors.Is(err, article.ErrInvalidArticleID) {
		t.Errorf("Get(0) error = %v, want ErrInvalidArticleID", err)
	}
}

func TestGetBySlug(t *testing.T) {
	stored := &entity.Article{ID: 5, Slug: "var-olan-haber"}
	repo := &stubArticleRepo{bySlug: map[string]*entity.Article{"var-olan-haber": stored}}
	svc := &article.Service{Repo: repo}

	got, err := svc.GetBySlug(context.Background(), "var-olan-haber")
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	if got != stored {
		t.Errorf("GetBySlug() = %+v, want the stored article", got)
	}

	if _, err := svc.GetBySlug(context.Background(), "yok"); !errors.Is(err, article.ErrArticleNotFound) {
		t.Errorf("GetBySlug(missing) error = %v, want ErrArticleNotFound", err)
	}
	if _, err := svc.GetBySlug(context.Background(), ""); !errors.Is(err, article.ErrInvalidSlug) {
		t.Errorf("GetBySlug(\"\") error = %v, want ErrInvalidSlug", err)
	}
}
