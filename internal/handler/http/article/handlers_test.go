package article

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"betpress/internal/common/pagination"
	"betpress/internal/domain/entity"
	"betpress/internal/usecase/article"
)

type stubRepo struct {
	articles []*entity.Article
}

func (s *stubRepo) Create(context.Context, *entity.Article) error { return nil }

func (s *stubRepo) ExistsBySourceURL(context.Context, string) (bool, error) { return false, nil }

func (s *stubRepo) ExistsBySourceURLBatch(context.Context, []string) (map[string]bool, error) {
	return map[string]bool{}, nil
}

func (s *stubRepo) ExistsBySlug(context.Context, string) (bool, error) { return false, nil }

func (s *stubRepo) ListPublished(_ context.Context, offset, limit int) ([]*entity.Article, error) {
	if offset >= len(s.articles) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.articles) {
		end = len(s.articles)
	}
	return s.articles[offset:end], nil
}

func (s *stubRepo) CountPublished(context.Context) (int64, error) {
	return int64(len(s.articles)), nil
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.Article, error) {
	for _, a := range s.articles {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) GetBySlug(_ context.Context, slug string) (*entity.Article, error) {
	for _, a := range s.articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return nil, nil
}

func sampleArticle(id int64, slug string) *entity.Article {
	return &entity.Article{
		ID:              id,
		Title:           "Yeni Bonus Kampanyası Duyuruldu",
		Slug:            slug,
		Excerpt:         "Sektörde yeni bir kampanya dönemi başladı.",
		Body:            "Sektörde yeni bir kampanya dönemi başladı. Detaylar haberde.",
		BodyHTML:        "<p>Sektörde yeni bir kampanya dönemi başladı. Detaylar haberde.</p>",
		Category:        entity.CategoryBonus,
		Tags:            []string{"bonus", "kampanya"},
		MetaTitle:       "Yeni Bonus Kampanyası",
		MetaDescription: "Sektörde yeni kampanya dönemi.",
		SourceURL:       "https://example.com/news/" + slug,
		SourceFeed:      "İGaming Haber",
		PublishedAt:     time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		IsPublished:     true,
		CreatedAt:       time.Date(2026, 8, 20, 10, 5, 0, 0, time.UTC),
	}
}

func testMux(repo *stubRepo) *http.ServeMux {
	mux := http.NewServeMux()
	Register(mux, &article.Service{Repo: repo}, pagination.DefaultConfig())
	return mux
}

func TestListReturnsPage(t *testing.T) {
	repo := &stubRepo{}
	for i := int64(1); i <= 25; i++ {
		repo.articles = append(repo.articles, sampleArticle(i, "haber-"+string(rune('a'+i-1))))
	}
	mux := testMux(repo)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/articles?page=2&limit=10", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp ListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Data) != 10 {
		t.Errorf("len(data) = %d, want 10", len(resp.Data))
	}
	if resp.Pagination.Total != 25 || resp.Pagination.Page != 2 || resp.Pagination.TotalPages != 3 {
		t.Errorf("pagination = %+v", resp.Pagination)
	}
	if resp.Data[0].ID != 11 {
		t.Errorf("first item ID = %d, want 11", resp.Data[0].ID)
	}
}

func TestListRejectsBadQuery(t *testing.T) {
	mux := testMux(&stubRepo{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/articles?page=zero", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestListOmitsBody(t *testing.T) {
	repo := &stubRepo{articles: []*entity.Article{sampleArticle(1, "haber")}}
	mux := testMux(repo)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/articles", nil))

	if strings.Contains(rec.Body.String(), "body_html") {
		t.Error("list response should not carry the article body")
	}
}

func TestGetByID(t *testing.T) {
	repo := &stubRepo{articles: []*entity.Article{sampleArticle(7, "haber")}}
	mux := testMux(repo)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/articles/7", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var dto DTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if dto.ID != 7 || dto.Slug != "haber" {
		t.Errorf("dto = %+v", dto)
	}
	if dto.BodyHTML == "" {
		t.Error("detail response should carry body_html")
	}
}

func TestGetBySlugFallback(t *testing.T) {
	repo := &stubRepo{articles: []*entity.Article{sampleArticle(7, "yeni-bonus-kampanyasi")}}
	mux := testMux(repo)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/articles/yeni-bonus-kampanyasi", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var dto DTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if dto.ID != 7 {
		t.Errorf("ID = %d, want 7", dto.ID)
	}
}

func TestGetNotFound(t *testing.T) {
	mux := testMux(&stubRepo{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/articles/404", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not found") {
		t.Errorf("body = %q", rec.Body.String())
	}
}
