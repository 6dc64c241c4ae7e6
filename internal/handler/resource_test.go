package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Zed-Kryp/BlogSphere/internal/httputil"
	"github.com/Zed-Kryp/BlogSphere/internal/model"
	"github.com/Zed-Kryp/BlogSphere/internal/repository"
	"github.com/Zed-Kryp/BlogSphere/internal/service"
)

// stubTable records the scan parameters it receives.
type stubTable struct {
	spec       model.TableSpec
	lastParams model.ListParams
}

func (s *stubTable) Spec() model.TableSpec { return s.spec }

func (s *stubTable) Get(ctx context.Context, id string) (model.Record, error) {
	return nil, model.ErrItemNotFound
}

func (s *stubTable) Put(ctx context.Context, rec model.Record) error         { return nil }
func (s *stubTable) PutIfAbsent(ctx context.Context, rec model.Record) error { return nil }

func (s *stubTable) Update(ctx context.Context, id string, fields model.Record) (model.Record, error) {
	return fields, nil
}

func (s *stubTable) Delete(ctx context.Context, id string) error { return nil }

func (s *stubTable) Scan(ctx context.Context, params model.ListParams) (*model.Page, error) {
	s.lastParams = params
	return &model.Page{Items: []model.Record{}, Count: 0}, nil
}

type stubCatalog struct {
	table *stubTable
}

func (s *stubCatalog) Resource(resource string) (repository.ResourceTable, error) {
	if resource != s.table.spec.Resource {
		return nil, model.ErrUnknownResource
	}
	return s.table, nil
}

func newListFixture() (*ResourceHandler, *stubTable) {
	table := &stubTable{spec: model.TableSpec{Resource: model.ResourceBlogPosts, Name: "BlogPosts", KeyAttr: "postId"}}
	svc := service.NewResourceService(&stubCatalog{table: table}, nil, nil, nil)
	return NewResourceHandler(svc), table
}

func TestListLimitValidation(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantLimit  int
	}{
		{"default", "", http.StatusOK, model.DefaultListLimit},
		{"explicit", "?limit=50", http.StatusOK, 50},
		{"minimum", "?limit=1", http.StatusOK, 1},
		{"maximum", "?limit=100", http.StatusOK, 100},
		{"zero", "?limit=0", http.StatusBadRequest, 0},
		{"too large", "?limit=101", http.StatusBadRequest, 0},
		{"negative", "?limit=-5", http.StatusBadRequest, 0},
		{"not a number", "?limit=abc", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, table := newListFixture()
			req := httptest.NewRequest(http.MethodGet, "/blog-posts"+tt.query, nil)
			rec := httptest.NewRecorder()

			h.List(model.ResourceBlogPosts)(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && table.lastParams.Limit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", table.lastParams.Limit, tt.wantLimit)
			}
		})
	}
}

func TestListInvalidLimitNamesValue(t *testing.T) {
	h, _ := newListFixture()
	req := httptest.NewRequest(http.MethodGet, "/blog-posts?limit=500", nil)
	rec := httptest.NewRecorder()

	h.List(model.ResourceBlogPosts)(rec, req)

	var body httputil.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if !strings.Contains(body.Error.Message, "500") {
		t.Errorf("error message should echo the provided value, got %q", body.Error.Message)
	}
	if body.Error.Code != httputil.ErrCodeBadRequest {
		t.Errorf("error code = %q, want %q", body.Error.Code, httputil.ErrCodeBadRequest)
	}
}

func TestListPassesFiltersAndStartKey(t *testing.T) {
	h, table := newListFixture()
	req := httptest.NewRequest(http.MethodGet, "/blog-posts?authorId=u1&last_evaluated_key=p5", nil)
	rec := httptest.NewRecorder()

	h.List(model.ResourceBlogPosts)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if table.lastParams.StartKey != "p5" {
		t.Errorf("start key = %q, want p5", table.lastParams.StartKey)
	}
	if table.lastParams.Filters["authorId"] != "u1" {
		t.Errorf("authorId filter = %q, want u1", table.lastParams.Filters["authorId"])
	}
}

func TestListCategoryFilterIsMembershipCheck(t *testing.T) {
	h, table := newListFixture()
	req := httptest.NewRequest(http.MethodGet, "/blog-posts?categoryId=c1", nil)
	rec := httptest.NewRecorder()

	h.List(model.ResourceBlogPosts)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// Posts hold a categories list, so the filter must be a contains() on
	// that attribute rather than an equality on categoryId.
	if got := table.lastParams.ContainsFilters["categories"]; got != "c1" {
		t.Errorf("categories contains-filter = %q, want c1", got)
	}
	if _, ok := table.lastParams.Filters["categoryId"]; ok {
		t.Error("categoryId must not be applied as an equality filter")
	}
}
