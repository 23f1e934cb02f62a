package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/servicehub/marketplace/internal/core/domain"
)

func TestDirectoryHandler_Search(t *testing.T) {
	var got domain.ProviderFilter
	stub := &stubDirectoryService{
		searchFn: func(_ context.Context, f domain.ProviderFilter) ([]*domain.Provider, error) {
			got = f
			return []*domain.Provider{{Account: domain.Account{ID: "p1"}, ServiceType: "Plumber"}}, nil
		},
	}
	h := NewDirectoryHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/providers?service=Plumber&city=pune&experience=3&price=500", "", nil)
	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if got.ServiceType != "Plumber" || got.City != "pune" {
		t.Errorf("unexpected filter: %+v", got)
	}
	if got.MinExperience == nil || *got.MinExperience != 3 || got.MaxPrice == nil || *got.MaxPrice != 500 {
		t.Errorf("numeric bounds not parsed: %+v", got)
	}

	var resp []providerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || len(resp) != 1 {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
}

func TestDirectoryHandler_Search_NoBounds(t *testing.T) {
	stub := &stubDirectoryService{
		searchFn: func(_ context.Context, f domain.ProviderFilter) ([]*domain.Provider, error) {
			if f.MinExperience != nil || f.MaxPrice != nil {
				t.Fatalf("absent bounds must stay nil: %+v", f)
			}
			return nil, nil
		},
	}
	h := NewDirectoryHandler(stub)

	c, _ := newTestContext(http.MethodGet, "/v1/providers", "", nil)
	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestDirectoryHandler_Search_BadNumbers(t *testing.T) {
	stub := &stubDirectoryService{
		searchFn: func(context.Context, domain.ProviderFilter) ([]*domain.Provider, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewDirectoryHandler(stub)

	for _, q := range []string{"experience=abc", "experience=-2", "price=cheap"} {
		c, _ := newTestContext(http.MethodGet, "/v1/providers?"+q, "", nil)
		if code := httpCode(h.Search(c)); code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, code)
		}
	}
}
