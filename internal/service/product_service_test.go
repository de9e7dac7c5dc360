package service

import (
	"context"
	"errors"
	"testing"

	"github.com/arjan001/sonya-stores-sub001/internal/entity"
)

func validProductInput() ProductInput {
	return ProductInput{
		Name:       "Leather Boots",
		Price:      3500,
		CategoryID: 2,
		InStock:    true,
		Condition:  entity.ConditionNew,
		Images:     []string{"https://cdn.example.com/boots.jpg"},
	}
}

func TestBuildProductDerivesSlugFromName(t *testing.T) {
	product, err := buildProduct(validProductInput())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if product.Slug != "leather-boots" {
		t.Errorf("expected slug leather-boots, got %q", product.Slug)
	}
}

func TestBuildProductKeepsExplicitSlug(t *testing.T) {
	in := validProductInput()
	in.Slug = "Boots V2!"
	product, err := buildProduct(in)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if product.Slug != "boots-v2" {
		t.Errorf("expected slug boots-v2, got %q", product.Slug)
	}
}

func TestBuildProductDefaultsCondition(t *testing.T) {
	in := validProductInput()
	in.Condition = ""
	product, err := buildProduct(in)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if product.Condition != entity.ConditionNew {
		t.Errorf("expected default condition %q, got %q", entity.ConditionNew, product.Condition)
	}
}

func TestBuildProductRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ProductInput)
	}{
		{"missing name", func(in *ProductInput) { in.Name = "  " }},
		{"missing category", func(in *ProductInput) { in.CategoryID = 0 }},
		{"negative price", func(in *ProductInput) { in.Price = -1 }},
		{"unknown condition", func(in *ProductInput) { in.Condition = "refurbished" }},
	}
	for _, tc := range cases {
		in := validProductInput()
		tc.mutate(&in)
		_, err := buildProduct(in)
		if err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
			continue
		}
		var ve ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: expected ValidationError, got %T", tc.name, err)
		}
	}
}

func TestBuildProductSkipsIncompleteVariations(t *testing.T) {
	in := validProductInput()
	in.Variations = []struct {
		Label string `json:"label"`
		Value string `json:"value"`
	}{
		{Label: "Size", Value: "42"},
		{Label: "", Value: "43"},
		{Label: "Size", Value: ""},
	}
	product, err := buildProduct(in)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(product.Variations) != 1 {
		t.Errorf("expected 1 variation kept, got %d", len(product.Variations))
	}
}

func TestStaleSlugsCoversRenames(t *testing.T) {
	got := staleSlugs("old-boots", "new-boots")
	if len(got) != 2 || got[0] != "old-boots" || got[1] != "new-boots" {
		t.Errorf("expected both slugs evicted on a rename, got %v", got)
	}

	got = staleSlugs("boots", "boots")
	if len(got) != 1 || got[0] != "boots" {
		t.Errorf("expected a single eviction for an unchanged slug, got %v", got)
	}

	got = staleSlugs("", "boots")
	if len(got) != 1 || got[0] != "boots" {
		t.Errorf("expected no empty-key eviction, got %v", got)
	}
}

func TestSearchShortCircuitsShortQueries(t *testing.T) {
	s := NewProductService(nil, nil)
	for _, q := range []string{"", " ", "a", " a "} {
		res, err := s.Search(context.Background(), q, 0, 20, 0)
		if err != nil {
			t.Fatalf("query %q: expected no error, got: %v", q, err)
		}
		if res.Total != 0 || len(res.Products) != 0 {
			t.Errorf("query %q: expected empty result, got %+v", q, res)
		}
	}
}
