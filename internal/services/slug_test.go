package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"huntboard/internal/models"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello-world"},
		{"Cool App", "cool-app"},
		{"  lots   of --- noise  ", "lots-of-noise"},
		{"Already-Slugged", "already-slugged"},
		{"42 Things", "42-things"},
		{"!!!", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestResolveReturnsBaseWhenFree(t *testing.T) {
	gdb := openTestDB(t)
	r := NewSlugResolver(gdb)

	slug, err := r.Resolve(context.Background(), &models.Product{}, "My Product", 0)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if slug != "my-product" {
		t.Errorf("expected my-product, got %q", slug)
	}
}

func TestResolveEmptySource(t *testing.T) {
	gdb := openTestDB(t)
	r := NewSlugResolver(gdb)

	_, err := r.Resolve(context.Background(), &models.Product{}, "?!?", 0)
	if !errors.Is(err, ErrInvalidSlugSource) {
		t.Fatalf("expected ErrInvalidSlugSource, got %v", err)
	}
}

func TestResolveSuffixesOnCollision(t *testing.T) {
	gdb := openTestDB(t)
	owner := seedUser(t, gdb, "maker")
	seedProduct(t, gdb, owner, "My Product", "my-product")

	r := NewSlugResolver(gdb)
	slug, err := r.Resolve(context.Background(), &models.Product{}, "My Product", 0)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if slug == "my-product" {
		t.Fatal("expected a disambiguated slug, got the colliding one")
	}
	if !strings.HasPrefix(slug, "my-product-") {
		t.Errorf("expected my-product- prefix, got %q", slug)
	}

	// The suffixed result must itself be confirmed unused.
	var count int64
	gdb.Model(&models.Product{}).Where("slug = ?", slug).Count(&count)
	if count != 0 {
		t.Errorf("resolved slug %q already taken", slug)
	}
}

func TestResolveExcludesOwnRow(t *testing.T) {
	gdb := openTestDB(t)
	owner := seedUser(t, gdb, "maker")
	product := seedProduct(t, gdb, owner, "My Product", "my-product")

	r := NewSlugResolver(gdb)
	slug, err := r.Resolve(context.Background(), &models.Product{}, "My Product", product.ID)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if slug != "my-product" {
		t.Errorf("re-saving an unchanged title must keep its slug, got %q", slug)
	}
}

func TestResolveScopesPerTable(t *testing.T) {
	gdb := openTestDB(t)
	owner := seedUser(t, gdb, "maker")
	seedProduct(t, gdb, owner, "Dev Tools", "dev-tools")

	// The same text is free in the category namespace.
	r := NewSlugResolver(gdb)
	slug, err := r.Resolve(context.Background(), &models.Category{}, "Dev Tools", 0)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if slug != "dev-tools" {
		t.Errorf("expected dev-tools, got %q", slug)
	}
}
