package service

import (
	"errors"
	"strings"
	"testing"
)

func TestResourceService_EmbeddedCatalog(t *testing.T) {
	s, err := NewResourceService()
	if err != nil {
		t.Fatalf("NewResourceService: %v", err)
	}
	items := s.List()
	if len(items) != 5 {
		t.Fatalf("want 5 resources, got %d", len(items))
	}
	for _, r := range items {
		if !strings.HasPrefix(r.Link, "https://") {
			t.Errorf("resource %q has non-https link %q", r.Title, r.Link)
		}
	}
	if items[0].Title != "Mindfulness Exercises" {
		t.Fatalf("unexpected first resource: %+v", items[0])
	}
}

func TestResourceService_ListReturnsCopy(t *testing.T) {
	s, err := NewResourceService()
	if err != nil {
		t.Fatalf("NewResourceService: %v", err)
	}
	items := s.List()
	items[0].Title = "changed"
	if s.List()[0].Title == "changed" {
		t.Fatal("List must not expose internal slice")
	}
}

func TestNewResourceService_Invalid(t *testing.T) {
	if _, err := newResourceService([]byte("resources: [")); err == nil {
		t.Fatal("expected parse error")
	}
	_, err := newResourceService([]byte("resources:\n  - title: No link\n"))
	if !errors.Is(err, errIncompleteResource) {
		t.Fatalf("want errIncompleteResource, got %v", err)
	}
}
