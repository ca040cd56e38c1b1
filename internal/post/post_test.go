package post

import (
	"reflect"
	"testing"
)

func TestPost_Eligible(t *testing.T) {
	tests := []struct {
		crosspost bool
		published bool
		want      bool
	}{
		{false, false, false},
		{true, false, true},
		{false, true, true},
		{true, true, true},
	}

	for _, tt := range tests {
		// Other fields never affect eligibility.
		p := &Post{
			Title:        "T",
			Crosspost:    tt.crosspost,
			Published:    tt.published,
			CanonicalURL: "https://example.com",
			Tags:         []string{"x"},
		}
		if got := p.Eligible(); got != tt.want {
			t.Errorf("Eligible(crosspost=%v, published=%v) = %v, want %v", tt.crosspost, tt.published, got, tt.want)
		}
	}
}

func TestPost_Live(t *testing.T) {
	if (&Post{Crosspost: true}).Live() {
		t.Error("crosspost-only post should be a draft")
	}
	if !(&Post{Published: true}).Live() {
		t.Error("published post should be live")
	}
}

func TestPost_SlugOrDefault(t *testing.T) {
	if got := (&Post{Title: "Hello", Slug: "custom"}).SlugOrDefault(); got != "custom" {
		t.Errorf("SlugOrDefault() = %q, want custom", got)
	}
	if got := (&Post{Title: "Hello World"}).SlugOrDefault(); got != "hello-world" {
		t.Errorf("SlugOrDefault() = %q, want hello-world", got)
	}
}

func TestPost_TrimmedTags(t *testing.T) {
	p := &Post{Tags: []string{" go ", "", "cli", "   "}}
	if got := p.TrimmedTags(); !reflect.DeepEqual(got, []string{"go", "cli"}) {
		t.Errorf("TrimmedTags() = %v", got)
	}
}
