package matching

import (
	"testing"

	"github.com/deniz/teamup/internal/app/models"
)

func strPtr(s string) *string { return &s }

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		required *string
		skills   []string
		want     bool
	}{
		{
			name:     "single overlapping token",
			required: strPtr("Go, PostgreSQL"),
			skills:   []string{"Go"},
			want:     true,
		},
		{
			name:     "case insensitive overlap",
			required: strPtr("go,REACT"),
			skills:   []string{"React"},
			want:     true,
		},
		{
			name:     "whitespace around tokens and skills",
			required: strPtr("  Rust ,  Kubernetes "),
			skills:   []string{" kubernetes  "},
			want:     true,
		},
		{
			name:     "no overlap",
			required: strPtr("Go, PostgreSQL"),
			skills:   []string{"Java", "Spring"},
			want:     false,
		},
		{
			name:     "nil required expertise never matches",
			required: nil,
			skills:   []string{"Go"},
			want:     false,
		},
		{
			name:     "empty required expertise never matches",
			required: strPtr(""),
			skills:   []string{"Go"},
			want:     false,
		},
		{
			name:     "empty viewer skill set never matches",
			required: strPtr("Go"),
			skills:   nil,
			want:     false,
		},
		{
			name:     "trailing comma token ignored against empty skill",
			required: strPtr("Go,"),
			skills:   []string{""},
			want:     false,
		},
		{
			name:     "only commas and spaces never match",
			required: strPtr(" , , "),
			skills:   []string{"Go", ""},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Matches(tt.required, NewSkillSet(tt.skills))
			if got != tt.want {
				t.Errorf("Matches(%v, %v) = %v, want %v", tt.required, tt.skills, got, tt.want)
			}
		})
	}
}

func TestNewSkillSet_DeduplicatesCaseInsensitively(t *testing.T) {
	set := NewSkillSet([]string{"Go", "go", " GO ", "React"})
	if len(set) != 2 {
		t.Errorf("expected 2 distinct skills, got %d", len(set))
	}
	if !set.Contains("gO") {
		t.Error("expected set to contain go")
	}
	if set.Contains("rust") {
		t.Error("did not expect set to contain rust")
	}
}

func TestMatchPosts(t *testing.T) {
	posts := []*models.Post{
		{ID: 1, RequiredExpertise: strPtr("Go, React")},
		{ID: 2, RequiredExpertise: strPtr("Java")},
		{ID: 3, RequiredExpertise: nil},
		{ID: 4, RequiredExpertise: strPtr("  react  ")},
	}

	matched := MatchPosts(posts, []string{"REACT"})
	if len(matched) != 2 {
		t.Fatalf("expected 2 matched posts, got %d", len(matched))
	}
	if matched[0].ID != 1 || matched[1].ID != 4 {
		t.Errorf("expected posts 1 and 4 in order, got %d and %d", matched[0].ID, matched[1].ID)
	}
}

func TestMatchPosts_NoSkillsReturnsEmpty(t *testing.T) {
	posts := []*models.Post{{ID: 1, RequiredExpertise: strPtr("Go")}}

	matched := MatchPosts(posts, nil)
	if matched == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(matched) != 0 {
		t.Errorf("expected no matches, got %d", len(matched))
	}
}
