// Package matching decides which posts are relevant to a viewer's declared
// skills. It is pure set logic over strings: a post matches when at least
// one of its comma-separated required-expertise tokens equals one of the
// viewer's skill names, compared case-insensitively after trimming.
package matching

import (
	"strings"

	"github.com/deniz/teamup/internal/app/models"
)

// SkillSet is a case-folded set of skill names
type SkillSet map[string]struct{}

// NewSkillSet builds a set from skill names, trimming whitespace, folding
// case and dropping empty entries. Duplicate names collapse into one entry.
func NewSkillSet(names []string) SkillSet {
	set := make(SkillSet, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}

// Contains reports whether the set holds the given name (case-insensitive)
func (s SkillSet) Contains(name string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Matches reports whether a post's required-expertise field overlaps the
// viewer's skills. An empty or absent required-expertise never matches;
// empty tokens from stray commas are ignored rather than matched against
// an empty skill name.
func Matches(requiredExpertise *string, viewerSkills SkillSet) bool {
	if requiredExpertise == nil || len(viewerSkills) == 0 {
		return false
	}

	for _, token := range strings.Split(*requiredExpertise, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if viewerSkills.Contains(token) {
			return true
		}
	}

	return false
}

// MatchPosts returns the subset of posts whose required expertise overlaps
// the viewer's skills, preserving input order. The result is always a fresh
// slice, never a view into the input.
func MatchPosts(posts []*models.Post, viewerSkillNames []string) []*models.Post {
	matched := make([]*models.Post, 0)
	skills := NewSkillSet(viewerSkillNames)
	if len(skills) == 0 {
		return matched
	}

	for _, post := range posts {
		if Matches(post.RequiredExpertise, skills) {
			matched = append(matched, post)
		}
	}

	return matched
}
