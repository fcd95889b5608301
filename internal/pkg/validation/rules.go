package validation

import (
	"strings"

	"github.com/deniz/teamup/internal/app/models"
	"github.com/deniz/teamup/internal/pkg/apperrors"
)

// Field limits shared by DTO binding and service-level checks
var (
	TitleMaxLength      = 200
	SkillNameMaxLength  = 100
	SkillCategoryMax    = 100
	SkillDescriptionMax = 500
	PasswordMinLength   = 8
)

// ValidateCapacity checks a post's participant capacity against the allowed range
func ValidateCapacity(maxParticipants int) error {
	if maxParticipants < models.MinParticipants || maxParticipants > models.MaxParticipantLimit {
		return apperrors.NewValidationError("maxParticipants must be between 1 and 100")
	}
	return nil
}

// ValidateSkills checks a replacement skill list at the write boundary.
// Names must be non-empty after trimming and unique case-insensitively;
// the stored list keeps the caller's order.
func ValidateSkills(skills []*models.Skill) error {
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		name := strings.TrimSpace(skill.Name)
		if name == "" {
			return apperrors.NewValidationError("skill name must not be empty")
		}
		if len(name) > SkillNameMaxLength {
			return apperrors.NewValidationError("skill name too long")
		}
		if len(skill.Category) > SkillCategoryMax {
			return apperrors.NewValidationError("skill category too long")
		}
		if len(skill.Description) > SkillDescriptionMax {
			return apperrors.NewValidationError("skill description too long")
		}

		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return apperrors.NewValidationError("duplicate skill name: " + name)
		}
		seen[key] = struct{}{}
	}
	return nil
}
