package validation

import (
	"strings"
	"testing"

	"github.com/deniz/teamup/internal/app/models"
)

func TestValidateCapacity(t *testing.T) {
	for _, valid := range []int{1, 10, 100} {
		if err := ValidateCapacity(valid); err != nil {
			t.Errorf("capacity %d rejected: %v", valid, err)
		}
	}
	for _, invalid := range []int{0, -5, 101} {
		if err := ValidateCapacity(invalid); err == nil {
			t.Errorf("capacity %d accepted", invalid)
		}
	}
}

func TestValidateSkillsRejectsCaseInsensitiveDuplicates(t *testing.T) {
	skills := []*models.Skill{
		{Name: "Go", Category: "Backend"},
		{Name: "go", Category: "Backend"},
	}
	if err := ValidateSkills(skills); err == nil {
		t.Error("duplicate skill names accepted")
	}
}

func TestValidateSkillsRejectsBlankName(t *testing.T) {
	skills := []*models.Skill{{Name: "   "}}
	if err := ValidateSkills(skills); err == nil {
		t.Error("blank skill name accepted")
	}
}

func TestValidateSkillsRejectsOverlongFields(t *testing.T) {
	long := strings.Repeat("x", SkillNameMaxLength+1)
	if err := ValidateSkills([]*models.Skill{{Name: long}}); err == nil {
		t.Error("overlong skill name accepted")
	}
}

func TestValidateSkillsAcceptsValidList(t *testing.T) {
	skills := []*models.Skill{
		{Name: "Go", Category: "Backend", Description: "services"},
		{Name: "PostgreSQL", Category: "Backend"},
		{Name: "React", Category: "Frontend"},
	}
	if err := ValidateSkills(skills); err != nil {
		t.Errorf("valid skill list rejected: %v", err)
	}
}
