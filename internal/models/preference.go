package models

import (
	"fmt"

	"vivaham/internal/apperrors"
)

// UserPreference describes the partner a member is looking for.
type UserPreference struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	UserID        uint    `json:"userId" gorm:"uniqueIndex;not null"`
	AgeMin        int     `json:"ageMin" gorm:"not null"`
	AgeMax        int     `json:"ageMax" gorm:"not null"`
	HeightMin     *string `json:"heightMin"`
	HeightMax     *string `json:"heightMax"`
	MaritalStatus *string `json:"maritalStatus"`
	MotherTongue  *string `json:"motherTongue"`
	Religion      *string `json:"religion"`
	Caste         *string `json:"caste"`
	Education     *string `json:"education"`
	Profession    *string `json:"profession"`
	Location      *string `json:"location"`
}

// CheckAgeRange enforces ageMin <= ageMax.
func (p *UserPreference) CheckAgeRange() error {
	if p.AgeMin > p.AgeMax {
		return apperrors.Validation("Validation failed", map[string]string{
			"ageMin": fmt.Sprintf("must not exceed ageMax (%d)", p.AgeMax),
		})
	}
	return nil
}

// PreferencePatch carries a partial preference update. UserID is immutable
// and an explicit null clears an optional field.
type PreferencePatch struct {
	AgeMin        *int     `json:"ageMin" validate:"omitempty,min=18,max=120"`
	AgeMax        *int     `json:"ageMax" validate:"omitempty,min=18,max=120"`
	HeightMin     Nullable `json:"heightMin"`
	HeightMax     Nullable `json:"heightMax"`
	MaritalStatus Nullable `json:"maritalStatus"`
	MotherTongue  Nullable `json:"motherTongue"`
	Religion      Nullable `json:"religion"`
	Caste         Nullable `json:"caste"`
	Education     Nullable `json:"education"`
	Profession    Nullable `json:"profession"`
	Location      Nullable `json:"location"`
}

// Apply merges the patch over p.
func (patch PreferencePatch) Apply(p *UserPreference) {
	if patch.AgeMin != nil {
		p.AgeMin = *patch.AgeMin
	}
	if patch.AgeMax != nil {
		p.AgeMax = *patch.AgeMax
	}
	setNullable(&p.HeightMin, patch.HeightMin)
	setNullable(&p.HeightMax, patch.HeightMax)
	setNullable(&p.MaritalStatus, patch.MaritalStatus)
	setNullable(&p.MotherTongue, patch.MotherTongue)
	setNullable(&p.Religion, patch.Religion)
	setNullable(&p.Caste, patch.Caste)
	setNullable(&p.Education, patch.Education)
	setNullable(&p.Profession, patch.Profession)
	setNullable(&p.Location, patch.Location)
}
