package models

import "time"

// User is a registered member and their matrimonial profile.
type User struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Username         string    `json:"username" gorm:"uniqueIndex;type:varchar(100);not null"`
	Password         string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialised
	Email            string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Phone            string    `json:"phone" gorm:"not null"`
	FirstName        string    `json:"firstName" gorm:"not null"`
	LastName         string    `json:"lastName" gorm:"not null"`
	Gender           string    `json:"gender" gorm:"index;not null"`
	DateOfBirth      string    `json:"dateOfBirth" gorm:"not null"`
	MotherTongue     string    `json:"motherTongue" gorm:"not null"`
	Religion         string    `json:"religion" gorm:"not null"`
	Caste            *string   `json:"caste"`
	MaritalStatus    string    `json:"maritalStatus" gorm:"not null"`
	Height           string    `json:"height" gorm:"not null"`
	Education        string    `json:"education" gorm:"not null"`
	Profession       string    `json:"profession" gorm:"not null"`
	Location         string    `json:"location" gorm:"not null"`
	About            *string   `json:"about"`
	ProfilePic       *string   `json:"profilePic"`
	ProfileCreatedAt time.Time `json:"profileCreatedAt"`
	LastActive       time.Time `json:"lastActive"`
}

// DisplayName is the name shown to other members.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// UserPatch carries a partial profile update. Nil fields keep their prior
// value; the nullable ones are cleared by an explicit null.
type UserPatch struct {
	Username      *string  `json:"username" validate:"omitempty,min=3,max=100"`
	Email         *string  `json:"email" validate:"omitempty,email"`
	Phone         *string  `json:"phone" validate:"omitempty,min=1"`
	FirstName     *string  `json:"firstName" validate:"omitempty,min=1"`
	LastName      *string  `json:"lastName" validate:"omitempty,min=1"`
	Gender        *string  `json:"gender" validate:"omitempty,min=1"`
	DateOfBirth   *string  `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	MotherTongue  *string  `json:"motherTongue" validate:"omitempty,min=1"`
	Religion      *string  `json:"religion" validate:"omitempty,min=1"`
	Caste         Nullable `json:"caste"`
	MaritalStatus *string  `json:"maritalStatus" validate:"omitempty,min=1"`
	Height        *string  `json:"height" validate:"omitempty,min=1"`
	Education     *string  `json:"education" validate:"omitempty,min=1"`
	Profession    *string  `json:"profession" validate:"omitempty,min=1"`
	Location      *string  `json:"location" validate:"omitempty,min=1"`
	About         Nullable `json:"about"`
	ProfilePic    Nullable `json:"profilePic"`
}

// Apply merges the patch over u. Id, password and timestamps are never touched.
func (p UserPatch) Apply(u *User) {
	setString(&u.Username, p.Username)
	setString(&u.Email, p.Email)
	setString(&u.Phone, p.Phone)
	setString(&u.FirstName, p.FirstName)
	setString(&u.LastName, p.LastName)
	setString(&u.Gender, p.Gender)
	setString(&u.DateOfBirth, p.DateOfBirth)
	setString(&u.MotherTongue, p.MotherTongue)
	setString(&u.Religion, p.Religion)
	setString(&u.MaritalStatus, p.MaritalStatus)
	setString(&u.Height, p.Height)
	setString(&u.Education, p.Education)
	setString(&u.Profession, p.Profession)
	setString(&u.Location, p.Location)
	setNullable(&u.Caste, p.Caste)
	setNullable(&u.About, p.About)
	setNullable(&u.ProfilePic, p.ProfilePic)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
