package models

import (
	"strconv"
	"strings"
	"time"

	"vivaham/internal/apperrors"
)

// AnyMotherTongue disables the mother tongue filter.
const AnyMotherTongue = "Any"

// SearchFilter lists every recognised search option. A nil field is absent.
type SearchFilter struct {
	Gender        *string
	AgeMin        *int
	AgeMax        *int
	MotherTongue  *string
	Religion      *string
	MaritalStatus *string
	Location      *string
}

// ParseSearchFilter builds a filter from query parameters. Empty values are
// treated as absent and unknown keys are never consulted.
func ParseSearchFilter(query func(key string) string) (SearchFilter, error) {
	var f SearchFilter
	fields := map[string]string{}

	optString := func(key string) *string {
		v := strings.TrimSpace(query(key))
		if v == "" {
			return nil
		}
		return &v
	}
	optInt := func(key string) *int {
		v := strings.TrimSpace(query(key))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			fields[key] = "must be a non-negative integer"
			return nil
		}
		return &n
	}

	f.Gender = optString("gender")
	f.AgeMin = optInt("ageMin")
	f.AgeMax = optInt("ageMax")
	f.MotherTongue = optString("motherTongue")
	f.Religion = optString("religion")
	f.MaritalStatus = optString("maritalStatus")
	f.Location = optString("location")

	if len(fields) > 0 {
		return SearchFilter{}, apperrors.Validation("Invalid search filters", fields)
	}
	return f, nil
}

// Matches reports whether u passes every present filter.
func (f SearchFilter) Matches(u *User, now time.Time) bool {
	if f.Gender != nil && u.Gender != *f.Gender {
		return false
	}
	// Age bounds apply only as a pair.
	if f.AgeMin != nil && f.AgeMax != nil {
		age, ok := AgeAt(u.DateOfBirth, now)
		if !ok || age < *f.AgeMin || age > *f.AgeMax {
			return false
		}
	}
	if f.MotherTongue != nil && *f.MotherTongue != AnyMotherTongue && u.MotherTongue != *f.MotherTongue {
		return false
	}
	if f.Religion != nil && u.Religion != *f.Religion {
		return false
	}
	if f.MaritalStatus != nil && u.MaritalStatus != *f.MaritalStatus {
		return false
	}
	if f.Location != nil && !strings.Contains(u.Location, *f.Location) {
		return false
	}
	return true
}
