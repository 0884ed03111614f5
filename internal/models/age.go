package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of dateOfBirth and marriageDate.
const DateLayout = "2006-01-02"

// ParseDate accepts a calendar date or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// AgeAt is the canonical age of someone born on dateOfBirth, as seen at now.
// Only years are compared: a member born in 1995 is 30 for all of 2025.
func AgeAt(dateOfBirth string, now time.Time) (int, bool) {
	dob, err := ParseDate(dateOfBirth)
	if err != nil {
		return 0, false
	}
	return now.Year() - dob.Year(), true
}
