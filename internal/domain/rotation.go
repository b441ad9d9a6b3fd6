package domain

import (
	"fmt"
	"regexp"
	"time"
)

// DateKeyLayout is the wire and storage format for rotation date keys.
const DateKeyLayout = "2006-01-02"

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DailySelection records the one edit designated "of the day" for a calendar
// date. At most one selection ever exists per date key, and once written it
// is never reassigned. EditID is a weak reference: if the edit is later
// deleted the date stays spent and resolution fails.
type DailySelection struct {
	Date      string    `json:"date"` // YYYY-MM-DD in the reference timezone
	EditID    string    `json:"edit_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DateKey formats t as a rotation date key in the given reference timezone.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateKeyLayout)
}

// ValidDateKey reports whether key is a well-formed YYYY-MM-DD date.
func ValidDateKey(key string) bool {
	if !dateKeyPattern.MatchString(key) {
		return false
	}
	_, err := time.Parse(DateKeyLayout, key)
	return err == nil
}

// ParseDateKey parses a date key, erroring on malformed input.
func ParseDateKey(key string) (time.Time, error) {
	if !dateKeyPattern.MatchString(key) {
		return time.Time{}, fmt.Errorf("malformed date key %q", key)
	}
	return time.Parse(DateKeyLayout, key)
}
