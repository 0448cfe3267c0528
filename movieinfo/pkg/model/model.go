package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeisonBorba/reactive-app/pkg/validate"
)

const dateLayout = "2006-01-02"

// Date is a calendar date serialized as an ISO-8601 date without a time
// component.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// MustParseDate is ParseDate that panics on error, for tests and fixtures.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.Format(dateLayout))), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	*d = Date{t}
	return nil
}

// MovieInfo defines the movie info record. ID is assigned by the repository
// on first create and never changes afterwards.
type MovieInfo struct {
	ID          string   `json:"movieInfoId,omitempty"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Cast        []string `json:"cast"`
	ReleaseDate Date     `json:"release_date"`
}

// Validate checks every field rule and reports all violations together,
// sorted and comma-joined.
func (m *MovieInfo) Validate() error {
	return validate.Check(
		validate.Rule{OK: m.Name != "", Message: "movieInfo.name must be present"},
		validate.Rule{OK: m.Year > 0, Message: "movieInfo.year must be a positive value"},
		validate.Rule{OK: castPresent(m.Cast), Message: "movieInfo.cast must be present"},
	)
}

func castPresent(cast []string) bool {
	if len(cast) == 0 {
		return false
	}
	for _, c := range cast {
		if c == "" {
			return false
		}
	}
	return true
}
