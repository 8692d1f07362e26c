// Package fruit defines the domain model: a fruit identified by name and the
// season it belongs to.
package fruit

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSeason is returned when a string does not name any Season.
var ErrUnknownSeason = errors.New("fruits: unknown season")

// Season is the closed set of seasons a fruit can belong to.
// The zero value means the season is not set.
type Season string

const (
	Spring Season = "SPRING"
	Summer Season = "SUMMER"
	Fall   Season = "FALL"
	Winter Season = "WINTER"
)

var displayNames = map[Season]string{
	Spring: "Spring",
	Summer: "Summer",
	Fall:   "Fall",
	Winter: "Winter",
}

// Seasons returns every season in declaration order.
func Seasons() []Season {
	return []Season{Spring, Summer, Fall, Winter}
}

// ParseSeason returns the season whose member name is exactly s.
func ParseSeason(s string) (Season, error) {
	season := Season(s)
	if !season.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSeason, s)
	}
	return season, nil
}

// ParseSeasonFold is like ParseSeason but ignores the case of s.
func ParseSeasonFold(s string) (Season, error) {
	return ParseSeason(strings.ToUpper(s))
}

// Valid reports whether s is one of the four seasons.
func (s Season) Valid() bool {
	_, ok := displayNames[s]
	return ok
}

// String returns the member name, e.g. "FALL".
func (s Season) String() string {
	return string(s)
}

// DisplayName returns the human readable label, e.g. "Fall".
func (s Season) DisplayName() string {
	return displayNames[s]
}

// UnmarshalJSON accepts only exact member names. An empty string or null
// leaves the season unset.
func (s *Season) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || *raw == "" {
		*s = ""
		return nil
	}
	season, err := ParseSeason(*raw)
	if err != nil {
		return err
	}
	*s = season
	return nil
}

// Fruit is identified by its name; the season is an attribute that can be
// changed without creating a new identity.
type Fruit struct {
	Name   string `json:"name,omitempty"`
	Season Season `json:"type,omitempty"`
}

// New returns a fruit with both fields set.
func New(name string, season Season) Fruit {
	return Fruit{Name: name, Season: season}
}

// Equal reports whether f and other are the same fruit. Only names are compared.
func (f Fruit) Equal(other Fruit) bool {
	return f.Name == other.Name
}

// Key is the identity of f, suitable as a map key.
func (f Fruit) Key() string {
	return f.Name
}

// IsZero reports whether f is the empty fruit used to represent a missing record.
func (f Fruit) IsZero() bool {
	return f.Name == "" && f.Season == ""
}

// Contains reports whether fruits holds a fruit equal to f.
func Contains(fruits []Fruit, f Fruit) bool {
	for _, candidate := range fruits {
		if candidate.Equal(f) {
			return true
		}
	}
	return false
}
