package domain

import (
	"fmt"
	"strings"
)

// Position is where the overlay is placed on the rendered page
type Position string

const (
	PositionTopLeft      Position = "top-left"
	PositionTopRight     Position = "top-right"
	PositionTopCenter    Position = "top-center"
	PositionBottomLeft   Position = "bottom-left"
	PositionBottomRight  Position = "bottom-right"
	PositionBottomCenter Position = "bottom-center"
	PositionCenter       Position = "center"
)

// DefaultPosition is used when a record is created without a position
const DefaultPosition = PositionTopRight

// Positions lists every supported placement in display order
var Positions = []Position{
	PositionTopLeft,
	PositionTopRight,
	PositionTopCenter,
	PositionBottomLeft,
	PositionBottomRight,
	PositionBottomCenter,
	PositionCenter,
}

// Valid reports whether p is one of the supported placements
func (p Position) Valid() bool {
	for _, v := range Positions {
		if p == v {
			return true
		}
	}
	return false
}

// ParsePosition parses a placement tag, accepting underscores and any case
func ParsePosition(s string) (Position, error) {
	if s == "" {
		return DefaultPosition, nil
	}

	p := Position(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if !p.Valid() {
		return "", &ValidationError{Field: "position", Reason: fmt.Sprintf("unknown position %q", s)}
	}

	return p, nil
}

// SeasonalImage is one configured overlay with its recurring active window
type SeasonalImage struct {
	ID          int64    `json:"id" yaml:"-"`
	StartMonth  int      `json:"start_month" yaml:"start_month"`
	StartDay    int      `json:"start_day" yaml:"start_day"`
	EndMonth    int      `json:"end_month" yaml:"end_month"`
	EndDay      int      `json:"end_day" yaml:"end_day"`
	ImagePath   string   `json:"image_path" yaml:"image_path"`
	Enabled     bool     `json:"enabled" yaml:"enabled"`
	Position    Position `json:"position" yaml:"position"`
	Priority    int      `json:"priority" yaml:"priority"`
	Description string   `json:"description" yaml:"description,omitempty"`
}

// NewSeasonalImage returns a record populated with the same defaults the
// admin form starts from
func NewSeasonalImage() SeasonalImage {
	return SeasonalImage{
		StartMonth: 1,
		StartDay:   1,
		EndMonth:   1,
		EndDay:     1,
		Enabled:    true,
		Position:   DefaultPosition,
	}
}

// Matches reports whether month/day falls inside the record's window
func (img SeasonalImage) Matches(month, day int) bool {
	return InRange(month, day, img.StartMonth, img.StartDay, img.EndMonth, img.EndDay)
}

// Wraps reports whether the window crosses the December to January boundary
func (img SeasonalImage) Wraps() bool {
	return EncodeDate(img.StartMonth, img.StartDay) > EncodeDate(img.EndMonth, img.EndDay)
}

// StartDate returns the window start formatted as MM-DD
func (img SeasonalImage) StartDate() string {
	return FormatDate(img.StartMonth, img.StartDay)
}

// EndDate returns the window end formatted as MM-DD
func (img SeasonalImage) EndDate() string {
	return FormatDate(img.EndMonth, img.EndDay)
}

// Validate checks the record before it is written to the store.
// Enabled and disabled records are held to the same rules.
func (img SeasonalImage) Validate() error {
	if !ValidateDate(img.StartMonth, img.StartDay) {
		return &ValidationError{Field: "start", Reason: fmt.Sprintf("invalid start date %s", img.StartDate())}
	}
	if !ValidateDate(img.EndMonth, img.EndDay) {
		return &ValidationError{Field: "end", Reason: fmt.Sprintf("invalid end date %s", img.EndDate())}
	}
	if strings.TrimSpace(img.ImagePath) == "" {
		return &ValidationError{Field: "image_path", Reason: "image path is required"}
	}
	if !img.Position.Valid() {
		return &ValidationError{Field: "position", Reason: fmt.Sprintf("unknown position %q", img.Position)}
	}
	return nil
}

// ImageUpdate is a partial update; nil fields are left untouched
type ImageUpdate struct {
	StartMonth  *int      `json:"start_month,omitempty"`
	StartDay    *int      `json:"start_day,omitempty"`
	EndMonth    *int      `json:"end_month,omitempty"`
	EndDay      *int      `json:"end_day,omitempty"`
	ImagePath   *string   `json:"image_path,omitempty"`
	Enabled     *bool     `json:"enabled,omitempty"`
	Position    *Position `json:"position,omitempty"`
	Priority    *int      `json:"priority,omitempty"`
	Description *string   `json:"description,omitempty"`
}

// Empty reports whether the update would change nothing
func (u ImageUpdate) Empty() bool {
	return u.StartMonth == nil && u.StartDay == nil && u.EndMonth == nil && u.EndDay == nil &&
		u.ImagePath == nil && u.Enabled == nil && u.Position == nil && u.Priority == nil &&
		u.Description == nil
}

// Apply copies every set field onto img
func (u ImageUpdate) Apply(img *SeasonalImage) {
	if u.StartMonth != nil {
		img.StartMonth = *u.StartMonth
	}
	if u.StartDay != nil {
		img.StartDay = *u.StartDay
	}
	if u.EndMonth != nil {
		img.EndMonth = *u.EndMonth
	}
	if u.EndDay != nil {
		img.EndDay = *u.EndDay
	}
	if u.ImagePath != nil {
		img.ImagePath = *u.ImagePath
	}
	if u.Enabled != nil {
		img.Enabled = *u.Enabled
	}
	if u.Position != nil {
		img.Position = *u.Position
	}
	if u.Priority != nil {
		img.Priority = *u.Priority
	}
	if u.Description != nil {
		img.Description = *u.Description
	}
}

// ActiveImage is the part of a record exposed to the page renderer
type ActiveImage struct {
	URL         string   `json:"url"`
	ImagePath   string   `json:"image_path"`
	Position    Position `json:"position"`
	Description string   `json:"description"`
}
