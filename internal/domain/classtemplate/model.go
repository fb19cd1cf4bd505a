package classtemplate

import (
	"errors"
	"strings"
)

// Category constants
const (
	CategoryYoga     = "yoga"
	CategoryPilates  = "pilates"
	CategoryStrength = "strength"
	CategoryHIIT     = "hiit"
)

// ValidCategories contains all valid category values.
var ValidCategories = []string{CategoryYoga, CategoryPilates, CategoryStrength, CategoryHIIT}

// Color theme constants
const (
	ColorRose   = "rose"
	ColorIndigo = "indigo"
	ColorAmber  = "amber"
	ColorTeal   = "teal"
	ColorSlate  = "slate"
)

// ColorHex maps color theme names to their hex values for the calendar grid.
var ColorHex = map[string]string{
	ColorRose:   "#f43f5e",
	ColorIndigo: "#6366f1",
	ColorAmber:  "#f59e0b",
	ColorTeal:   "#14b8a6",
	ColorSlate:  "#64748b",
}

// Domain errors
var (
	ErrEmptyName       = errors.New("class name cannot be empty")
	ErrEmptyTeacher    = errors.New("teacher name cannot be empty")
	ErrInvalidCategory = errors.New("category must be 'yoga', 'pilates', 'strength', or 'hiit'")
	ErrInvalidColor    = errors.New("color theme is not in the palette")
)

// ClassTemplate is the static descriptor a scheduled session points at.
// Many sessions share one template.
type ClassTemplate struct {
	ID          string
	Name        string
	TeacherName string
	Category    string
	ColorTheme  string
}

// Validate checks if the ClassTemplate has valid data.
// PRE: ClassTemplate struct is populated
// POST: Returns nil if valid, error otherwise
func (c *ClassTemplate) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.TeacherName) == "" {
		return ErrEmptyTeacher
	}
	if !isValidCategory(c.Category) {
		return ErrInvalidCategory
	}
	if _, ok := ColorHex[c.ColorTheme]; !ok {
		return ErrInvalidColor
	}
	return nil
}

func isValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}
