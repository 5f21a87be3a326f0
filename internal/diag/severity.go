package diag

import "fmt"

// Severity defines the importance of an issue.
type Severity uint8

const (
	// SevInfo is for informational issues.
	SevInfo Severity = iota
	// SevWarning is for warning issues.
	SevWarning
	SevError
)

// String returns the string representation of Severity.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// MarshalJSON encodes the severity as its lowercase name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON decodes a lowercase severity name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"info"`:
		*s = SevInfo
	case `"warning"`:
		*s = SevWarning
	case `"error"`:
		*s = SevError
	default:
		return fmt.Errorf("unknown severity %s", data)
	}
	return nil
}

// Category groups issues by the design concern they touch.
type Category uint8

const (
	CatLayout Category = iota + 1
	CatSpacing
	CatHierarchy
	CatAccessibility
	CatPerformance
)

// Categories lists all known categories in display order.
var Categories = []Category{
	CatLayout, CatSpacing, CatHierarchy, CatAccessibility, CatPerformance,
}

// String returns the string representation of Category.
func (c Category) String() string {
	switch c {
	case CatLayout:
		return "layout"
	case CatSpacing:
		return "spacing"
	case CatHierarchy:
		return "hierarchy"
	case CatAccessibility:
		return "accessibility"
	case CatPerformance:
		return "performance"
	}
	return "unknown"
}

// MarshalJSON encodes the category as its lowercase name.
func (c Category) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON decodes a lowercase category name.
func (c *Category) UnmarshalJSON(data []byte) error {
	for _, known := range Categories {
		if string(data) == `"`+known.String()+`"` {
			*c = known
			return nil
		}
	}
	return fmt.Errorf("unknown category %s", data)
}
