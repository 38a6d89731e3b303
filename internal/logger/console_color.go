package logger

import (
	"fmt"

	"github.com/fatih/color"
)

// colorScheme defines consistent colors for summary metrics.
// Green: matches
// Red: listing failures
// Yellow: warnings
// Cyan: labels
type colorScheme struct {
	enabled bool
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

// newColorScheme creates the standard color scheme. When enabled is false
// every color renders plain text.
func newColorScheme(enabled bool) *colorScheme {
	s := &colorScheme{
		enabled: enabled,
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
	for _, c := range []*color.Color{s.success, s.fail, s.warn, s.label, s.value} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// metric formats "label: value" with a cyan label and the given value color.
func (s *colorScheme) metric(label string, value interface{}, valueColor *color.Color) string {
	return fmt.Sprintf("%s: %s", s.label.Sprint(label), valueColor.Sprintf("%v", value))
}
