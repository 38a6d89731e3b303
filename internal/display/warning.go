package display

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/davfind/internal/config"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Items      []string // Related identifiers or paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	for i, item := range w.Items {
		fmt.Fprintf(&b, "      %d. %s\n", i+1, item)
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion: ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// String renders the warning on one line for log files.
func (w Warning) String() string {
	s := w.Title
	if w.Message != "" {
		s += ": " + w.Message
	}
	if len(w.Items) > 0 {
		s += " (" + strings.Join(w.Items, ", ") + ")"
	}
	return s
}

// CheckSearch returns warnings for a validated config, its connection and
// the identifier list it will search.
func CheckSearch(cfg *config.Config, conn *config.Connection, ids []string) []Warning {
	var warnings []Warning

	if len(ids) == 0 {
		message := "Nothing will be searched; the output will be empty."
		if cfg.Header {
			message = "Nothing will be searched; the output will contain only the header."
		}
		warnings = append(warnings, Warning{
			Title:      "Identifier list is empty",
			Message:    message,
			Suggestion: fmt.Sprintf("Add one identifier per line to %s", cfg.Identifiers),
		})
	}

	if dups := duplicates(ids); len(dups) > 0 {
		warnings = append(warnings, Warning{
			Title:   "Duplicate identifiers",
			Message: "Each occurrence is searched again and its matches are written again.",
			Items:   dups,
		})
	}

	if len(cfg.Exclude) == 0 {
		warnings = append(warnings, Warning{
			Title:   "No exclude patterns",
			Message: "Files of every content type will be reported when their names match.",
		})
	}

	if conn != nil && conn.Login != "" {
		if u, err := url.Parse(conn.Root); err == nil && u.Scheme == "http" {
			warnings = append(warnings, Warning{
				Title:      "Credentials sent without TLS",
				Message:    fmt.Sprintf("%s uses plain HTTP.", conn.Root),
				Suggestion: "Use an https:// Root endpoint",
			})
		}
	}

	if cfg.Timeout == 0 {
		warnings = append(warnings, Warning{
			Title:   "No request timeout",
			Message: "A stalled server will block the search indefinitely.",
		})
	}

	return warnings
}

// duplicates returns identifiers that appear more than once, in first-seen order.
func duplicates(ids []string) []string {
	seen := make(map[string]int, len(ids))
	var dups []string
	for _, id := range ids {
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}
