package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/dmitrijs2005/gophwallet/internal/models"
)

const defaultWidth = 100

// lineWidth is a seam for tests.
var lineWidth = terminalWidth

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

func passLine(p models.LocalizedPassWithTags) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-12s %s", shortID(p.Pass.ID), p.Pass.Type, p.Pass.Description)
	if p.Pass.OrganizationName != "" {
		fmt.Fprintf(&b, " (%s)", p.Pass.OrganizationName)
	}
	if d, ok := p.Pass.FirstRelevantDate(); ok {
		fmt.Fprintf(&b, " @ %s", d.Format(time.DateTime))
	}
	if len(p.Tags) > 0 {
		names := make([]string, len(p.Tags))
		for i, t := range p.Tags {
			names[i] = "#" + t.Name
		}
		fmt.Fprintf(&b, " %s", strings.Join(names, " "))
	}
	if p.Pass.Voided {
		b.WriteString(" [voided]")
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12]
}

// formatColor renders an ARGB tag color as #rrggbb.
func formatColor(c int32) string {
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
}

// parseColor reads #rrggbb into an opaque ARGB value.
func parseColor(s string) (int32, error) {
	var rgb uint32
	if _, err := fmt.Sscanf(strings.TrimPrefix(s, "#"), "%06x", &rgb); err != nil || len(strings.TrimPrefix(s, "#")) != 6 {
		return 0, fmt.Errorf("invalid color %q, want #rrggbb", s)
	}
	return int32(0xFF000000 | rgb), nil
}
