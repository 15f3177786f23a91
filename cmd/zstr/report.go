package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zerustech/string/codespace"
	"github.com/zerustech/string/inspect"
)

// ---------------------------------------------------------------------------
// Terminal rendering of reports and reference tables
// ---------------------------------------------------------------------------

// renderReport formats an inspection report for terminal output.
func renderReport(r inspect.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s  %s", r.Notation, r.Category)
	if r.PlaneName != "" {
		fmt.Fprintf(&sb, "  plane %d (%s, %s)", r.Plane, r.PlaneName, r.PlaneAlias)
	} else {
		fmt.Fprintf(&sb, "  plane %d", r.Plane)
	}
	if r.PrivateUse {
		sb.WriteString("  private use")
	}
	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "  UTF-8:  %s\n", r.UTF8)
	if r.UTF16 != "" {
		fmt.Fprintf(&sb, "  UTF-16: %s\n", r.UTF16)
	}
	return sb.String()
}

// renderReportJSON formats a report as indented JSON.
func renderReportJSON(r inspect.Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// renderCounts formats the codespace counts.
func renderCounts() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Code points:      %7d\n", codespace.NumberOfCodePoints())
	fmt.Fprintf(&sb, "High surrogates:  %7d\n", codespace.NumberOfHighSurrogateCodePoints())
	fmt.Fprintf(&sb, "Low surrogates:   %7d\n", codespace.NumberOfLowSurrogateCodePoints())
	fmt.Fprintf(&sb, "Valid:            %7d\n", codespace.NumberOfValidCodePoints())
	fmt.Fprintf(&sb, "Noncharacters:    %7d\n", codespace.NumberOfNoncharacterCodePoints())
	fmt.Fprintf(&sb, "Characters:       %7d\n", codespace.NumberOfCharacterCodePoints())
	return sb.String()
}

// renderPlanes formats the plane table, one plane per line. Unnamed planes
// print bounds only.
func renderPlanes() string {
	var sb strings.Builder
	for _, p := range codespace.Planes() {
		fmt.Fprintf(&sb, "%2d  %s..%s", p.Index, inspect.Notation(p.Low), inspect.Notation(p.High))
		if p.Name != "" {
			fmt.Fprintf(&sb, "  %s (%s)", p.Name, p.Alias)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// renderNoncharacters formats the noncharacter list, one per line.
func renderNoncharacters() string {
	var sb strings.Builder
	for _, cp := range codespace.Noncharacters() {
		sb.WriteString(inspect.Notation(cp))
		sb.WriteByte('\n')
	}
	return sb.String()
}
