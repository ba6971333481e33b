package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var bannerStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	Padding(0, 1)

// Banner draws lines inside a bordered box.
func Banner(lines ...string) string {
	return bannerStyle.Render(strings.Join(lines, "\n"))
}
