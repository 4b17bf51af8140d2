package intakekit

import "strings"

// Icon is a display glyph for a file type
type Icon string

// Icons shown for each file category
const (
	IconImage        Icon = "📸"
	IconVideo        Icon = "🎥"
	IconAudio        Icon = "🎵"
	IconPDF          Icon = "📕"
	IconDocument     Icon = "📝"
	IconSpreadsheet  Icon = "📊"
	IconPresentation Icon = "📽️"
	IconArchive      Icon = "🗜️"
	IconDefault      Icon = "🍽️"
)

type iconRule struct {
	icon     Icon
	prefix   string
	contains []string
}

// Rules are checked in order. Spreadsheet and presentation come before
// document because OOXML types all contain "officedocument".
var iconRules = []iconRule{
	{icon: IconImage, prefix: "image/"},
	{icon: IconVideo, prefix: "video/"},
	{icon: IconAudio, prefix: "audio/"},
	{icon: IconPDF, contains: []string{"pdf"}},
	{icon: IconSpreadsheet, contains: []string{"excel", "spreadsheet"}},
	{icon: IconPresentation, contains: []string{"powerpoint", "presentation"}},
	{icon: IconDocument, contains: []string{"word", "document"}},
	{icon: IconArchive, contains: []string{"zip", "archive"}},
}

// IconFor maps a MIME type to a display icon. Unknown or empty types get
// IconDefault.
func IconFor(mimeType string) Icon {
	t := strings.ToLower(strings.TrimSpace(mimeType))
	if t == "" {
		return IconDefault
	}

	for _, rule := range iconRules {
		if rule.prefix != "" && strings.HasPrefix(t, rule.prefix) {
			return rule.icon
		}
		for _, s := range rule.contains {
			if strings.Contains(t, s) {
				return rule.icon
			}
		}
	}
	return IconDefault
}

// String implements fmt.Stringer
func (i Icon) String() string {
	return string(i)
}
