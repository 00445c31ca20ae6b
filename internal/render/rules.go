package render

import "strings"

// Rule maps text containing Pattern to Value.
type Rule struct {
	Pattern string
	Value   string
}

// Rules is an ordered lookup list; the first matching rule wins.
type Rules []Rule

// Match returns the value of the first rule whose pattern occurs in text,
// ignoring case.
func (r Rules) Match(text string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, rule := range r {
		if strings.Contains(lowered, strings.ToLower(rule.Pattern)) {
			return rule.Value, true
		}
	}
	return "", false
}

const (
	ansiReset   = "\x1b[0m"
	ansiBoldRed = "\x1b[1;31m"
	ansiRed     = "\x1b[31m"
	ansiYellow  = "\x1b[33m"
	ansiCyan    = "\x1b[36m"
)

// DefaultSeverityColors colors headlines by the alert's severity.
func DefaultSeverityColors() Rules {
	return Rules{
		{Pattern: "extreme", Value: ansiBoldRed},
		{Pattern: "severe", Value: ansiRed},
		{Pattern: "moderate", Value: ansiYellow},
		{Pattern: "minor", Value: ansiCyan},
	}
}

// DefaultEventIcons picks an icon from the event name. More specific patterns
// come first.
func DefaultEventIcons() Rules {
	return Rules{
		{Pattern: "tornado", Value: "🌪"},
		{Pattern: "hurricane", Value: "🌀"},
		{Pattern: "tropical", Value: "🌀"},
		{Pattern: "thunderstorm", Value: "⛈"},
		{Pattern: "flood", Value: "🌊"},
		{Pattern: "tsunami", Value: "🌊"},
		{Pattern: "surf", Value: "🌊"},
		{Pattern: "blizzard", Value: "❄"},
		{Pattern: "winter", Value: "❄"},
		{Pattern: "snow", Value: "❄"},
		{Pattern: "ice", Value: "❄"},
		{Pattern: "freeze", Value: "❄"},
		{Pattern: "frost", Value: "❄"},
		{Pattern: "red flag", Value: "🔥"},
		{Pattern: "fire", Value: "🔥"},
		{Pattern: "heat", Value: "🔥"},
		{Pattern: "wind", Value: "💨"},
		{Pattern: "gale", Value: "💨"},
		{Pattern: "fog", Value: "🌫"},
		{Pattern: "dust", Value: "🌫"},
		{Pattern: "marine", Value: "⚓"},
		{Pattern: "craft", Value: "⚓"},
	}
}
