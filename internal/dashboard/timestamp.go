package dashboard

import "time"

// timestampPlaceholder is shown when no snapshot timestamp is available.
const timestampPlaceholder = "--"

// jiraTimeLayout is the offset format Jira emits (no colon in the zone).
const jiraTimeLayout = "2006-01-02T15:04:05.000-0700"

// TimeFormatter turns snapshot timestamps into display strings. Layout and
// location are explicit so output does not depend on the host environment.
type TimeFormatter struct {
	layout   string
	location *time.Location
}

// NewTimeFormatter builds a formatter for the given Go time layout and
// IANA time zone name. An unknown zone falls back to UTC.
func NewTimeFormatter(layout, timezone string) *TimeFormatter {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return &TimeFormatter{layout: layout, location: loc}
}

// Format renders an ISO-8601 timestamp for display. Absent input yields
// the placeholder; anything unparseable is returned untouched rather than
// failing the render.
func (f *TimeFormatter) Format(value string) string {
	if value == "" {
		return timestampPlaceholder
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t, err = time.Parse(jiraTimeLayout, value)
	}
	if err != nil {
		return value
	}

	return t.In(f.location).Format(f.layout)
}
