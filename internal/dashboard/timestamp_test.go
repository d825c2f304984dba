package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_TimeFormatter_AbsentInput(t *testing.T) {
	t.Parallel()

	f := NewTimeFormatter("02/01/2006 15:04", "UTC")
	assert.Equal(t, "--", f.Format(""))
}

func Test_TimeFormatter_RFC3339(t *testing.T) {
	t.Parallel()

	f := NewTimeFormatter("02/01/2006 15:04", "UTC")
	assert.Equal(t, "15/03/2026 09:30", f.Format("2026-03-15T09:30:00Z"))
}

func Test_TimeFormatter_JiraOffsetFormat(t *testing.T) {
	t.Parallel()

	// Jira emits fractional seconds and a zone offset without a colon.
	f := NewTimeFormatter("02/01/2006 15:04", "UTC")
	assert.Equal(t, "15/03/2026 12:30", f.Format("2026-03-15T09:30:00.000-0300"))
}

func Test_TimeFormatter_ConvertsToConfiguredZone(t *testing.T) {
	t.Parallel()

	f := NewTimeFormatter("02/01/2006 15:04", "America/Sao_Paulo")
	assert.Equal(t, "15/03/2026 06:30", f.Format("2026-03-15T09:30:00Z"))
}

func Test_TimeFormatter_UnparseableReturnsRaw(t *testing.T) {
	t.Parallel()

	f := NewTimeFormatter("02/01/2006 15:04", "UTC")
	assert.Equal(t, "not-a-date", f.Format("not-a-date"))
}

func Test_TimeFormatter_UnknownZoneFallsBackToUTC(t *testing.T) {
	t.Parallel()

	f := NewTimeFormatter("02/01/2006 15:04", "Mars/Olympus_Mons")
	assert.Equal(t, "15/03/2026 09:30", f.Format("2026-03-15T09:30:00Z"))
}
