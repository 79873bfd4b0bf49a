package cachekey_test

import (
	"testing"

	"go-vacation/internal/shared/cachekey"

	"github.com/stretchr/testify/assert"
)

func TestTeamCalendar(t *testing.T) {
	assert.Equal(t, "vacations:calendar:abc", cachekey.TeamCalendar("abc"))
	assert.Equal(t, "-:-", cachekey.TeamCalendarField("", ""))
	assert.Equal(t, "2026-01-01:-", cachekey.TeamCalendarField("2026-01-01", ""))
}
