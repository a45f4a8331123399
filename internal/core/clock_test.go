package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1siamBot/worldsim-core/internal/core"
)

func TestClockAdvanceAndCalendar(t *testing.T) {
	c := core.NewClock(360)
	assert.Equal(t, uint64(0), c.Tick())

	for i := 0; i < 400; i++ {
		c.Advance()
	}
	assert.Equal(t, uint64(400), c.Tick())
	assert.Equal(t, uint64(2), c.Year())
}

func TestClockSeasons(t *testing.T) {
	c := core.NewClock(360)
	c.SetTick(0) // day 1, month 0 -> winter
	assert.Equal(t, core.SeasonWinter, c.Season())

	c.SetTick(100) // day 101, month 3 -> spring
	assert.Equal(t, core.SeasonSpring, c.Season())

	c.SetTick(190) // day 191, month 6 -> summer
	assert.Equal(t, core.SeasonSummer, c.Season())

	c.SetTick(280) // day 281, month 9 -> autumn
	assert.Equal(t, core.SeasonAutumn, c.Season())
}

func TestClockSetTick(t *testing.T) {
	c := core.NewClock(360)
	c.SetTick(999)
	assert.Equal(t, uint64(999), c.Tick())
}
