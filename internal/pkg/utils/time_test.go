package utils

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBounds_UTC(t *testing.T) {
	start, end := DayBounds(time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC), nil)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), end)
}

func TestDayBounds_DSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-03-10 is the spring-forward day in New York.
	start, end := DayBounds(time.Date(2024, 3, 10, 12, 0, 0, 0, loc), loc)
	assert.Equal(t, 23*time.Hour, end.Sub(start))
	assert.Equal(t, "2024-03-10", start.Format(DateLayout))
}

func TestDayBounds_DifferentZone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 20:00 UTC is already the next day in Jakarta.
	start, _ := DayBounds(time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, "2024-06-02", start.Format(DateLayout))
}

func TestWholeMinutes(t *testing.T) {
	assert.Equal(t, 0, WholeMinutes(-time.Second))
	assert.Equal(t, 1, WholeMinutes(119*time.Second))
}
