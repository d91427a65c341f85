package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParse_CalendarDate(t *testing.T) {
	parsed, ok := Parse("3/1/2023")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), parsed)

	parsed, ok = Parse("12/31/2019")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2019, time.December, 31, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParse_SpreadsheetSerial(t *testing.T) {
	parsed, ok := Parse("44986")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), parsed)

	// Serial 1 is the first representable day.
	parsed, ok = Parse("1")
	assert.True(t, ok)
	assert.Equal(t, time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParse_BlankAndGarbage(t *testing.T) {
	_, ok := Parse("")
	assert.False(t, ok)

	_, ok = Parse("   ")
	assert.False(t, ok)

	_, ok = Parse("not a date")
	assert.False(t, ok)

	// Out-of-range serials are rejected rather than mapped to nonsense dates.
	_, ok = Parse("99999999")
	assert.False(t, ok)
}

func TestFormat_RoundTrip(t *testing.T) {
	parsed, ok := Parse("3/1/2023")
	assert.True(t, ok)
	assert.Equal(t, "03/01/2023", Format(parsed))
}

func TestParseRate(t *testing.T) {
	rate, ok := ParseRate("$55.00")
	assert.True(t, ok)
	assert.Equal(t, 55.0, rate)

	rate, ok = ParseRate("$1,250.50")
	assert.True(t, ok)
	assert.Equal(t, 1250.50, rate)

	rate, ok = ParseRate("17.25")
	assert.True(t, ok)
	assert.Equal(t, 17.25, rate)

	_, ok = ParseRate("")
	assert.False(t, ok)

	_, ok = ParseRate("$")
	assert.False(t, ok)
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "$55.00", FormatRate(55))
	assert.Equal(t, "$30.00", FormatRate(30))
	assert.Equal(t, "$17.33", FormatRate(17.333))
}
