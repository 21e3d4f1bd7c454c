package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.String())

	// Datetime values keep only the date part.
	d, err = ParseDate("2024-03-15T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.String())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{"2024-03-15T18:30:00Z", "2024-03-15T18:30:00Z"},
		{"2024-03-15T18:30:00", "2024-03-15T18:30:00Z"},
		{"2024-03-15 18:30:00", "2024-03-15T18:30:00Z"},
	}
	for _, tt := range tests {
		parsed, err := ParseDateTime(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.expected, parsed.Format(time.RFC3339))
	}

	_, err := ParseDateTime("not a time")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.March, 15)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-15"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-15"`), &decoded))
	assert.Equal(t, d, decoded)

	require.NoError(t, json.Unmarshal([]byte(`null`), &decoded))
	assert.True(t, decoded.IsZero())
}

func TestDateValue(t *testing.T) {
	d := NewDate(2024, time.March, 15)
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-03-15"))
	assert.Equal(t, "2024-03-15", d.String())

	require.NoError(t, d.Scan([]byte("2024-04-01")))
	assert.Equal(t, "2024-04-01", d.String())

	require.NoError(t, d.Scan(time.Date(2024, time.May, 2, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-02", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestParseChoices(t *testing.T) {
	p, ok := ParsePriority("HIGH")
	assert.True(t, ok)
	assert.Equal(t, TaskPriorityHigh, p)

	_, ok = ParsePriority("urgent")
	assert.False(t, ok)

	s, ok := ParseStatus(" In-Progress ")
	assert.True(t, ok)
	assert.Equal(t, TaskStatusInProgress, s)

	_, ok = ParseStatus("done")
	assert.False(t, ok)

	th, ok := ParseTheme("Dark")
	assert.True(t, ok)
	assert.Equal(t, ThemeDark, th)

	_, ok = ParseTheme("solarized")
	assert.False(t, ok)

	style, ok := ParseAIResponseStyle("detailed")
	assert.True(t, ok)
	assert.Equal(t, AIStyleDetailed, style)

	_, ok = ParseAIResponseStyle("chatty")
	assert.False(t, ok)
}
