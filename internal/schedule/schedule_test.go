package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		token     string
		clockOnly bool
		minute    int
		wantErr   bool
	}{
		{token: "08:30", clockOnly: true, minute: 8*60 + 30},
		{token: "23:59:59", clockOnly: true, minute: 23*60 + 59},
		{token: "0645", clockOnly: true, minute: 6*60 + 45},
		{token: "2:15PM", clockOnly: true, minute: 14*60 + 15},
		{token: "2025-12-15T06:00:00+07:00", minute: 6 * 60},
		{token: "2025-12-15T06:00", minute: 6 * 60},
		{token: "2025-12-15 21:10:00", minute: 21*60 + 10},
		{token: "", wantErr: true},
		{token: "soon", wantErr: true},
		{token: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := Parse(tt.token, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.clockOnly, got.ClockOnly)
			assert.Equal(t, tt.minute, got.MinuteOfDay())
		})
	}
}

func TestParse_ZonelessUsesLocation(t *testing.T) {
	got, err := Parse("2025-12-15T06:00:00", WITA)
	require.NoError(t, err)
	assert.Equal(t, 22, got.At.UTC().Hour())
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name      string
		departure string
		arrival   string
		want      time.Duration
		wantErr   bool
	}{
		{name: "same day", departure: "08:00", arrival: "11:30", want: 3*time.Hour + 30*time.Minute},
		{name: "overnight", departure: "22:15", arrival: "01:05", want: 2*time.Hour + 50*time.Minute},
		{name: "zero", departure: "09:00", arrival: "09:00", want: 0},
		{name: "timestamps across zones", departure: "2025-12-15T06:00:00+07:00", arrival: "2025-12-15T08:50:00+08:00", want: time.Hour + 50*time.Minute},
		{name: "timestamps reversed", departure: "2025-12-15T10:00:00Z", arrival: "2025-12-15T09:00:00Z", wantErr: true},
		{name: "mixed kinds", departure: "08:00", arrival: "2025-12-15T09:00:00Z", wantErr: true},
		{name: "unparseable", departure: "dawn", arrival: "09:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Duration(tt.departure, tt.arrival)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinuteOfDay(t *testing.T) {
	m, err := MinuteOfDay("13:45")
	require.NoError(t, err)
	assert.Equal(t, 13*60+45, m)

	_, err = MinuteOfDay("noon")
	assert.Error(t, err)
}

func TestToModel(t *testing.T) {
	d := ToModel(2*time.Hour + 5*time.Minute)
	assert.Equal(t, 2, d.Hours)
	assert.Equal(t, 5, d.Minutes)
	assert.Equal(t, 125, d.TotalMinutes)
}

func TestLocationByName(t *testing.T) {
	assert.Equal(t, WIB, LocationByName("wib"))
	assert.Equal(t, WITA, LocationByName("UTC+8"))
	assert.Equal(t, WIT, LocationByName("WIT"))
	assert.Equal(t, UTC, LocationByName(""))
	assert.Equal(t, UTC, LocationByName("Not/AZone"))
}
