package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestNewDate(t *testing.T) {
	tests := []struct {
		name    string
		y, m, d int
		wantErr bool
	}{
		{name: "simple date", y: 2020, m: 1, d: 1},
		{name: "leap day", y: 2020, m: 2, d: 29},
		{name: "lower year bound", y: 1000, m: 1, d: 1},
		{name: "upper year bound", y: 3000, m: 12, d: 31},
		{name: "year below range", y: 999, m: 1, d: 1, wantErr: true},
		{name: "year above range", y: 3001, m: 1, d: 1, wantErr: true},
		{name: "month zero", y: 2020, m: 0, d: 1, wantErr: true},
		{name: "month thirteen", y: 2020, m: 13, d: 1, wantErr: true},
		{name: "day zero", y: 2020, m: 1, d: 0, wantErr: true},
		{name: "day thirty-two", y: 2020, m: 1, d: 32, wantErr: true},
		{name: "feb 30 components in range", y: 2021, m: 2, d: 30, wantErr: true},
		{name: "feb 29 non-leap year", y: 2021, m: 2, d: 29, wantErr: true},
		{name: "day 31 in april", y: 2021, m: 4, d: 31, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := NewDate(tt.y, tt.m, tt.d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.y, date.Year())
			assert.Equal(t, tt.m, int(date.Month()))
			assert.Equal(t, tt.d, date.Day())
		})
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	date, err := ParseDate("2020-12-03")
	assert.NoError(t, err)

	constructed, err := NewDate(2020, 12, 3)
	assert.NoError(t, err)

	assert.Equal(t, 0, date.Compare(constructed))
	assert.Equal(t, "2020-12-03", date.String())
}

func TestDateCompare(t *testing.T) {
	a, _ := NewDate(2020, 1, 1)
	b, _ := NewDate(2020, 1, 2)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}
