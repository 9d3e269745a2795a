package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:30", 510, false},
		{"23:59", 1439, false},
		{"08:30:00", 510, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"-1:00", 0, true},
		{"8h30", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := TimeToMinutes(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		assert.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestValidTimeRange(t *testing.T) {
	assert.True(t, ValidTimeRange("08:00", "10:00"))
	assert.False(t, ValidTimeRange("10:00", "08:00"))
	assert.False(t, ValidTimeRange("10:00", "10:00"))
	assert.False(t, ValidTimeRange("abc", "10:00"))
	assert.False(t, ValidTimeRange("08:00", "25:00"))
}
