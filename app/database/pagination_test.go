package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, limit                     int
		wantPage, wantLimit, wantOffset int
	}{
		{1, 10, 1, 10, 0},
		{0, 0, 1, 10, 0},
		{-5, -1, 1, 10, 0},
		{3, 20, 3, 20, 40},
		{2, 500, 2, 100, 100},
	}
	for _, tt := range tests {
		p := NormalizePage(tt.page, tt.limit)
		assert.Equal(t, tt.wantPage, p.Page)
		assert.Equal(t, tt.wantLimit, p.Limit)
		assert.Equal(t, tt.wantOffset, p.Offset())
	}
}
