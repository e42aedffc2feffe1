package numutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntWithCommas(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
		{-1000, "-1,000"},
		{-12, "-12"},
		{math.MinInt64, "-9,223,372,036,854,775,808"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IntWithCommas(tt.in))
	}
	assert.Equal(t, "100,000", IntWithCommas(100000))
}
