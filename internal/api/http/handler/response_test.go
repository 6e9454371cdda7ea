package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAverage(t *testing.T) {
	assert.Nil(t, formatAverage(nil))

	tests := []struct {
		value float64
		want  string
	}{
		{value: 3, want: "3.0"},
		{value: 3.25, want: "3.2"},
		{value: 4.666666, want: "4.7"},
		{value: 5, want: "5.0"},
	}

	for _, tt := range tests {
		got := formatAverage(&tt.value)
		require.NotNil(t, got)
		assert.Equal(t, tt.want, *got)
	}
}
