package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"2024-05-01", "2024-05-01", false},
		{"2024/05/01", "2024-05-01", false},
		{" 2024-05-01 ", "2024-05-01", false},
		{"2024-05-01T00:00:00", "2024-05-01", false},
		{"2024-05-01T13:45:00.123456", "2024-05-01", false},
		{"2024-05-01 08:00:00", "2024-05-01", false},
		{"2024-13-01", "", true},
		{"01/05/2024", "", true},
		{"tomorrow", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.String())
		})
	}
}

func TestParseDatePtr(t *testing.T) {
	d, err := ParseDatePtr("   ")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDatePtr("2024-02-29")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "2024/02/29", d.Format("2006/01/02"))
}

func TestDate_Compare(t *testing.T) {
	a := NewDate(2024, 5, 1)
	b := DateOf(time.Date(2024, 5, 1, 23, 59, 0, 0, time.Local))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Before(b))
	assert.True(t, a.AddDays(-1).Before(a))
	assert.True(t, Date{}.IsZero())
}
