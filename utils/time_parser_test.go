package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("3d")
	require.NoError(t, err)
	assert.Equal(t, 72*time.Hour, d)

	d, err = ParseDuration("90m")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	_, err = ParseDuration("threed")
	assert.Error(t, err)
	_, err = ParseDuration("xd")
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "3d", FormatDuration(72*time.Hour))
	assert.Equal(t, "12h", FormatDuration(12*time.Hour))
	assert.Equal(t, "45m", FormatDuration(45*time.Minute))
	assert.Equal(t, "90s", FormatDuration(90*time.Second))
}
