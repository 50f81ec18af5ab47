package errorwrapper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	base := errors.New("disk gone")

	wrapped := WrapError(base, "failed to list folder")
	assert.EqualError(t, wrapped, "failed to list folder: disk gone")
	assert.ErrorIs(t, wrapped, base)

	assert.Nil(t, WrapError(nil, "ignored"))
}

func TestWrapErrorf(t *testing.T) {
	base := errors.New("boom")
	wrapped := WrapErrorf(base, "process %s", "ACME")
	assert.EqualError(t, wrapped, "process ACME: boom")
	assert.Nil(t, WrapErrorf(nil, "process %s", "ACME"))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("time_zone", "Mars/Olympus", "unknown time zone")

	assert.Contains(t, err.Error(), "time_zone")
	assert.Contains(t, err.Error(), "Mars/Olympus")
	assert.True(t, IsConfigurationError(err))
}

func TestConfigurationError(t *testing.T) {
	cause := errors.New("yaml: line 3")
	err := NewConfigurationError("config_file", "failed to parse", cause)

	assert.Contains(t, err.Error(), "config_file")
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsConfigurationError(err))

	plain := NewConfigurationError("processes", "at least one process is required", nil)
	assert.Equal(t, "configuration error in 'processes': at least one process is required", plain.Error())
	assert.True(t, IsConfigurationError(plain))

	assert.False(t, IsConfigurationError(errors.New("other")))
}
