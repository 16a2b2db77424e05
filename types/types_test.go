package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, "Active", StatusActive.String())
	assert.Equal(t, "Claimed", StatusClaimed.String())
	assert.Equal(t, "Unknown", Status(9).String())

	assert.True(t, StatusSuccess.Valid())
	assert.False(t, Status(0).Valid())

	assert.True(t, StatusFailed.Terminal())
	assert.True(t, StatusClaimed.Terminal())
	assert.False(t, StatusActive.Terminal())
	assert.False(t, StatusSuccess.Terminal())
}
