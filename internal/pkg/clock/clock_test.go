package clock_test

import (
	"testing"
	"time"

	"fulfillment/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	c := clock.NewFixed(at)

	assert.True(t, c.Now().Equal(at))
	assert.Equal(t, time.UTC, c.Now().Location())
}

func TestSystem(t *testing.T) {
	before := time.Now()
	now := clock.NewSystem().Now()

	assert.False(t, now.Before(before.Add(-time.Second)))
	assert.Equal(t, time.UTC, now.Location())
}
