package ui

import (
	"errors"
	"testing"

	"github.com/automoto/flyby/components"
	"github.com/stretchr/testify/assert"
)

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Loading...", StatusText(components.LoadProgressData{}))
	assert.Equal(t, "Loading 3/4 (75%)", StatusText(components.LoadProgressData{
		ItemsLoaded: 3, ItemsTotal: 4, Fraction: 0.75,
	}))
	assert.Equal(t, "Ready", StatusText(components.LoadProgressData{Complete: true, Fraction: 1}))
	assert.Equal(t, "Could not load the model: boom", StatusText(components.LoadProgressData{
		Failed: true, Err: errors.New("boom"),
	}))
}
