package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInterruptHandler(t *testing.T) {
	assert.NotNil(t, NewInterruptHandler(&bytes.Buffer{}).writer)
	assert.NotNil(t, NewInterruptHandler(nil).writer)
}

func TestInterruptHandler_CancelsOnce(t *testing.T) {
	var output bytes.Buffer
	handler := NewInterruptHandler(&output)

	ctx := handler.HandleInterrupts(context.Background(), "Export", "The partial file was removed.")
	assert.NoError(t, ctx.Err())
	assert.False(t, handler.WasInterrupted())

	handler.interrupt()
	handler.interrupt()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.True(t, handler.WasInterrupted())
	assert.Equal(t, 1, strings.Count(output.String(), "Export interrupted!"))
	assert.Contains(t, output.String(), "The partial file was removed.")
}

func TestInterruptHandler_Stop(t *testing.T) {
	var output bytes.Buffer
	handler := NewInterruptHandler(&output)

	ctx := handler.HandleInterrupts(context.Background(), "Export", "")
	handler.Stop()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestShowInterruptMessage(t *testing.T) {
	tests := []struct {
		name        string
		operation   string
		hint        string
		expected    []string
		notExpected []string
	}{
		{
			name:      "with hint",
			operation: "Export",
			hint:      "Run the export again to resume.",
			expected:  []string{"Export interrupted!", "Run the export again"},
		},
		{
			name:        "defaults",
			expected:    []string{"Operation interrupted!"},
			notExpected: []string{InfoIcon},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			handler := &InterruptHandler{writer: &output, operation: tt.operation, hint: tt.hint}

			handler.showInterruptMessage()

			for _, want := range tt.expected {
				assert.Contains(t, output.String(), want)
			}
			for _, unwanted := range tt.notExpected {
				assert.NotContains(t, output.String(), unwanted)
			}
		})
	}
}
