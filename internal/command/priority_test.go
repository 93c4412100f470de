package command_test

import (
	"testing"

	"personal-ops-assistant/internal/command"
	"personal-ops-assistant/internal/model"
)

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.PriorityLevel
	}{
		{"High english", "pay invoice high", model.PriorityHigh},
		{"High spanish", "pagar factura alta", model.PriorityHigh},
		{"P1 marker", "p1 urgent", model.PriorityHigh},
		{"Low english", "water plants low", model.PriorityLow},
		{"Low spanish uppercase", "regar plantas BAJA", model.PriorityLow},
		{"P3 marker", "someday p3", model.PriorityLow},
		{"No marker", "buy milk", model.PriorityDefault},
		{"Empty", "", model.PriorityDefault},
		{"High beats low", "high priority, low effort", model.PriorityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := command.NormalizePriority(tt.text); got != tt.want {
				t.Errorf("NormalizePriority(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}
