package main

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/matzehuels/taskloop/pkg/errors"
)

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"cycle", apperrors.Wrap(apperrors.ErrCodeCycleDetected, errors.New("graph contains a cycle"), "run"), exitCycle},
		{"cycle behind fmt wrap", fmt.Errorf("order: %w", apperrors.New(apperrors.ErrCodeCycleDetected, "x")), exitCycle},
		{"bad config", apperrors.New(apperrors.ErrCodeInvalidConfig, "x"), exitFailure},
		{"plain", errors.New("unknown command"), exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitStatus(tt.err); got != tt.want {
				t.Errorf("exitStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
