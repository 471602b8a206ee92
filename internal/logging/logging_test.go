package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		verbose   bool
		wantDebug bool
	}{
		{"development quiet", "development", false, false},
		{"development verbose", "development", true, true},
		{"production quiet", "production", false, false},
		{"production verbose", "production", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.env, tt.verbose)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if got := logger.Core().Enabled(zapcore.DebugLevel); got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if !logger.Core().Enabled(zapcore.WarnLevel) {
				t.Error("expected warnings to be enabled")
			}
		})
	}
}
