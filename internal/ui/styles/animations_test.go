// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"
	"time"
)

func TestSpinnerConfigs(t *testing.T) {
	spinners := []struct {
		name string
		cfg  SpinnerConfig
	}{
		{"Braille", BrailleSpinner},
		{"Dots", DotsSpinner},
		{"Line", LineSpinner},
		{"Pulse", PulseSpinner},
	}

	for _, s := range spinners {
		if len(s.cfg.Frames) == 0 {
			t.Errorf("%s spinner has no frames", s.name)
		}
		if s.cfg.FPS <= 0 {
			t.Errorf("%s spinner has invalid FPS %d", s.name, s.cfg.FPS)
		}
		if s.cfg.Duration() <= 0 || s.cfg.Duration() > time.Second {
			t.Errorf("%s spinner frame duration out of range: %v", s.name, s.cfg.Duration())
		}
	}
}
