/*  PixelArtMaker - Grid based pixel art drawing tool
    Copyright (C) 2021  vibueno

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.  */

package main

import (
	"math"
	"testing"
)

func Test_computeSizing(t *testing.T) {
	cfg := defaultConfig()
	cfg.ViewportWidth = 1000
	cfg.MaxPixelSize = 50
	cfg.BorderCorrection = 0.995

	tests := []struct {
		gridWidth        int
		wantPercent      int
		wantPixelWidthPx float64
	}{
		{100, 100, 10}, // Enough cells, full container width
		{20, 100, 50},  // Exactly at the maximum pixel size
		{10, 50, 50},   // Few cells, canvas shrinks to half
		{2, 10, 50},
		{1, 5, 50},
	}

	for _, test := range tests {
		s := computeSizing(cfg, test.gridWidth)
		if s.CanvasWidthPercent != test.wantPercent {
			t.Errorf("computeSizing(%v).CanvasWidthPercent = %v, want %v", test.gridWidth, s.CanvasWidthPercent, test.wantPercent)
		}
		if math.Abs(s.PixelWidthPx-test.wantPixelWidthPx) > 1e-9 {
			t.Errorf("computeSizing(%v).PixelWidthPx = %v, want %v", test.gridWidth, s.PixelWidthPx, test.wantPixelWidthPx)
		}
	}
}

// The search must pick the largest percentage whose per-cell width stays at
// or below the maximum pixel size.
func Test_computeSizing_largestFit(t *testing.T) {
	cfg := defaultConfig()
	cfg.ViewportWidth = 1280
	cfg.MaxPixelSize = 50

	for gridWidth := 1; gridWidth <= 256; gridWidth++ {
		s := computeSizing(cfg, gridWidth)

		if s.PixelWidthPx > float64(cfg.MaxPixelSize) {
			t.Errorf("Grid width %v: pixel width %v exceeds the maximum %v", gridWidth, s.PixelWidthPx, cfg.MaxPixelSize)
		}

		if s.CanvasWidthPercent < 100 {
			bigger := float64(cfg.ViewportWidth) * float64(s.CanvasWidthPercent+1) / 100 / float64(gridWidth)
			if bigger <= float64(cfg.MaxPixelSize) {
				t.Errorf("Grid width %v: percentage %v is not the largest fit", gridWidth, s.CanvasWidthPercent)
			}
		}
	}
}

// When even 1% of the viewport renders cells above the maximum pixel size,
// the search bottoms out at its 1% floor instead of shrinking further.
func Test_computeSizing_floor(t *testing.T) {
	cfg := defaultConfig()
	cfg.ViewportWidth = 100000
	cfg.MaxPixelSize = 50

	s := computeSizing(cfg, 1)

	if s.CanvasWidthPercent != 1 {
		t.Errorf("CanvasWidthPercent = %v, want the 1%% floor", s.CanvasWidthPercent)
	}
	if math.Abs(s.PixelWidthPx-1000) > 1e-9 {
		t.Errorf("PixelWidthPx = %v, want 1000 (1%% of the viewport)", s.PixelWidthPx)
	}
}

func Test_computeSizing_padding(t *testing.T) {
	cfg := defaultConfig()
	cfg.BorderCorrection = 0.995

	s := computeSizing(cfg, 8)

	if math.Abs(s.PixelWidthPercent-12.5) > 1e-9 {
		t.Errorf("PixelWidthPercent = %v, want 12.5", s.PixelWidthPercent)
	}
	if math.Abs(s.PixelPaddingPercent-12.5*0.995) > 1e-9 {
		t.Errorf("PixelPaddingPercent = %v, want %v", s.PixelPaddingPercent, 12.5*0.995)
	}
}
