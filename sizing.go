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

// sizing is the rendered geometry of the current grid.
// It is recomputed on every create/load and broadcast to listeners,
// it is never persisted in saved documents.
type sizing struct {
	CanvasWidthPercent  int     // Canvas width as a percentage of the container
	PixelWidthPx        float64 // Resulting on-screen width of one cell
	PixelWidthPercent   float64 // Cell width as a percentage of the canvas width
	PixelPaddingPercent float64 // Padding-bottom percentage keeping cells square
}

// Searches from 100% down to 1% for the largest canvas width percentage
// whose resulting per-cell width stays at or below the maximum pixel size.
// Shrinking the canvas itself keeps cells from growing huge on small grids,
// without limiting the pixel count.
//
// Cells get no fixed height. A padding-bottom percentage (relative to the
// canvas width, like the cell width percentage) keeps them square, corrected
// by a configured factor to compensate for border rendering.
func computeSizing(cfg *config, gridWidth int) sizing {
	// 1% is the floor of the search. On extreme configurations (a one-cell
	// grid on a very wide viewport) even that leaves cells above the maximum
	// pixel size, the canvas cannot shrink any further.
	s := sizing{
		CanvasWidthPercent: 1,
		PixelWidthPx:       float64(cfg.ViewportWidth) / 100 / float64(gridWidth),
	}

	for i := 100; i >= 1; i-- {
		pixelWidth := float64(cfg.ViewportWidth) * float64(i) / 100 / float64(gridWidth)
		if pixelWidth <= float64(cfg.MaxPixelSize) {
			s.CanvasWidthPercent = i
			s.PixelWidthPx = pixelWidth
			break
		}
	}

	s.PixelWidthPercent = 100 / float64(gridWidth)
	s.PixelPaddingPercent = 100 / float64(gridWidth) * cfg.BorderCorrection

	return s
}
