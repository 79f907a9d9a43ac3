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

import "fmt"

// A cell color as the browser hands it over, e.g. "#ff0000" or "rgb(255, 0, 0)".
// The zero value is the blank (unpainted) cell.
type cellColor string

const blankColor cellColor = ""

// grid is the in-memory pixel model and the single source of truth.
// Rendering surfaces are projections of it, fed through canvas listeners.
type grid struct {
	Width, Height int
	Cells         [][]cellColor // Row-major, Cells[y][x]
}

func newGrid(width, height int) *grid {
	g := &grid{
		Width:  width,
		Height: height,
		Cells:  make([][]cellColor, height),
	}

	for y := range g.Cells {
		g.Cells[y] = make([]cellColor, width)
	}

	return g
}

func (g *grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

func (g *grid) getCell(x, y int) (cellColor, error) {
	if !g.inBounds(x, y) {
		return blankColor, fmt.Errorf("Position (%v, %v) is outside of the grid", x, y)
	}

	return g.Cells[y][x], nil
}

func (g *grid) setCell(x, y int, col cellColor) error {
	if !g.inBounds(x, y) {
		return fmt.Errorf("Position (%v, %v) is outside of the grid", x, y)
	}

	g.Cells[y][x] = col

	return nil
}

// Sets every cell back to the blank default.
func (g *grid) clear() {
	for y := range g.Cells {
		for x := range g.Cells[y] {
			g.Cells[y][x] = blankColor
		}
	}
}

func (g *grid) clone() *grid {
	gridCopy := newGrid(g.Width, g.Height)
	for y := range g.Cells {
		copy(gridCopy.Cells[y], g.Cells[y])
	}

	return gridCopy
}
