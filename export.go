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
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
)

// Rasterizes a grid to a bitmap, one image pixel per cell, then scales it up
// by pixelSize with nearest neighbour so cells stay crisp squares.
// Blank cells get the configured background color.
func rasterizeGrid(g *grid, pixelSize int, background cellColor) (image.Image, error) {
	backgroundColor, err := parseCellColor(background)
	if err != nil {
		return nil, fmt.Errorf("Can't parse background color: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			col := g.Cells[y][x]
			if col == blankColor {
				img.SetRGBA(x, y, backgroundColor)
				continue
			}
			rgba, err := parseCellColor(col)
			if err != nil {
				return nil, fmt.Errorf("Can't parse cell (%v, %v): %v", x, y, err)
			}
			img.SetRGBA(x, y, rgba)
		}
	}

	if pixelSize <= 1 {
		return img, nil
	}

	return resize.Resize(uint(g.Width*pixelSize), uint(g.Height*pixelSize), img, resize.NearestNeighbor), nil
}

// Encodes by file extension. PNG is the default, .bmp selects BMP.
func encodeBitmap(img image.Image, fileName string) ([]byte, error) {
	buf := &bytes.Buffer{}

	switch filepath.Ext(fileName) {
	case ".bmp":
		if err := bmp.Encode(buf, img); err != nil {
			return nil, fmt.Errorf("Can't encode bmp: %v", err)
		}
	default:
		if err := png.Encode(buf, img); err != nil {
			return nil, fmt.Errorf("Can't encode png: %v", err)
		}
	}

	return buf.Bytes(), nil
}

// Rasterizes the current grid and triggers a download under the fixed
// export file name. The export works on the model alone, rendering surfaces
// stay untouched throughout.
func (can *canvas) export(saver fileSaver) error {
	can.Lock()
	defer can.Unlock()

	if !can.Active {
		return fmt.Errorf("there is no canvas to export")
	}

	img, err := rasterizeGrid(can.Grid, can.cfg.ExportPixelSize, cellColor(can.cfg.ExportBackground))
	if err != nil {
		return fmt.Errorf("Can't rasterize canvas: %v", err)
	}

	data, err := encodeBitmap(img, can.cfg.ExportFileName)
	if err != nil {
		return err
	}

	return saver.save(can.cfg.ExportFileName, data)
}
