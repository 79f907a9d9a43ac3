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
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func Test_rasterizeGrid(t *testing.T) {
	g := newGrid(2, 2)
	g.setCell(0, 0, "#ff0000")
	g.setCell(1, 1, "rgb(0, 0, 255)")

	img, err := rasterizeGrid(g, 1, "#ffffff")
	if err != nil {
		t.Fatalf("Can't rasterize grid: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 2 || bounds.Dy() != 2 {
		t.Fatalf("Bitmap is %vx%v, want 2x2", bounds.Dx(), bounds.Dy())
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, color.RGBA{255, 0, 0, 255}},
		{1, 1, color.RGBA{0, 0, 255, 255}},
		{1, 0, color.RGBA{255, 255, 255, 255}}, // Blank cell gets the background color
	}

	for _, test := range tests {
		r, gr, b, a := img.At(test.x, test.y).RGBA()
		got := color.RGBA{uint8(r >> 8), uint8(gr >> 8), uint8(b >> 8), uint8(a >> 8)}
		if got != test.want {
			t.Errorf("Pixel (%v, %v) = %v, want %v", test.x, test.y, got, test.want)
		}
	}
}

func Test_rasterizeGrid_scaled(t *testing.T) {
	g := newGrid(2, 1)
	g.setCell(0, 0, "#00ff00")

	img, err := rasterizeGrid(g, 10, "#000000")
	if err != nil {
		t.Fatalf("Can't rasterize grid: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 20 || bounds.Dy() != 10 {
		t.Fatalf("Bitmap is %vx%v, want 20x10", bounds.Dx(), bounds.Dy())
	}

	// Nearest neighbour keeps whole cells one flat color
	for _, pos := range [][2]int{{0, 0}, {9, 9}, {5, 5}} {
		r, gr, b, _ := img.At(pos[0], pos[1]).RGBA()
		if r>>8 != 0 || gr>>8 != 255 || b>>8 != 0 {
			t.Errorf("Pixel %v is not the cell color", pos)
		}
	}
}

func Test_rasterizeGrid_invalidColor(t *testing.T) {
	g := newGrid(1, 1)
	g.setCell(0, 0, "chartreuse-ish")

	if _, err := rasterizeGrid(g, 1, "#ffffff"); err == nil {
		t.Errorf("rasterizeGrid accepted an unparseable cell color")
	}
}

func Test_encodeBitmap(t *testing.T) {
	g := newGrid(3, 2)
	img, err := rasterizeGrid(g, 1, "#ffffff")
	if err != nil {
		t.Fatalf("Can't rasterize grid: %v", err)
	}

	pngData, err := encodeBitmap(img, "pixelart.png")
	if err != nil {
		t.Fatalf("Can't encode png: %v", err)
	}
	decodedPNG, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		t.Fatalf("Can't decode png again: %v", err)
	}
	if decodedPNG.Bounds().Dx() != 3 || decodedPNG.Bounds().Dy() != 2 {
		t.Errorf("Decoded png is %vx%v, want 3x2", decodedPNG.Bounds().Dx(), decodedPNG.Bounds().Dy())
	}

	bmpData, err := encodeBitmap(img, "pixelart.bmp")
	if err != nil {
		t.Fatalf("Can't encode bmp: %v", err)
	}
	decodedBMP, err := bmp.Decode(bytes.NewReader(bmpData))
	if err != nil {
		t.Fatalf("Can't decode bmp again: %v", err)
	}
	if decodedBMP.Bounds().Dx() != 3 || decodedBMP.Bounds().Dy() != 2 {
		t.Errorf("Decoded bmp is %vx%v, want 3x2", decodedBMP.Bounds().Dx(), decodedBMP.Bounds().Dy())
	}
}

func Test_canvas_export(t *testing.T) {
	cfg := testConfig()
	cfg.ExportPixelSize = 4
	can := testCanvas(cfg)

	if err := can.create(8, 8); err != nil {
		t.Fatalf("Can't create 8x8 canvas: %v", err)
	}
	can.setPixel(0, 0, "#ff0000")

	saver := &memorySaver{}
	if err := can.export(saver); err != nil {
		t.Fatalf("Can't export canvas: %v", err)
	}
	if saver.fileName != cfg.ExportFileName {
		t.Errorf("Exported as %v, want %v", saver.fileName, cfg.ExportFileName)
	}

	img, err := png.Decode(bytes.NewReader(saver.data))
	if err != nil {
		t.Fatalf("Export is not a decodable png: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
		t.Errorf("Export is %vx%v, want 32x32", img.Bounds().Dx(), img.Bounds().Dy())
	}

	// The model is untouched by exporting
	if col, _ := can.pixel(0, 0); col != "#ff0000" {
		t.Errorf("Pixel (0, 0) changed during export: %q", col)
	}

	can.delete()
	if err := can.export(saver); err == nil {
		t.Errorf("export succeeded without a canvas")
	}
}
