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
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Parses the color notations the browser hands over: #rgb, #rrggbb and
// rgb(r, g, b). Everything else is an error.
func parseCellColor(col cellColor) (color.RGBA, error) {
	s := strings.TrimSpace(string(col))

	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}

	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		return parseRGBColor(s[4 : len(s)-1])
	}

	return color.RGBA{}, fmt.Errorf("Unknown color notation %q", s)
}

func parseHexColor(s string) (color.RGBA, error) {
	value, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("Invalid hex color %q: %v", s, err)
	}

	switch len(s) {
	case 3:
		r := uint8(value >> 8 & 0xf)
		g := uint8(value >> 4 & 0xf)
		b := uint8(value & 0xf)
		return color.RGBA{r*16 + r, g*16 + g, b*16 + b, 255}, nil
	case 6:
		return color.RGBA{uint8(value >> 16), uint8(value >> 8), uint8(value), 255}, nil
	}

	return color.RGBA{}, fmt.Errorf("Invalid hex color length %q", s)
}

func parseRGBColor(s string) (color.RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("Invalid rgb() color %q", s)
	}

	channels := [3]uint8{}
	for i, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || value < 0 || value > 255 {
			return color.RGBA{}, fmt.Errorf("Invalid rgb() channel %q", part)
		}
		channels[i] = uint8(value)
	}

	return color.RGBA{channels[0], channels[1], channels[2], 255}, nil
}

// diskSaver puts "downloads" into a local directory.
// The browser front end never sees this one, its downloads go through the
// HTTP handlers. It serves headless use and tests.
type diskSaver struct {
	Dir string
}

func (ds *diskSaver) save(fileName string, data []byte) error {
	if err := os.MkdirAll(ds.Dir, 0777); err != nil {
		return fmt.Errorf("Can't create directory %v: %v", ds.Dir, err)
	}

	filePath := filepath.Join(ds.Dir, fileName)
	if err := os.WriteFile(filePath, data, 0666); err != nil {
		return fmt.Errorf("Can't write file %v: %v", filePath, err)
	}

	return nil
}

// No-op collaborators for contexts without a UI shell.
type nopIndicator struct{}

func (nopIndicator) show() error { return nil }
func (nopIndicator) hide() error { return nil }

type nopModal struct{}

func (nopModal) open(context, kind string) {}
