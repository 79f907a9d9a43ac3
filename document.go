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
	"io"
	"strings"

	"golang.org/x/net/html"
)

// The .pix document format: rows of cells as plain markup, one row per line.
// Cell color is the only styling that gets persisted. Sizing is recomputed
// on load, so documents are resolution independent. There is no header or
// version tag.
//
//	<div class="row"><div class="pixel" style="background-color: #ff0000;"></div>...</div>

// Serializes the grid model to a .pix document.
// Since the model is the source of truth there is nothing to clone or strip,
// blank cells simply get no style attribute.
func serializeGrid(g *grid) []byte {
	var sb strings.Builder
	sb.Grow(g.Width * g.Height * 48)

	for y := 0; y < g.Height; y++ {
		sb.WriteString(`<div class="row">`)
		for x := 0; x < g.Width; x++ {
			col := g.Cells[y][x]
			if col == blankColor {
				sb.WriteString(`<div class="pixel"></div>`)
			} else {
				sb.WriteString(`<div class="pixel" style="background-color: ` + string(col) + `;"></div>`)
			}
		}
		sb.WriteString("</div>\n")
	}

	return []byte(sb.String())
}

// Parses a .pix document back into a grid.
// The structure must be rows of pixel cells and rectangular: every row needs
// the same cell count as the first one. Anything else fails with
// errCanvasWrongFormat.
func parseDocument(data []byte) (*grid, error) {
	rows := [][]cellColor{}
	var currentRow []cellColor
	inRow := false

	tokenizer := html.NewTokenizer(bytes.NewReader(data))

	for {
		tokenType := tokenizer.Next()

		switch tokenType {
		case html.ErrorToken:
			if tokenizer.Err() != io.EOF {
				return nil, fmt.Errorf("%w: %v", errCanvasWrongFormat, tokenizer.Err())
			}
			if inRow {
				return nil, fmt.Errorf("%w: document ends inside a row", errCanvasWrongFormat)
			}
			return gridFromRows(rows)

		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "div" {
				return nil, fmt.Errorf("%w: unexpected element <%v>", errCanvasWrongFormat, token.Data)
			}

			switch elementClass(token) {
			case "row":
				if inRow {
					return nil, fmt.Errorf("%w: nested rows", errCanvasWrongFormat)
				}
				inRow = true
				currentRow = []cellColor{}
			case "pixel":
				if !inRow {
					return nil, fmt.Errorf("%w: cell outside of a row", errCanvasWrongFormat)
				}
				currentRow = append(currentRow, cellStyleColor(token))
				if tokenType == html.SelfClosingTagToken {
					continue
				}
				// Consume the matching end tag of the (empty) cell
				if tokenizer.Next() != html.EndTagToken {
					return nil, fmt.Errorf("%w: cell is not empty", errCanvasWrongFormat)
				}
			default:
				return nil, fmt.Errorf("%w: unexpected element class", errCanvasWrongFormat)
			}

		case html.EndTagToken:
			if !inRow {
				return nil, fmt.Errorf("%w: stray closing tag", errCanvasWrongFormat)
			}
			inRow = false
			rows = append(rows, currentRow)

		case html.TextToken:
			if strings.TrimSpace(string(tokenizer.Text())) != "" {
				return nil, fmt.Errorf("%w: unexpected text content", errCanvasWrongFormat)
			}

		default:
			return nil, fmt.Errorf("%w: unexpected token", errCanvasWrongFormat)
		}
	}
}

func gridFromRows(rows [][]cellColor) (*grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: document contains no cells", errCanvasWrongFormat)
	}

	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %v has %v cells, expected %v", errCanvasWrongFormat, i, len(row), width)
		}
	}

	g := newGrid(width, len(rows))
	for y, row := range rows {
		copy(g.Cells[y], row)
	}

	return g, nil
}

func elementClass(token html.Token) string {
	for _, attr := range token.Attr {
		if attr.Key == "class" {
			return attr.Val
		}
	}

	return ""
}

// Pulls the background color out of a cell's style attribute.
// Cells without one are blank.
func cellStyleColor(token html.Token) cellColor {
	for _, attr := range token.Attr {
		if attr.Key != "style" {
			continue
		}
		for _, declaration := range strings.Split(attr.Val, ";") {
			property, value, found := strings.Cut(declaration, ":")
			if found && strings.TrimSpace(property) == "background-color" {
				return cellColor(strings.TrimSpace(value))
			}
		}
	}

	return blankColor
}

// Serializes the current grid and triggers a download under the fixed
// document file name.
func (can *canvas) save(saver fileSaver) error {
	can.Lock()
	defer can.Unlock()

	if !can.Active {
		return fmt.Errorf("there is no canvas to save")
	}

	return saver.save(can.cfg.SaveFileName, serializeGrid(can.Grid))
}

// Reads a .pix document and replaces the grid content wholesale.
//
// A document bigger than the allowed maximum is not applied right away:
// it is held aside and the modal collaborator is asked for confirmation,
// confirmLoad applies it. The current grid stays untouched until then.
func (can *canvas) load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %v", errCanvasLoadError, err)
	}

	g, err := parseDocument(data)
	if err != nil {
		return err
	}

	can.Lock()
	defer can.Unlock()

	if g.Width > can.MaxWidth || g.Height > can.MaxHeight {
		can.pendingGrid = g
		can.modal.open("load", modalKindConfirmLoad)
		return nil
	}

	can.applyGridLocked(g)

	return nil
}
