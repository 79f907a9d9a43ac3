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
	"errors"
	"sync"
	"time"
)

var (
	errCanvasNoSpace            = errors.New("requested grid doesn't fit the available space")
	errCanvasInvalidProportions = errors.New("width to height ratio is out of bounds")
	errCanvasWrongFormat        = errors.New("file doesn't contain a recognizable canvas document")
	errCanvasLoadError          = errors.New("can't read canvas document")
)

// Loading states of the canvas.
// The progress indicator is a side effect of canvasBuilding, it is not timed on its own.
type canvasState int

const (
	canvasIdle canvasState = iota
	canvasBuilding
	canvasReady
	canvasError
)

func (s canvasState) String() string {
	switch s {
	case canvasIdle:
		return "Idle"
	case canvasBuilding:
		return "Building"
	case canvasReady:
		return "Ready"
	case canvasError:
		return "Error"
	}
	return "Unknown"
}

// Rendering surfaces subscribe as listeners and mirror the model from these events.
type canvasListener interface {
	handleSetPixel(x, y int, col cellColor) error
	handleSetGrid(g *grid) error
	handleReset() error
	handleDelete() error
	handleSizing(s sizing) error
}

// Collaborators owned by the UI shell and injected into the canvas.
type progressIndicator interface {
	show() error
	hide() error
}

type modalOpener interface {
	open(context, kind string) // Fire and forget confirmation prompt
}

type fileSaver interface {
	save(fileName string, data []byte) error
}

const modalKindConfirmLoad = "confirm-load"

type canvas struct {
	sync.Mutex // Serializes operations, no two grid mutations may interleave

	Width, Height       int
	MaxWidth, MaxHeight int
	Active              bool
	State               canvasState

	Grid   *grid
	Sizing sizing

	cfg       *config
	indicator progressIndicator
	modal     modalOpener
	delay     func(time.Duration) // Injectable for tests

	pendingGrid *grid // Oversized document held aside until the user confirms

	listeners map[canvasListener]struct{}
}

func newCanvas(cfg *config, indicator progressIndicator, modal modalOpener) *canvas {
	maxWidth, maxHeight := cfg.maxGridSize()

	return &canvas{
		MaxWidth:  maxWidth,
		MaxHeight: maxHeight,
		State:     canvasIdle,
		cfg:       cfg,
		indicator: indicator,
		modal:     modal,
		delay:     time.Sleep,
		listeners: map[canvasListener]struct{}{},
	}
}

func (can *canvas) subscribeListener(l canvasListener) {
	can.Lock()
	defer can.Unlock()

	can.listeners[l] = struct{}{}

	// Bring the new listener up to date with the current model
	if can.Active {
		l.handleSetGrid(can.Grid.clone())
		l.handleSizing(can.Sizing)
	}
}

func (can *canvas) unsubscribeListener(l canvasListener) {
	can.Lock()
	defer can.Unlock()

	delete(can.listeners, l)
}

func (can *canvas) broadcast(send func(l canvasListener) error) {
	for l := range can.listeners {
		if err := send(l); err != nil {
			log.Warnf("Canvas listener failed to handle event: %v", err)
		}
	}
}

// Reports whether a width/height pair has an acceptable shape.
// The ratio must lie in [aspectRatio/4, aspectRatio], which rejects grids
// that are absurdly tall/thin or wide/short before anything gets built.
func (can *canvas) validProportions(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}

	ratio := float64(width) / float64(height)

	return ratio >= can.cfg.AspectRatio/4 && ratio <= can.cfg.AspectRatio
}

// Builds a new grid of the given dimensions.
// Any previous grid is torn down first. On error no partial grid remains.
func (can *canvas) create(width, height int) error {
	can.Lock()
	defer can.Unlock()

	return can.createLocked(width, height)
}

func (can *canvas) createLocked(width, height int) error {
	can.State = canvasBuilding

	if width < 1 || height < 1 || width > can.MaxWidth || height > can.MaxHeight {
		can.deleteLocked()
		can.State = canvasError
		return errCanvasNoSpace
	}

	if !can.validProportions(width, height) {
		can.deleteLocked()
		can.State = canvasError
		return errCanvasInvalidProportions
	}

	can.deleteLocked() // Idempotent teardown, also when nothing exists yet

	can.Grid = newGrid(width, height)
	can.Width = width
	can.Height = height
	can.Sizing = computeSizing(can.cfg, width)
	can.Active = true
	can.State = canvasReady

	gridCopy := can.Grid.clone()
	can.broadcast(func(l canvasListener) error { return l.handleSetGrid(gridCopy) })
	can.broadcast(func(l canvasListener) error { return l.handleSizing(can.Sizing) })

	log.Debugf("Created %vx%v canvas, %v%% width, %.2fpx pixels", width, height, can.Sizing.CanvasWidthPercent, can.Sizing.PixelWidthPx)

	return nil
}

// Like create, but shows the progress indicator for large grids.
// Building a big grid blocks the render loop of the front end, so the
// indicator must be on screen before the work starts. That is what the
// delay is for.
func (can *canvas) createWithProgress(width, height int) error {
	if width*height <= can.cfg.BuildIndicatorThreshold {
		return can.create(width, height)
	}

	if err := can.indicator.show(); err != nil {
		log.Warnf("Can't show progress indicator: %v", err)
	}
	can.delay(can.cfg.BuildIndicatorDelay)

	err := can.create(width, height)

	if hideErr := can.indicator.hide(); hideErr != nil {
		log.Warnf("Can't hide progress indicator: %v", hideErr)
	}

	return err
}

// Sets every cell back to the blank default.
func (can *canvas) reset() {
	can.Lock()
	defer can.Unlock()

	if !can.Active {
		return
	}

	can.Grid.clear()
	can.broadcast(func(l canvasListener) error { return l.handleReset() })
}

// Removes the grid and marks the canvas inactive. Idempotent.
func (can *canvas) delete() {
	can.Lock()
	defer can.Unlock()

	can.deleteLocked()
	can.State = canvasIdle
}

func (can *canvas) deleteLocked() {
	if !can.Active && can.Grid == nil {
		return
	}

	can.Grid = nil
	can.Width = 0
	can.Height = 0
	can.Active = false

	can.broadcast(func(l canvasListener) error { return l.handleDelete() })
}

// Paint and erase are both plain cell color writes, erase writes blankColor.
func (can *canvas) setPixel(x, y int, col cellColor) error {
	can.Lock()
	defer can.Unlock()

	if !can.Active {
		return errors.New("canvas is not active")
	}

	if err := can.Grid.setCell(x, y, col); err != nil {
		return err
	}

	can.broadcast(func(l canvasListener) error { return l.handleSetPixel(x, y, col) })

	return nil
}

func (can *canvas) pixel(x, y int) (cellColor, error) {
	can.Lock()
	defer can.Unlock()

	if !can.Active {
		return blankColor, errors.New("canvas is not active")
	}

	return can.Grid.getCell(x, y)
}

// Replaces the whole grid content with a loaded document and resizes.
func (can *canvas) applyGridLocked(g *grid) {
	can.deleteLocked()

	can.Grid = g
	can.Width = g.Width
	can.Height = g.Height
	can.Sizing = computeSizing(can.cfg, g.Width)
	can.Active = true
	can.State = canvasReady

	gridCopy := g.clone()
	can.broadcast(func(l canvasListener) error { return l.handleSetGrid(gridCopy) })
	can.broadcast(func(l canvasListener) error { return l.handleSizing(can.Sizing) })
}

// Applies a held-aside oversized document after the user confirmed the modal.
func (can *canvas) confirmLoad() error {
	can.Lock()
	defer can.Unlock()

	if can.pendingGrid == nil {
		return errors.New("there is no pending canvas document")
	}

	g := can.pendingGrid
	can.pendingGrid = nil
	can.applyGridLocked(g)

	return nil
}

// Drops a held-aside document, for when the user dismisses the modal.
func (can *canvas) discardPendingLoad() {
	can.Lock()
	defer can.Unlock()

	can.pendingGrid = nil
}
