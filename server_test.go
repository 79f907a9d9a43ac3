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
	"testing"
)

// Record a session, wipe the canvas, then drive the Replay command the way
// the front end does. The drawing must come back.
func Test_canvasServer_dispatchCommand_replay(t *testing.T) {
	cfg := testConfig()
	cfg.RecordingsDir = t.TempDir()
	ctx := newAppContext(cfg)

	recorder, err := ctx.Canvas.newCanvasRecorder(cfg.RecordingsDir, "session")
	if err != nil {
		t.Fatalf("Can't create canvas recorder: %v", err)
	}

	if err := ctx.Canvas.create(8, 8); err != nil {
		t.Fatalf("Can't create 8x8 canvas: %v", err)
	}
	if err := ctx.Canvas.setPixel(3, 4, "#ff0000"); err != nil {
		t.Errorf("Can't set pixel: %v", err)
	}

	recorder.Close()
	ctx.Canvas.delete()

	if err := ctx.Server.dispatchCommand(wsCommand{Type: "Replay"}); err != nil {
		t.Fatalf("Can't replay session: %v", err)
	}

	if ctx.Canvas.Width != 8 || ctx.Canvas.Height != 8 {
		t.Fatalf("Replayed canvas is %vx%v, want 8x8", ctx.Canvas.Width, ctx.Canvas.Height)
	}
	if col, _ := ctx.Canvas.pixel(3, 4); col != "#ff0000" {
		t.Errorf("Replayed pixel (3, 4) is %q, want #ff0000", col)
	}
}

func Test_canvasServer_dispatchCommand_replayWithoutRecording(t *testing.T) {
	cfg := testConfig()
	cfg.RecordingsDir = t.TempDir()
	ctx := newAppContext(cfg)

	if err := ctx.Server.dispatchCommand(wsCommand{Type: "Replay"}); err == nil {
		t.Errorf("Replay succeeded without any recording on disk")
	}
}

func Test_canvasServer_dispatchCommand_unknown(t *testing.T) {
	cfg := testConfig()
	cfg.RecordingsDir = t.TempDir()
	ctx := newAppContext(cfg)

	if err := ctx.Server.dispatchCommand(wsCommand{Type: "MakeCoffee"}); err == nil {
		t.Errorf("An unknown command was dispatched without error")
	}
}

func Test_sharedRecorder(t *testing.T) {
	dir := t.TempDir()
	can := testCanvas(testConfig())

	shared := &sharedRecorder{}
	open := func() (*canvasRecorder, error) {
		return can.newCanvasRecorder(dir, "session")
	}

	first := shared.acquire(open)
	if first == nil {
		t.Fatalf("Can't open shared recording")
	}

	second := shared.acquire(open)
	if second != first {
		t.Errorf("Second client got its own recording, want the shared one")
	}

	shared.release()
	if first.Closed {
		t.Errorf("Recording was closed while a client still holds it")
	}

	shared.release()
	if !first.Closed {
		t.Errorf("Recording stays open after the last release")
	}

	third := shared.acquire(open)
	if third == first {
		t.Errorf("New span of clients got the closed recording, want a fresh one")
	}
	shared.release()
}
