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
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	gzip "github.com/klauspost/pgzip"
)

// Recording file format (.pixrec): gzip compressed stream of a header
// followed by timestamped drawing events, little endian.
const (
	recordingMagicNumber = 1381517648 // ASCII "PIXR" in little endian
	recordingVersion     = 1

	recordSetPixel uint8 = 10
	recordReset    uint8 = 20
	recordDelete   uint8 = 21
	recordSetGrid  uint8 = 30
)

// canvasRecorder subscribes to a canvas and writes every drawing event to
// disk, so sessions can be replayed later.
type canvasRecorder struct {
	Closed      bool
	ClosedMutex sync.RWMutex

	Canvas *canvas

	File      *os.File
	ZipWriter *gzip.Writer
}

func (can *canvas) newCanvasRecorder(dir, name string) (*canvasRecorder, error) {
	cr := &canvasRecorder{
		Canvas: can,
	}

	re := regexp.MustCompile("[^a-zA-Z0-9\\-\\.]+")
	name = re.ReplaceAllString(name, "_")

	fileName := time.Now().UTC().Format("2006-01-02T150405") + ".pixrec" // Use RFC3339 like encoding, but with : removed
	fileDirectory := filepath.Join(dir, name)
	filePath := filepath.Join(fileDirectory, fileName)

	os.MkdirAll(fileDirectory, 0777)
	f, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("Can't create file %v: %v", filePath, err)
	}

	cr.File = f
	zipWriter, err := gzip.NewWriterLevel(f, gzip.DefaultCompression)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("Can't initialize compression %v: %v", filePath, err)
	}
	cr.ZipWriter = zipWriter

	cr.ZipWriter.Name = name
	cr.ZipWriter.Comment = "PixelArtMaker drawing session recording"

	err = binary.Write(cr.ZipWriter, binary.LittleEndian, struct {
		MagicNumber   uint32
		Version       uint16 // File format version
		Time          int64
		Width, Height uint32 // Grid dimensions at recording start, 0 when no grid exists yet
	}{
		MagicNumber: recordingMagicNumber,
		Version:     recordingVersion,
		Time:        time.Now().UnixNano(),
		Width:       uint32(can.Width),
		Height:      uint32(can.Height),
	})
	if err != nil {
		zipWriter.Close()
		f.Close()
		return nil, fmt.Errorf("Can't write to file %v: %v", filePath, err)
	}

	can.subscribeListener(cr)

	return cr, nil
}

func (cr *canvasRecorder) handleSetPixel(x, y int, col cellColor) error {
	cr.ClosedMutex.RLock()
	defer cr.ClosedMutex.RUnlock()
	if cr.Closed {
		return fmt.Errorf("Recorder is closed")
	}

	err := binary.Write(cr.ZipWriter, binary.LittleEndian, struct {
		DataType uint8
		Time     int64
		X, Y     int32
		ColorLen uint16 // Length of the color string in bytes
	}{
		DataType: recordSetPixel,
		Time:     time.Now().UnixNano(),
		X:        int32(x),
		Y:        int32(y),
		ColorLen: uint16(len(col)),
	})
	if err != nil {
		return fmt.Errorf("Can't write to file %v: %v", cr.File.Name(), err)
	}
	if _, err := cr.ZipWriter.Write([]byte(col)); err != nil {
		return fmt.Errorf("Can't write to file %v: %v", cr.File.Name(), err)
	}

	return nil
}

func (cr *canvasRecorder) handleSetGrid(g *grid) error {
	cr.ClosedMutex.RLock()
	defer cr.ClosedMutex.RUnlock()
	if cr.Closed {
		return fmt.Errorf("Recorder is closed")
	}

	document := serializeGrid(g)

	err := binary.Write(cr.ZipWriter, binary.LittleEndian, struct {
		DataType      uint8
		Time          int64
		Width, Height uint32
		Size          uint32 // Size of the serialized document in bytes
	}{
		DataType: recordSetGrid,
		Time:     time.Now().UnixNano(),
		Width:    uint32(g.Width),
		Height:   uint32(g.Height),
		Size:     uint32(len(document)),
	})
	if err != nil {
		return fmt.Errorf("Can't write to file %v: %v", cr.File.Name(), err)
	}
	if _, err := cr.ZipWriter.Write(document); err != nil {
		return fmt.Errorf("Can't write to file %v: %v", cr.File.Name(), err)
	}

	return nil
}

func (cr *canvasRecorder) handleReset() error {
	cr.ClosedMutex.RLock()
	defer cr.ClosedMutex.RUnlock()
	if cr.Closed {
		return fmt.Errorf("Recorder is closed")
	}

	err := binary.Write(cr.ZipWriter, binary.LittleEndian, struct {
		DataType uint8
		Time     int64
	}{
		DataType: recordReset,
		Time:     time.Now().UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("Can't write to file %v: %v", cr.File.Name(), err)
	}

	return nil
}

func (cr *canvasRecorder) handleDelete() error {
	cr.ClosedMutex.RLock()
	defer cr.ClosedMutex.RUnlock()
	if cr.Closed {
		return fmt.Errorf("Recorder is closed")
	}

	err := binary.Write(cr.ZipWriter, binary.LittleEndian, struct {
		DataType uint8
		Time     int64
	}{
		DataType: recordDelete,
		Time:     time.Now().UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("Can't write to file %v: %v", cr.File.Name(), err)
	}

	return nil
}

func (cr *canvasRecorder) handleSizing(s sizing) error {
	cr.ClosedMutex.RLock()
	defer cr.ClosedMutex.RUnlock()
	if cr.Closed {
		return fmt.Errorf("Recorder is closed")
	}

	// Sizing is derived state and gets recomputed on replay, nothing to write

	return nil
}

func (cr *canvasRecorder) Close() {
	cr.Canvas.unsubscribeListener(cr)

	cr.ClosedMutex.Lock()
	cr.Closed = true // Prevent any new events from happening
	cr.ClosedMutex.Unlock()

	cr.ZipWriter.Close()
	cr.File.Close()
}
