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
	"io"
	"os"
	"path/filepath"
	"time"

	gzip "github.com/klauspost/pgzip"
)

// canvasReplayer reads a .pixrec recording and plays the drawing events
// back into a canvas, in recorded order.
type canvasReplayer struct {
	FilePath string

	StartTime     time.Time
	Width, Height int
}

func parseRecordingHeader(r io.Reader) (time.Time, int, int, error) {
	var dat struct {
		MagicNumber   uint32
		Version       uint16 // File format version
		Time          int64
		Width, Height uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &dat); err != nil {
		return time.Time{}, 0, 0, fmt.Errorf("Error while reading file: %v", err)
	}

	if dat.MagicNumber != recordingMagicNumber {
		return time.Time{}, 0, 0, fmt.Errorf("Wrong file format")
	}

	if dat.Version > recordingVersion {
		return time.Time{}, 0, 0, fmt.Errorf("Version is newer")
	}

	return time.Unix(0, dat.Time), int(dat.Width), int(dat.Height), nil
}

// Opens the newest recording in the given session directory.
func newCanvasReplayer(dir, name string) (*canvasReplayer, error) {
	fileDirectory := filepath.Join(dir, name)
	entries, err := os.ReadDir(fileDirectory)
	if err != nil {
		return nil, fmt.Errorf("Can't read from %v", fileDirectory)
	}

	files := []string{}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".pixrec" {
			files = append(files, entry.Name())
		}
	}

	if len(files) <= 0 {
		return nil, fmt.Errorf("Can't find any recordings in %v", fileDirectory)
	}

	// Timestamped names sort chronologically
	return openRecording(filepath.Join(fileDirectory, files[len(files)-1]))
}

func openRecording(filePath string) (*canvasReplayer, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("Can't open recording %v", filePath)
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("Can't initialize gzip reader for %v: %v", filePath, err)
	}
	defer zipReader.Close()

	startTime, width, height, err := parseRecordingHeader(zipReader)
	if err != nil {
		return nil, err
	}

	return &canvasReplayer{
		FilePath:  filePath,
		StartTime: startTime,
		Width:     width,
		Height:    height,
	}, nil
}

// Replays all recorded events into the given canvas.
// The canvas ends up in the exact state the recorded session ended in.
func (cr *canvasReplayer) replayInto(can *canvas) error {
	file, err := os.Open(cr.FilePath)
	if err != nil {
		return fmt.Errorf("Can't open recording %v", cr.FilePath)
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("Can't initialize gzip reader for %v: %v", cr.FilePath, err)
	}
	defer zipReader.Close()

	if _, _, _, err := parseRecordingHeader(zipReader); err != nil {
		return err
	}

	for {
		var dataType uint8
		var binTime int64
		if err := binary.Read(zipReader, binary.LittleEndian, &dataType); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("Error while reading file %v: %v", cr.FilePath, err)
		}
		if err := binary.Read(zipReader, binary.LittleEndian, &binTime); err != nil {
			return fmt.Errorf("Error while reading file %v: %v", cr.FilePath, err)
		}

		switch dataType {
		case recordSetPixel:
			var dat struct {
				X, Y     int32
				ColorLen uint16
			}
			if err := binary.Read(zipReader, binary.LittleEndian, &dat); err != nil {
				return fmt.Errorf("Error while reading file %v: %v", cr.FilePath, err)
			}
			rawColor := make([]byte, dat.ColorLen)
			if _, err := io.ReadFull(zipReader, rawColor); err != nil {
				return fmt.Errorf("Error while reading file %v: %v", cr.FilePath, err)
			}
			if err := can.setPixel(int(dat.X), int(dat.Y), cellColor(rawColor)); err != nil {
				log.Warnf("Can't replay pixel (%v, %v): %v", dat.X, dat.Y, err)
			}

		case recordSetGrid:
			var dat struct {
				Width, Height uint32
				Size          uint32
			}
			if err := binary.Read(zipReader, binary.LittleEndian, &dat); err != nil {
				return fmt.Errorf("Error while reading file %v: %v", cr.FilePath, err)
			}
			rawDocument := make([]byte, dat.Size)
			if _, err := io.ReadFull(zipReader, rawDocument); err != nil {
				return fmt.Errorf("Error while reading file %v: %v", cr.FilePath, err)
			}
			g, err := parseDocument(rawDocument)
			if err != nil {
				return fmt.Errorf("Invalid grid document in %v: %v", cr.FilePath, err)
			}
			can.Lock()
			can.applyGridLocked(g)
			can.Unlock()

		case recordReset:
			can.reset()

		case recordDelete:
			can.delete()

		default:
			return fmt.Errorf("Found invalid data type %v in %v", dataType, cr.FilePath)
		}
	}
}
