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
	"sync"
)

// sharedRecorder hands one session recording to any number of clients.
// The recording runs while at least one client holds it, and a fresh one
// starts when all clients left and a new one shows up.
type sharedRecorder struct {
	sync.Mutex

	recorder *canvasRecorder
	counter  int
}

// Returns the shared recording, opening a new one when nobody holds one.
// When opening fails the slot stays empty until the last holder releases,
// the failure is logged and not retried for this span of clients.
func (s *sharedRecorder) acquire(open func() (*canvasRecorder, error)) *canvasRecorder {
	s.Lock()
	defer s.Unlock()

	if s.counter > 0 {
		s.counter++
		return s.recorder
	}

	recorder, err := open()
	if err != nil {
		log.Errorf("Can't record drawing session: %v", err)
		recorder = nil
	}

	s.recorder = recorder
	s.counter = 1

	return s.recorder
}

// Releases one hold. The last release closes the recording.
func (s *sharedRecorder) release() {
	s.Lock()
	defer s.Unlock()

	if s.counter <= 0 {
		panic("Releasing a recording that nobody holds")
	}

	s.counter--

	if s.counter == 0 && s.recorder != nil {
		s.recorder.Close()
		s.recorder = nil
	}
}
