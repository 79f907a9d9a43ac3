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
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	rice "github.com/GeertJohan/go.rice"
	"github.com/gorilla/websocket"
)

// The browser front end mirrors the canvas model from JSON events pushed
// over a websocket. Every connected client is a canvas listener.

// appContext owns the application singletons and hands them to whoever
// needs them. Nothing lives in ambient global state.
type appContext struct {
	Config *config
	Canvas *canvas
	Server *canvasServer
}

func newAppContext(cfg *config) *appContext {
	ctx := &appContext{
		Config: cfg,
	}

	ctx.Server = newCanvasServer(ctx)
	ctx.Canvas = newCanvas(cfg, ctx.Server, ctx.Server)

	return ctx
}

type canvasServer struct {
	ctx *appContext

	upgrader websocket.Upgrader

	ClientsMutex sync.Mutex
	Clients      map[*wsClient]struct{}

	// One recording per span of connected clients
	recorder sharedRecorder
}

func newCanvasServer(ctx *appContext) *canvasServer {
	return &canvasServer{
		ctx:      ctx,
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		Clients:  map[*wsClient]struct{}{},
	}
}

func (srv *canvasServer) run() error {
	mux := http.NewServeMux()

	mux.Handle("/", http.FileServer(rice.MustFindBox("ui").HTTPBox()))
	mux.HandleFunc("/ws", srv.handleWebsocket)
	mux.HandleFunc("/save", srv.handleSave)
	mux.HandleFunc("/load", srv.handleLoad)
	mux.HandleFunc("/export", srv.handleExport)

	log.Infof("Listening on http://%v", srv.ctx.Config.ListenAddress)

	return http.ListenAndServe(srv.ctx.Config.ListenAddress, mux)
}

// Pushes one JSON event to every connected client.
func (srv *canvasServer) broadcastEvent(event interface{}) {
	b, err := json.Marshal(event)
	if err != nil {
		log.Errorf("Can't marshal event %T: %v", event, err)
		return
	}

	srv.ClientsMutex.Lock()
	defer srv.ClientsMutex.Unlock()

	for client := range srv.Clients {
		client.enqueue(b)
	}
}

// The progress indicator and the modal dialog live in the front end, the
// server side just tells it when to show them.
func (srv *canvasServer) show() error {
	srv.broadcastEvent(struct{ Type string }{"ShowSpinner"})
	return nil
}

func (srv *canvasServer) hide() error {
	srv.broadcastEvent(struct{ Type string }{"HideSpinner"})
	return nil
}

func (srv *canvasServer) open(context, kind string) {
	srv.broadcastEvent(struct {
		Type    string
		Context string
		Kind    string
	}{"OpenModal", context, kind})
}

// wsClient forwards canvas events to one browser over its websocket.
type wsClient struct {
	srv  *canvasServer
	conn *websocket.Conn

	send chan []byte
}

func (c *wsClient) enqueue(message []byte) {
	select {
	case c.send <- message:
	default:
		log.Warnf("Client %v is too slow, dropping event", c.conn.RemoteAddr())
	}
}

func (c *wsClient) sendEvent(event interface{}) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("Can't marshal event %T: %v", event, err)
	}

	c.enqueue(b)

	return nil
}

func (c *wsClient) handleSetPixel(x, y int, col cellColor) error {
	return c.sendEvent(struct {
		Type  string
		X, Y  int
		Color string
	}{"SetPixel", x, y, string(col)})
}

func (c *wsClient) handleSetGrid(g *grid) error {
	return c.sendEvent(struct {
		Type          string
		Width, Height int
		Cells         [][]cellColor
	}{"SetGrid", g.Width, g.Height, g.Cells})
}

func (c *wsClient) handleReset() error {
	return c.sendEvent(struct{ Type string }{"Reset"})
}

func (c *wsClient) handleDelete() error {
	return c.sendEvent(struct{ Type string }{"Delete"})
}

func (c *wsClient) handleSizing(s sizing) error {
	return c.sendEvent(struct {
		Type   string
		Sizing sizing
	}{"Sizing", s})
}

// Commands the front end sends over the websocket.
type wsCommand struct {
	Type          string
	X, Y          int
	Color         string
	Width, Height int
}

func (srv *canvasServer) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("Can't upgrade websocket connection: %v", err)
		return
	}

	client := &wsClient{
		srv:  srv,
		conn: conn,
		send: make(chan []byte, 256),
	}

	srv.ClientsMutex.Lock()
	srv.Clients[client] = struct{}{}
	srv.ClientsMutex.Unlock()

	srv.ctx.Canvas.subscribeListener(client)

	srv.recorder.acquire(func() (*canvasRecorder, error) {
		return srv.ctx.Canvas.newCanvasRecorder(srv.ctx.Config.RecordingsDir, "session")
	})

	// Writer goroutine, the only place that writes to the connection
	go func() {
		for message := range client.send {
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Debugf("Can't write to client %v: %v", conn.RemoteAddr(), err)
				return
			}
		}
	}()

	defer func() {
		srv.recorder.release()

		srv.ctx.Canvas.unsubscribeListener(client)

		srv.ClientsMutex.Lock()
		delete(srv.Clients, client)
		srv.ClientsMutex.Unlock()

		close(client.send)
		conn.Close()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Debugf("Client %v disconnected: %v", conn.RemoteAddr(), err)
			return
		}

		command := wsCommand{}
		if err := json.Unmarshal(message, &command); err != nil {
			log.Warnf("Invalid command from %v: %v", conn.RemoteAddr(), err)
			continue
		}

		if err := srv.dispatchCommand(command); err != nil {
			client.sendEvent(struct {
				Type    string
				Message string
			}{"Error", err.Error()})
		}
	}
}

func (srv *canvasServer) dispatchCommand(command wsCommand) error {
	can := srv.ctx.Canvas

	switch command.Type {
	case "Create":
		return can.createWithProgress(command.Width, command.Height)
	case "SetPixel":
		return can.setPixel(command.X, command.Y, cellColor(command.Color))
	case "Reset":
		can.reset()
		return nil
	case "Delete":
		can.delete()
		return nil
	case "ConfirmLoad":
		return can.confirmLoad()
	case "DiscardLoad":
		can.discardPendingLoad()
		return nil
	case "Replay":
		return srv.replaySession()
	}

	return fmt.Errorf("unknown command %q", command.Type)
}

// Plays the newest recorded session back into the canvas.
// The events run through the regular listener broadcast, so connected
// clients watch the drawing come back.
func (srv *canvasServer) replaySession() error {
	replayer, err := newCanvasReplayer(srv.ctx.Config.RecordingsDir, "session")
	if err != nil {
		return err
	}

	return replayer.replayInto(srv.ctx.Canvas)
}

// Streams the current document as a browser download with the fixed name.
func (srv *canvasServer) handleSave(w http.ResponseWriter, r *http.Request) {
	saver := &httpSaver{w: w}
	if err := srv.ctx.Canvas.save(saver); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
	}
}

// Takes a .pix upload and loads it into the canvas.
// Each request carries its own file, there is no input control to reset.
func (srv *canvasServer) handleLoad(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, fmt.Sprintf("%v: %v", errCanvasLoadError, err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := srv.ctx.Canvas.load(file); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func (srv *canvasServer) handleExport(w http.ResponseWriter, r *http.Request) {
	saver := &httpSaver{w: w}
	if err := srv.ctx.Canvas.export(saver); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
	}
}

// httpSaver turns a fileSaver call into a browser download response.
type httpSaver struct {
	w http.ResponseWriter
}

func (hs *httpSaver) save(fileName string, data []byte) error {
	hs.w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	hs.w.Header().Set("Content-Type", "application/octet-stream")

	if _, err := hs.w.Write(data); err != nil {
		return fmt.Errorf("Can't write response: %v", err)
	}

	return nil
}
