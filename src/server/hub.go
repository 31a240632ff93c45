package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"index-observer/src/helpers"
	"index-observer/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// clientCommand is a parsed message waiting for the hub.
type clientCommand struct {
	client *Client
	cmd    models.MSelectCommand
	err    error // set when the frame was not valid JSON
}

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// runHub owns the client set and every client's selection. Selection
// commands and reload refreshes are served in arrival order against the
// snapshot live at that moment, so a client always ends on the newest view.
func (s *APIServer) runHub() {
	for {
		select {
		case <-s.done:
			for client := range s.clients {
				s.drop(client)
			}
			return

		case client := <-s.register:
			s.clients[client] = struct{}{}
			s.setConnections(len(s.clients))
			s.deliver(client, s.indicesMessage())

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				s.drop(client)
			}

		case in := <-s.commands:
			if _, ok := s.clients[in.client]; !ok {
				continue
			}
			if in.err != nil {
				s.deliver(in.client, errorMessage(helpers.NewValidationError("malformed command", in.err)))
				continue
			}
			s.handleCommand(in.client, in.cmd)

		case <-s.reloaded:
			s.refreshClients()
		}
	}
}

// -----------------------------------------------------------------------------

func (s *APIServer) handleCommand(client *Client, cmd models.MSelectCommand) {
	switch cmd.Command {
	case models.CommandSelect:
		rng := s.selectedRange(cmd.Range)
		msg := s.viewMessage(cmd.Index, rng)

		client.index, client.rng, client.selected = cmd.Index, rng, true
		if msg.View != nil {
			client.index = msg.View.Index
		}
		s.deliver(client, msg)

	case models.CommandIndices:
		s.deliver(client, s.indicesMessage())

	default:
		s.deliver(client, errorMessage(helpers.NewValidationError(fmt.Sprintf("unknown command %q", cmd.Command), nil)))
	}
}

// -----------------------------------------------------------------------------

func (s *APIServer) refreshClients() {
	indices := s.indicesMessage()
	for client := range s.clients {
		if !client.selected {
			s.deliver(client, indices)
			continue
		}
		s.deliver(client, s.viewMessage(client.index, client.rng))
	}
}

// -----------------------------------------------------------------------------

// deliver never blocks the hub: a client whose buffer is full is dropped.
func (s *APIServer) deliver(client *Client, msg *models.MViewMessage) {
	select {
	case client.send <- msg:
	default:
		s.Logger.Warning("Client send buffer full, disconnecting")
		s.drop(client)
	}
}

func (s *APIServer) drop(client *Client) {
	delete(s.clients, client)
	close(client.send)
	s.setConnections(len(s.clients))
}

func (s *APIServer) setConnections(n int) {
	s.connMutex.Lock()
	s.connections = n
	s.connMutex.Unlock()
}

// -----------------------------------------------------------------------------

func (s *APIServer) viewMessage(index string, rng models.MRange) *models.MViewMessage {
	view, err := s.view(index, rng)
	if err != nil {
		return errorMessage(err)
	}
	return &models.MViewMessage{Type: models.MessageView, View: view}
}

func (s *APIServer) indicesMessage() *models.MViewMessage {
	ds := s.Data.Current()
	if ds == nil {
		return errorMessage(helpers.ErrEmptyDataset)
	}
	return &models.MViewMessage{Type: models.MessageIndices, Indices: ds.Indices}
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *APIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Warning("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan *models.MViewMessage, 64),
	}

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

// HandleClientMessage parses one client frame and queues it for the hub.
func (s *APIServer) HandleClientMessage(client *Client, message []byte) {
	in := clientCommand{client: client}
	if err := json.Unmarshal(message, &in.cmd); err != nil {
		s.Logger.Warning("Failed to parse client command: %v", err)
		in.err = err
	}

	select {
	case s.commands <- in:
	case <-s.done:
	}
}
