package models

// -----------------------------------------------------------------------------
// WebSocket messages
// -----------------------------------------------------------------------------

const (
	MessageView    = "VIEW"
	MessageIndices = "INDICES"
	MessageError   = "ERROR"

	CommandSelect  = "select"
	CommandIndices = "indices"
)

// MViewMessage is pushed to websocket clients.
type MViewMessage struct {
	Type    string      `json:"type"`
	View    *MViewModel `json:"view,omitempty"`
	Indices []string    `json:"indices,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// -----------------------------------------------------------------------------
// SelectCommand for client messages
// -----------------------------------------------------------------------------

// MSelectCommand is sent by a client whenever its selection changes.
type MSelectCommand struct {
	Command string `json:"command"`
	Index   string `json:"index"`
	Range   string `json:"range"`
}
