package domain

// Inbound command names sent by the rendering surface.
const (
	CommandStartDebugServer      = "startDebugServer"
	CommandStopDebugServer       = "stopDebugServer"
	CommandRefreshSmartContracts = "refreshSmartContracts"
	CommandBuildSmartContract    = "buildSmartContract"
	CommandDeploySmartContract   = "deploySmartContract"
	CommandRunSmartContract      = "runSmartContract"
)

// MessageRefreshSmartContracts tags the outbound contract snapshot.
const MessageRefreshSmartContracts = "refreshSmartContracts"

// Command is the envelope the rendering surface sends to the bridge.
type Command struct {
	Command string      `json:"command"`
	ID      string      `json:"id,omitempty"`
	Sender  string      `json:"sender,omitempty"`
	Options *RunOptions `json:"options,omitempty"`
}

// Message is the envelope the bridge posts to the rendering surface.
type Message struct {
	What string `json:"what"`
	Data any    `json:"data"`
}
