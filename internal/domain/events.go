package domain

// Topic names a channel of the event bus.
type Topic string

const (
	TopicDebuggerOutput Topic = "debugger:output"
	TopicDebuggerError  Topic = "debugger:error"
	TopicDebuggerClose  Topic = "debugger:close"
)

// DebuggerTopics are the lifecycle channels the bridge relays to the surface.
var DebuggerTopics = []Topic{TopicDebuggerOutput, TopicDebuggerError, TopicDebuggerClose}
