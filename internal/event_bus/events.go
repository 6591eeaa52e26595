package event_bus

const (
	SessionStartedEvent EventType = "session.started"
	SessionEndedEvent   EventType = "session.ended"
)

// SessionChanged is published when the signed-in actor changes.
type SessionChanged struct {
	UserId  string
	IsAdmin bool
}
