package model

// DefaultLocation is the sentinel location id for messages posted to the
// chat's default stream rather than a forum topic. Location ids are opaque
// strings to everything below the transport layer.
const DefaultLocation = "general"

// InboundMessage is one text message as seen by the moderation engine.
type InboundMessage struct {
	ChatID    int64
	UserID    int64
	Username  string
	MessageID int
	Location  string
	Text      string
}
