package model

import "time"

// Snapshot is the wire form of the durable state file: topic keyword lists
// per chat, the bot admin list and active mutes. Chat ids appear as decimal
// strings because they are JSON object keys; mutes are keyed
// "{chat}_{user}" with an RFC3339 UTC expiry.
type Snapshot struct {
	TopicKeywords map[string]map[string][]string `json:"topic_keywords"`
	AdminUsers    []int64                        `json:"admin_users"`
	MutedUsers    map[string]time.Time           `json:"muted_users"`
}

// NewSnapshot returns an empty snapshot with all collections allocated.
func NewSnapshot() Snapshot {
	return Snapshot{
		TopicKeywords: make(map[string]map[string][]string),
		AdminUsers:    []int64{},
		MutedUsers:    make(map[string]time.Time),
	}
}
