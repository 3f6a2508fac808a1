package model

import (
	"fmt"
	"strconv"
	"strings"
)

// MuteKey identifies an active mute. There is at most one mute per key;
// a repeated mute replaces the expiry instead of stacking.
type MuteKey struct {
	ChatID int64
	UserID int64
}

// String renders the key in the snapshot wire form "{chat}_{user}".
func (k MuteKey) String() string {
	return fmt.Sprintf("%d_%d", k.ChatID, k.UserID)
}

// ParseMuteKey parses the "{chat}_{user}" wire form. Chat ids may be
// negative (Telegram supergroups), so only the first underscore separates
// the two parts.
func ParseMuteKey(raw string) (MuteKey, error) {
	chatPart, userPart, ok := strings.Cut(raw, "_")
	if !ok {
		return MuteKey{}, fmt.Errorf("malformed mute key %q", raw)
	}
	chatID, err := strconv.ParseInt(chatPart, 10, 64)
	if err != nil {
		return MuteKey{}, fmt.Errorf("parse chat id in mute key %q: %w", raw, err)
	}
	userID, err := strconv.ParseInt(userPart, 10, 64)
	if err != nil {
		return MuteKey{}, fmt.Errorf("parse user id in mute key %q: %w", raw, err)
	}
	return MuteKey{ChatID: chatID, UserID: userID}, nil
}
