package ui

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/HiteshJha1/telegram-keyword-bot/internal/domain/model"
)

func StartMessage() string {
	return "🤖 <b>Topic Keyword Filter Bot</b>\n\n" +
		"I delete messages containing configured keywords in designated topics " +
		"and mute the sender for a while.\n\n" +
		"Use /help to see available commands."
}

func HelpMessage() string {
	return strings.Join([]string{
		"🤖 <b>Topic Keyword Filter Bot Commands:</b>",
		"",
		"<b>For bot admins:</b>",
		"• /add_keyword &lt;topic_id&gt; &lt;keyword&gt; - Add a keyword to filter in a topic",
		"• /remove_keyword &lt;topic_id&gt; &lt;keyword&gt; - Remove a keyword from a topic",
		"• /list_keywords [topic_id] - List keywords (all or specific topic)",
		"• /add_admin &lt;user_id&gt; - Add a user as bot admin",
		"• /remove_admin &lt;user_id&gt; - Remove a bot admin",
		"• /list_admins - Show all bot admins",
		"• /unmute &lt;user_id&gt; - Lift a mute early",
		"• /list_mutes - Show active mutes in this chat",
		"",
		"<b>Notes:</b>",
		"• The bot must be a chat admin with delete and restrict permissions",
		"• Keywords are case-insensitive",
		"• Use the topic_id from the Telegram topic URL, or '" + model.DefaultLocation + "' for the main stream",
	}, "\n")
}

func NotAuthorized() string {
	return "❌ Only bot admins can use this command."
}

func InternalError() string {
	return "❌ Something went wrong, please try again."
}

func InvalidTopicID() string {
	return "❌ Topic ID must be a number or '" + model.DefaultLocation + "'."
}

func InvalidUserID() string {
	return "❌ User ID must be a number."
}

func UsageAddKeyword() string {
	return "❌ Usage: /add_keyword <topic_id> <keyword>"
}

func UsageRemoveKeyword() string {
	return "❌ Usage: /remove_keyword <topic_id> <keyword>"
}

func UsageAddAdmin() string {
	return "❌ Usage: /add_admin <user_id>"
}

func UsageForceAddAdmin() string {
	return "❌ Usage: /forceaddadmin <user_id>"
}

func UsageRemoveAdmin() string {
	return "❌ Usage: /remove_admin <user_id>"
}

func UsageUnmute() string {
	return "❌ Usage: /unmute <user_id>"
}

func KeywordAdded(keyword, location string) string {
	return fmt.Sprintf("✅ Added keyword '%s' to %s.", html.EscapeString(keyword), topicLabel(location))
}

func KeywordExists(keyword, location string) string {
	return fmt.Sprintf("⚠️ Keyword '%s' already exists in %s.", html.EscapeString(keyword), topicLabel(location))
}

func KeywordRemoved(keyword, location string) string {
	return fmt.Sprintf("✅ Removed keyword '%s' from %s.", html.EscapeString(keyword), topicLabel(location))
}

func KeywordNotFound(keyword, location string) string {
	return fmt.Sprintf("❌ Keyword '%s' not found in %s.", html.EscapeString(keyword), topicLabel(location))
}

func NoKeywords() string {
	return "❌ No keywords configured for this chat."
}

func NoKeywordsForLocation(location string) string {
	return fmt.Sprintf("❌ No keywords found for %s.", topicLabel(location))
}

func RenderLocationKeywords(location string, keywords []string) string {
	lines := make([]string, 0, len(keywords)+1)
	lines = append(lines, fmt.Sprintf("🔍 <b>Keywords for %s:</b>", topicLabel(location)))
	for _, keyword := range keywords {
		lines = append(lines, "• "+html.EscapeString(keyword))
	}
	return strings.Join(lines, "\n")
}

func RenderAllKeywords(byLocation map[string][]string) string {
	lines := []string{"🔍 <b>All Keywords:</b>", ""}
	for _, location := range sortLocations(byLocation) {
		escaped := make([]string, 0, len(byLocation[location]))
		for _, keyword := range byLocation[location] {
			escaped = append(escaped, html.EscapeString(keyword))
		}
		lines = append(lines, fmt.Sprintf("<b>%s:</b> %s",
			capitalizedTopicLabel(location), strings.Join(escaped, ", ")))
	}
	return strings.Join(lines, "\n")
}

func AdminAdded(userID int64) string {
	return fmt.Sprintf("✅ Added user %d as admin.", userID)
}

func AdminExists(userID int64) string {
	return fmt.Sprintf("⚠️ User %d is already an admin.", userID)
}

func AdminRemoved(userID int64) string {
	return fmt.Sprintf("✅ Removed user %d from admins.", userID)
}

func AdminNotFound(userID int64) string {
	return fmt.Sprintf("❌ User %d is not an admin.", userID)
}

func NoAdmins() string {
	return "❌ No admins configured."
}

func RenderAdmins(userIDs []int64) string {
	lines := make([]string, 0, len(userIDs)+1)
	lines = append(lines, "👥 <b>Bot Admins:</b>")
	for _, userID := range userIDs {
		lines = append(lines, fmt.Sprintf("• %d", userID))
	}
	return strings.Join(lines, "\n")
}

func UserMuted(username string, userID int64, until time.Time) string {
	return fmt.Sprintf("🔇 Muted %s until %s for posting a filtered keyword.",
		userRef(username, userID), until.UTC().Format("2006-01-02 15:04 MST"))
}

func MuteFailed(username string, userID int64) string {
	return fmt.Sprintf("⚠️ Detected a filtered keyword from %s but could not apply a mute.",
		userRef(username, userID))
}

func Unmuted(userID int64) string {
	return fmt.Sprintf("✅ Unmuted user %d.", userID)
}

func NotMuted(userID int64) string {
	return fmt.Sprintf("⚠️ User %d is not muted; restrictions were lifted just in case.", userID)
}

func UnmuteFailed(userID int64) string {
	return fmt.Sprintf("❌ Failed to unmute user %d.", userID)
}

func NoMutes() string {
	return "✅ No active mutes in this chat."
}

func RenderMutes(remaining map[int64]time.Duration) string {
	userIDs := make([]int64, 0, len(remaining))
	for userID := range remaining {
		userIDs = append(userIDs, userID)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	lines := make([]string, 0, len(userIDs)+1)
	lines = append(lines, "🔇 <b>Active Mutes:</b>")
	for _, userID := range userIDs {
		lines = append(lines, fmt.Sprintf("• %d - %s left", userID, FormatDuration(remaining[userID])))
	}
	return strings.Join(lines, "\n")
}

// FormatDuration renders a remaining duration in the largest two units.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	seconds := int(d % time.Minute / time.Second)
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

func userRef(username string, userID int64) string {
	if strings.TrimSpace(username) != "" {
		return html.EscapeString(username)
	}
	return fmt.Sprintf("user %d", userID)
}

func topicLabel(location string) string {
	if location == model.DefaultLocation {
		return "the main stream"
	}
	return "topic " + location
}

func capitalizedTopicLabel(location string) string {
	if location == model.DefaultLocation {
		return "Main stream"
	}
	return "Topic " + location
}
