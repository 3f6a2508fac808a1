package app

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/HiteshJha1/telegram-keyword-bot/internal/domain/model"
	"github.com/HiteshJha1/telegram-keyword-bot/internal/ui"
)

func (a *App) routeUpdate(ctx context.Context, update *models.Update) {
	if update == nil || update.Message == nil {
		return
	}
	msg := update.Message
	if msg.From == nil || msg.Text == "" {
		return
	}

	if command, args, ok := parseCommand(msg.Text); ok {
		a.routeCommand(ctx, msg, command, args)
		return
	}
	a.handleChatMessage(ctx, msg)
}

func (a *App) routeCommand(ctx context.Context, msg *models.Message, command string, args []string) {
	switch command {
	case "start":
		a.reply(ctx, msg, ui.StartMessage())
		return
	case "help":
		a.reply(ctx, msg, ui.HelpMessage())
		return
	case "forceaddadmin":
		a.handleForceAddAdmin(ctx, msg, args)
		return
	}

	handler, known := map[string]func(context.Context, *models.Message, []string){
		"add_keyword":    a.handleAddKeyword,
		"remove_keyword": a.handleRemoveKeyword,
		"list_keywords":  a.handleListKeywords,
		"add_admin":      a.handleAddAdmin,
		"remove_admin":   a.handleRemoveAdmin,
		"list_admins":    a.handleListAdmins,
		"unmute":         a.handleUnmute,
		"list_mutes":     a.handleListMutes,
	}[command]
	if !known {
		return
	}

	if !a.accessService.IsBotAdmin(msg.From.ID) {
		a.logger.Info("command rejected",
			"command", command, "chat_id", msg.Chat.ID, "user_id", msg.From.ID)
		a.reply(ctx, msg, ui.NotAuthorized())
		return
	}
	handler(ctx, msg, args)
}

func (a *App) handleChatMessage(ctx context.Context, msg *models.Message) {
	threadID := 0
	if msg.IsTopicMessage {
		threadID = msg.MessageThreadID
	}
	inbound := model.InboundMessage{
		ChatID:    msg.Chat.ID,
		UserID:    msg.From.ID,
		Username:  displayName(msg.From),
		MessageID: msg.ID,
		Location:  locationFromThread(threadID),
		Text:      msg.Text,
	}
	a.engineService.OnMessage(ctx, inbound)
}

func (a *App) handleAddKeyword(ctx context.Context, msg *models.Message, args []string) {
	if len(args) < 2 {
		a.reply(ctx, msg, ui.UsageAddKeyword())
		return
	}
	location, ok := parseLocationArg(args[0])
	if !ok {
		a.reply(ctx, msg, ui.InvalidTopicID())
		return
	}

	keyword, added, err := a.keywordService.Add(msg.Chat.ID, location, strings.Join(args[1:], " "))
	if err != nil {
		a.logger.Error("add keyword", "error", err, "chat_id", msg.Chat.ID, "location", location)
		a.reply(ctx, msg, ui.InternalError())
		return
	}
	if !added {
		a.reply(ctx, msg, ui.KeywordExists(keyword, location))
		return
	}
	a.reply(ctx, msg, ui.KeywordAdded(keyword, location))
}

func (a *App) handleRemoveKeyword(ctx context.Context, msg *models.Message, args []string) {
	if len(args) < 2 {
		a.reply(ctx, msg, ui.UsageRemoveKeyword())
		return
	}
	location, ok := parseLocationArg(args[0])
	if !ok {
		a.reply(ctx, msg, ui.InvalidTopicID())
		return
	}

	keyword, removed, err := a.keywordService.Remove(msg.Chat.ID, location, strings.Join(args[1:], " "))
	if err != nil {
		a.logger.Error("remove keyword", "error", err, "chat_id", msg.Chat.ID, "location", location)
		a.reply(ctx, msg, ui.InternalError())
		return
	}
	if !removed {
		a.reply(ctx, msg, ui.KeywordNotFound(keyword, location))
		return
	}
	a.reply(ctx, msg, ui.KeywordRemoved(keyword, location))
}

func (a *App) handleListKeywords(ctx context.Context, msg *models.Message, args []string) {
	if len(args) > 0 {
		location, ok := parseLocationArg(args[0])
		if !ok {
			a.reply(ctx, msg, ui.InvalidTopicID())
			return
		}
		configured := a.keywordService.KeywordsFor(msg.Chat.ID, location)
		if len(configured) == 0 {
			a.reply(ctx, msg, ui.NoKeywordsForLocation(location))
			return
		}
		a.reply(ctx, msg, ui.RenderLocationKeywords(location, configured))
		return
	}

	byLocation := a.keywordService.List(msg.Chat.ID)
	if len(byLocation) == 0 {
		a.reply(ctx, msg, ui.NoKeywords())
		return
	}
	a.reply(ctx, msg, ui.RenderAllKeywords(byLocation))
}

func (a *App) handleAddAdmin(ctx context.Context, msg *models.Message, args []string) {
	if len(args) != 1 {
		a.reply(ctx, msg, ui.UsageAddAdmin())
		return
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		a.reply(ctx, msg, ui.InvalidUserID())
		return
	}

	added, err := a.accessService.AddAdmin(userID)
	if err != nil {
		a.logger.Error("add admin", "error", err, "user_id", userID)
		a.reply(ctx, msg, ui.InternalError())
		return
	}
	if !added {
		a.reply(ctx, msg, ui.AdminExists(userID))
		return
	}
	a.reply(ctx, msg, ui.AdminAdded(userID))
}

// handleForceAddAdmin is the bootstrap path: only the configured owner may
// use it, which lets the first admin be seeded before any admin exists.
func (a *App) handleForceAddAdmin(ctx context.Context, msg *models.Message, args []string) {
	if a.cfg.OwnerTGID == 0 || msg.From.ID != a.cfg.OwnerTGID {
		a.reply(ctx, msg, ui.NotAuthorized())
		return
	}
	if len(args) != 1 {
		a.reply(ctx, msg, ui.UsageForceAddAdmin())
		return
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		a.reply(ctx, msg, ui.InvalidUserID())
		return
	}

	added, err := a.accessService.AddAdmin(userID)
	if err != nil {
		a.logger.Error("force add admin", "error", err, "user_id", userID)
		a.reply(ctx, msg, ui.InternalError())
		return
	}
	if !added {
		a.reply(ctx, msg, ui.AdminExists(userID))
		return
	}
	a.reply(ctx, msg, ui.AdminAdded(userID))
}

func (a *App) handleRemoveAdmin(ctx context.Context, msg *models.Message, args []string) {
	if len(args) != 1 {
		a.reply(ctx, msg, ui.UsageRemoveAdmin())
		return
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		a.reply(ctx, msg, ui.InvalidUserID())
		return
	}

	removed, err := a.accessService.RemoveAdmin(userID)
	if err != nil {
		a.logger.Error("remove admin", "error", err, "user_id", userID)
		a.reply(ctx, msg, ui.InternalError())
		return
	}
	if !removed {
		a.reply(ctx, msg, ui.AdminNotFound(userID))
		return
	}
	a.reply(ctx, msg, ui.AdminRemoved(userID))
}

func (a *App) handleListAdmins(ctx context.Context, msg *models.Message, _ []string) {
	admins := a.accessService.ListAdmins()
	if len(admins) == 0 {
		a.reply(ctx, msg, ui.NoAdmins())
		return
	}
	a.reply(ctx, msg, ui.RenderAdmins(admins))
}

func (a *App) handleUnmute(ctx context.Context, msg *models.Message, args []string) {
	if len(args) != 1 {
		a.reply(ctx, msg, ui.UsageUnmute())
		return
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		a.reply(ctx, msg, ui.InvalidUserID())
		return
	}

	wasMuted, err := a.muteService.Unmute(ctx, msg.Chat.ID, userID)
	if err != nil {
		a.logger.Error("unmute", "error", err, "chat_id", msg.Chat.ID, "user_id", userID)
		a.reply(ctx, msg, ui.UnmuteFailed(userID))
		return
	}
	if !wasMuted {
		a.reply(ctx, msg, ui.NotMuted(userID))
		return
	}
	a.reply(ctx, msg, ui.Unmuted(userID))
}

func (a *App) handleListMutes(ctx context.Context, msg *models.Message, _ []string) {
	active := a.muteService.Active(msg.Chat.ID)
	if len(active) == 0 {
		a.reply(ctx, msg, ui.NoMutes())
		return
	}
	a.reply(ctx, msg, ui.RenderMutes(active))
}

func (a *App) reply(ctx context.Context, msg *models.Message, text string) {
	threadID := 0
	if msg.IsTopicMessage {
		threadID = msg.MessageThreadID
	}
	if err := a.tg.SendText(ctx, msg.Chat.ID, threadID, text); err != nil {
		a.logger.Warn("send reply", "error", err, "chat_id", msg.Chat.ID)
	}
}

// parseCommand splits "/cmd@BotName arg1 arg2" into the bare command name
// and its arguments. Non-command text reports ok=false.
func parseCommand(text string) (string, []string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil, false
	}
	command := strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(command, "@"); at >= 0 {
		command = command[:at]
	}
	if command == "" {
		return "", nil, false
	}
	return strings.ToLower(command), fields[1:], true
}

// parseLocationArg accepts a numeric topic id or the main-stream name.
func parseLocationArg(raw string) (string, bool) {
	arg := strings.ToLower(strings.TrimSpace(raw))
	if arg == model.DefaultLocation {
		return model.DefaultLocation, true
	}
	if _, err := strconv.Atoi(arg); err != nil {
		return "", false
	}
	return arg, true
}

// locationFromThread maps a Telegram message thread id to a stored
// location name; thread id 0 is the chat's main stream.
func locationFromThread(threadID int) string {
	if threadID == 0 {
		return model.DefaultLocation
	}
	return strconv.Itoa(threadID)
}

// locationThreadID is the inverse mapping for outbound messages.
func locationThreadID(location string) int {
	if location == model.DefaultLocation {
		return 0
	}
	threadID, err := strconv.Atoi(location)
	if err != nil {
		return 0
	}
	return threadID
}

func displayName(user *models.User) string {
	if user == nil {
		return ""
	}
	if user.Username != "" {
		return "@" + user.Username
	}
	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}
