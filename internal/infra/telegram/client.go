package telegram

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type UpdateHandler func(ctx context.Context, update *models.Update)

// Client wraps the Telegram long-polling connection and implements the
// actuator interfaces the services consume: message deletion, restriction,
// the platform admin query and chat notifications. An empty token turns
// every call into a no-op so the bot can run dry for local testing.
type Client struct {
	api    *bot.Bot
	logger *slog.Logger
	dryRun bool
}

func NewClient(token string, pollTimeout time.Duration, logger *slog.Logger, handler UpdateHandler) (*Client, error) {
	if handler == nil {
		return nil, errors.New("telegram update handler is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	if strings.TrimSpace(token) == "" {
		return &Client{logger: logger, dryRun: true}, nil
	}

	if pollTimeout <= 0 {
		pollTimeout = 30 * time.Second
	}

	api, err := bot.New(token,
		bot.WithDefaultHandler(func(ctx context.Context, _ *bot.Bot, update *models.Update) {
			handler(ctx, update)
		}),
		bot.WithHTTPClient(pollTimeout, &http.Client{Timeout: pollTimeout + 10*time.Second}),
	)
	if err != nil {
		return nil, err
	}

	return &Client{api: api, logger: logger}, nil
}

func (c *Client) Start(ctx context.Context) error {
	if c.dryRun {
		c.logger.Warn("BOT_TOKEN is empty, running in dry mode")
		<-ctx.Done()
		return nil
	}
	c.api.Start(ctx)
	return nil
}

var fullPermissions = models.ChatPermissions{
	CanSendMessages:       true,
	CanSendAudios:         true,
	CanSendDocuments:      true,
	CanSendPhotos:         true,
	CanSendVideos:         true,
	CanSendVideoNotes:     true,
	CanSendVoiceNotes:     true,
	CanSendPolls:          true,
	CanSendOtherMessages:  true,
	CanAddWebPagePreviews: true,
	CanInviteUsers:        true,
}

// DeleteMessage removes a message from the chat.
func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if c.dryRun {
		return nil
	}
	ok, err := c.api.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("telegram rejected message deletion")
	}
	return nil
}

// Restrict mutes the user until the given time; Telegram lifts the
// restriction by itself once the time passes.
func (c *Client) Restrict(ctx context.Context, chatID, userID int64, until time.Time) error {
	if c.dryRun {
		return nil
	}
	muted := models.ChatPermissions{}
	ok, err := c.api.RestrictChatMember(ctx, &bot.RestrictChatMemberParams{
		ChatID:      chatID,
		UserID:      userID,
		Permissions: &muted,
		UntilDate:   int(until.Unix()),
	})
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("telegram rejected restriction")
	}
	return nil
}

// Unrestrict restores full member permissions.
func (c *Client) Unrestrict(ctx context.Context, chatID, userID int64) error {
	if c.dryRun {
		return nil
	}
	perms := fullPermissions
	ok, err := c.api.RestrictChatMember(ctx, &bot.RestrictChatMemberParams{
		ChatID:      chatID,
		UserID:      userID,
		Permissions: &perms,
	})
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("telegram rejected unrestriction")
	}
	return nil
}

// IsChatAdmin reports whether the user is an administrator or the owner of
// the chat on the platform side.
func (c *Client) IsChatAdmin(ctx context.Context, chatID, userID int64) (bool, error) {
	if c.dryRun {
		return false, nil
	}
	member, err := c.api.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: chatID,
		UserID: userID,
	})
	if err != nil {
		return false, err
	}
	isAdmin := member.Type == models.ChatMemberTypeOwner ||
		member.Type == models.ChatMemberTypeAdministrator
	return isAdmin, nil
}

// SendText posts an HTML-formatted message, targeting a forum topic when
// threadID is non-zero.
func (c *Client) SendText(ctx context.Context, chatID int64, threadID int, text string) error {
	if c.dryRun {
		return nil
	}
	_, err := c.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          chatID,
		MessageThreadID: threadID,
		Text:            text,
		ParseMode:       models.ParseModeHTML,
	})
	return err
}
