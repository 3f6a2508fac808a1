package engine

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/HiteshJha1/telegram-keyword-bot/internal/domain/enums"
	"github.com/HiteshJha1/telegram-keyword-bot/internal/domain/model"
)

type KeywordSource interface {
	KeywordsFor(chatID int64, location string) []string
}

type Classifier interface {
	Classify(ctx context.Context, chatID, userID int64) enums.Privilege
}

type Ledger interface {
	Mute(ctx context.Context, chatID, userID int64, duration time.Duration) (time.Time, error)
}

type MessageDeleter interface {
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}

// Notifier announces enforcement outcomes in the chat where they happened.
type Notifier interface {
	NotifyMuted(ctx context.Context, msg model.InboundMessage, keyword string, until time.Time) error
	NotifyMuteFailed(ctx context.Context, msg model.InboundMessage, keyword string) error
}

// Result is the engine's decision for one message.
type Result struct {
	Verdict enums.Verdict
	Keyword string
	Err     error
}

// Service is the moderation engine: it matches inbound messages against
// the keyword lists of their location and applies graduated enforcement
// depending on the sender's privilege tier.
type Service struct {
	keywords     KeywordSource
	classifier   Classifier
	ledger       Ledger
	deleter      MessageDeleter
	notifier     Notifier
	muteDuration time.Duration
	logger       *slog.Logger
}

func NewService(
	keywords KeywordSource,
	classifier Classifier,
	ledger Ledger,
	deleter MessageDeleter,
	notifier Notifier,
	muteDuration time.Duration,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		keywords:     keywords,
		classifier:   classifier,
		ledger:       ledger,
		deleter:      deleter,
		notifier:     notifier,
		muteDuration: muteDuration,
		logger:       logger,
	}
}

// OnMessage runs the moderation pipeline for one inbound text message.
// Deletion is attempted before the sender's privilege is resolved:
// removing the content is the low-risk action and must happen even when
// the rest of the pipeline short-circuits or fails. Nothing here is ever
// retried; a failed action is terminal for this message event.
func (s *Service) OnMessage(ctx context.Context, msg model.InboundMessage) Result {
	messagesCheckedCounter.Inc()

	configured := s.keywords.KeywordsFor(msg.ChatID, msg.Location)
	if len(configured) == 0 {
		return Result{Verdict: enums.VerdictNoMatch}
	}

	keyword := firstMatch(msg.Text, configured)
	if keyword == "" {
		return Result{Verdict: enums.VerdictNoMatch}
	}
	keywordMatchesCounter.Inc()

	if err := s.deleter.DeleteMessage(ctx, msg.ChatID, msg.MessageID); err != nil {
		deleteFailuresCounter.Inc()
		s.logger.Warn("delete message",
			"error", err, "chat_id", msg.ChatID, "message_id", msg.MessageID)
	} else {
		messagesDeletedCounter.Inc()
		s.logger.Info("deleted message",
			"chat_id", msg.ChatID, "location", msg.Location, "keyword", keyword)
	}

	if s.classifier.Classify(ctx, msg.ChatID, msg.UserID).Exempt() {
		adminExemptionsCounter.Inc()
		return Result{Verdict: enums.VerdictAdminExempt, Keyword: keyword}
	}

	until, err := s.ledger.Mute(ctx, msg.ChatID, msg.UserID, s.muteDuration)
	if err != nil {
		enforcementFailuresCounter.Inc()
		s.logger.Error("mute user",
			"error", err, "chat_id", msg.ChatID, "user_id", msg.UserID, "keyword", keyword)
		if nerr := s.notifier.NotifyMuteFailed(ctx, msg, keyword); nerr != nil {
			s.logger.Warn("send mute failure notice", "error", nerr, "chat_id", msg.ChatID)
		}
		return Result{Verdict: enums.VerdictEnforcementFailed, Keyword: keyword, Err: err}
	}

	enforcementsCounter.Inc()
	if nerr := s.notifier.NotifyMuted(ctx, msg, keyword, until); nerr != nil {
		s.logger.Warn("send mute notice", "error", nerr, "chat_id", msg.ChatID)
	}
	return Result{Verdict: enums.VerdictEnforced, Keyword: keyword}
}

// firstMatch scans keywords in stored insertion order and returns the
// first one contained in the message text. Keywords are stored lowercase,
// so only the text needs folding.
func firstMatch(text string, keywords []string) string {
	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(lower, keyword) {
			return keyword
		}
	}
	return ""
}
