package mutes

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/HiteshJha1/telegram-keyword-bot/internal/domain/model"
)

type Repo interface {
	PutMute(key model.MuteKey, expiry time.Time) error
	DeleteMute(key model.MuteKey) (bool, error)
	Mutes(chatID int64) map[int64]time.Time
	MutedChats() []int64
	ClaimExpired(chatID int64, now time.Time) ([]int64, error)
}

// Restrictor applies and lifts platform-side restrictions.
type Restrictor interface {
	Restrict(ctx context.Context, chatID, userID int64, until time.Time) error
	Unrestrict(ctx context.Context, chatID, userID int64) error
}

// Service is the mute ledger: it tracks time-bound restrictions per
// (chat, user) until they expire. A record exists if and only if the
// platform restriction is believed active; the platform state stays
// authoritative, the ledger is an index for reporting and sweeping.
// Mute, Unmute and Sweep are serialized per chat so an expiring sweep
// cannot race a fresh re-mute on the same user.
type Service struct {
	repo          Repo
	restrictor    Restrictor
	sweepInterval time.Duration
	logger        *slog.Logger

	chatMu    sync.Mutex
	chatLocks map[int64]*sync.Mutex
}

func NewService(repo Repo, restrictor Restrictor, sweepInterval time.Duration, logger *slog.Logger) *Service {
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:          repo,
		restrictor:    restrictor,
		sweepInterval: sweepInterval,
		logger:        logger,
		chatLocks:     make(map[int64]*sync.Mutex),
	}
}

func (s *Service) lockChat(chatID int64) *sync.Mutex {
	s.chatMu.Lock()
	defer s.chatMu.Unlock()
	lock, ok := s.chatLocks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		s.chatLocks[chatID] = lock
	}
	return lock
}

// Mute restricts the user until now+duration and records the expiry. The
// platform restriction is applied first: if it fails no record is kept, so
// the ledger never claims a mute that was not actually placed. A repeated
// mute replaces the previous expiry, it does not extend it.
func (s *Service) Mute(ctx context.Context, chatID, userID int64, duration time.Duration) (time.Time, error) {
	lock := s.lockChat(chatID)
	lock.Lock()
	defer lock.Unlock()

	expiry := time.Now().UTC().Add(duration)
	if err := s.restrictor.Restrict(ctx, chatID, userID, expiry); err != nil {
		return time.Time{}, fmt.Errorf("restrict user %d: %w", userID, err)
	}
	if err := s.repo.PutMute(model.MuteKey{ChatID: chatID, UserID: userID}, expiry); err != nil {
		return time.Time{}, fmt.Errorf("record mute: %w", err)
	}
	mutesAppliedCounter.Inc()
	return expiry, nil
}

// Unmute removes the ledger record and lifts the platform restriction even
// when no record exists: someone may have been restricted outside the
// ledger's knowledge.
func (s *Service) Unmute(ctx context.Context, chatID, userID int64) (bool, error) {
	lock := s.lockChat(chatID)
	lock.Lock()
	defer lock.Unlock()

	wasMuted, err := s.repo.DeleteMute(model.MuteKey{ChatID: chatID, UserID: userID})
	if err != nil {
		return wasMuted, fmt.Errorf("drop mute record: %w", err)
	}
	if err := s.restrictor.Unrestrict(ctx, chatID, userID); err != nil {
		return wasMuted, fmt.Errorf("unrestrict user %d: %w", userID, err)
	}
	if wasMuted {
		manualUnmutesCounter.Inc()
	}
	return wasMuted, nil
}

// Sweep releases every mute in the chat whose expiry has passed. Expired
// records are claimed and removed inside the store's critical section, so
// a record refreshed by a concurrent re-mute is never claimed; the
// per-chat lock keeps the release calls from interleaving with a fresh
// mute on the same user. Release failures are logged, never retried.
func (s *Service) Sweep(ctx context.Context, chatID int64) ([]int64, error) {
	lock := s.lockChat(chatID)
	lock.Lock()
	defer lock.Unlock()

	expired, err := s.repo.ClaimExpired(chatID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("claim expired mutes: %w", err)
	}
	for _, userID := range expired {
		if err := s.restrictor.Unrestrict(ctx, chatID, userID); err != nil {
			s.logger.Warn("release expired mute", "error", err, "chat_id", chatID, "user_id", userID)
			continue
		}
		s.logger.Info("mute expired", "chat_id", chatID, "user_id", userID)
	}
	if len(expired) > 0 {
		mutesExpiredCounter.Add(float64(len(expired)))
	}
	return expired, nil
}

// Active reports the remaining duration of each mute in the chat. It is a
// pure read: expired-but-unswept records are filtered from the report but
// left for Sweep to release.
func (s *Service) Active(chatID int64) map[int64]time.Duration {
	now := time.Now().UTC()
	active := make(map[int64]time.Duration)
	for userID, expiry := range s.repo.Mutes(chatID) {
		if remaining := expiry.Sub(now); remaining > 0 {
			active[userID] = remaining
		}
	}
	return active
}

// RunSweeper drives periodic expiry sweeps over every chat with mute
// records until the context is done.
func (s *Service) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, chatID := range s.repo.MutedChats() {
				if _, err := s.Sweep(ctx, chatID); err != nil {
					s.logger.Error("sweep chat", "error", err, "chat_id", chatID)
				}
			}
		}
	}
}
