package test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/HiteshJha1/telegram-keyword-bot/internal/domain/enums"
	"github.com/HiteshJha1/telegram-keyword-bot/internal/domain/model"
	"github.com/HiteshJha1/telegram-keyword-bot/internal/repo/snapshot"
	"github.com/HiteshJha1/telegram-keyword-bot/internal/services/access"
	"github.com/HiteshJha1/telegram-keyword-bot/internal/services/engine"
	"github.com/HiteshJha1/telegram-keyword-bot/internal/services/keywords"
	"github.com/HiteshJha1/telegram-keyword-bot/internal/services/mutes"
)

// fakePlatform stands in for the Telegram API and records every
// moderation action the pipeline takes.
type fakePlatform struct {
	mu           sync.Mutex
	chatAdmins   map[int64]bool
	deleted      []int
	restricted   []int64
	unrestricted []int64
}

func (f *fakePlatform) DeleteMessage(_ context.Context, _ int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakePlatform) Restrict(_ context.Context, _, userID int64, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restricted = append(f.restricted, userID)
	return nil
}

func (f *fakePlatform) Unrestrict(_ context.Context, _, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unrestricted = append(f.unrestricted, userID)
	return nil
}

func (f *fakePlatform) IsChatAdmin(_ context.Context, _, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.chatAdmins[userID], nil
}

type silentNotifier struct{}

func (silentNotifier) NotifyMuted(context.Context, model.InboundMessage, string, time.Time) error {
	return nil
}

func (silentNotifier) NotifyMuteFailed(context.Context, model.InboundMessage, string) error {
	return nil
}

type pipeline struct {
	statePath string
	platform  *fakePlatform
	store     *snapshot.Store
	keywords  *keywords.Service
	mutes     *mutes.Service
	engine    *engine.Service
}

func newPipeline(t *testing.T, ownerTGID int64, muteDuration time.Duration) *pipeline {
	t.Helper()

	statePath := filepath.Join(t.TempDir(), "state.json")
	store, err := snapshot.Open(statePath, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	platform := &fakePlatform{chatAdmins: map[int64]bool{}}
	keywordService := keywords.NewService(store)
	accessService := access.NewService(ownerTGID, store, platform, access.FailPolicyEnforce, nil)
	muteService := mutes.NewService(store, platform, time.Minute, nil)
	engineService := engine.NewService(
		keywordService, accessService, muteService, platform, silentNotifier{}, muteDuration, nil)

	return &pipeline{
		statePath: statePath,
		platform:  platform,
		store:     store,
		keywords:  keywordService,
		mutes:     muteService,
		engine:    engineService,
	}
}

func message(userID int64, location, text string) model.InboundMessage {
	return model.InboundMessage{
		ChatID:    -100200,
		UserID:    userID,
		Username:  "@someone",
		MessageID: 777,
		Location:  location,
		Text:      text,
	}
}

func TestRegularSenderIsDeletedAndMuted(t *testing.T) {
	p := newPipeline(t, 999, 12*time.Hour)
	ctx := context.Background()

	if _, _, err := p.keywords.Add(-100200, "42", "Spam"); err != nil {
		t.Fatalf("add keyword: %v", err)
	}

	result := p.engine.OnMessage(ctx, message(7, "42", "free SPAM offer"))
	if result.Verdict != enums.VerdictEnforced {
		t.Fatalf("expected enforced, got %s", result.Verdict)
	}
	if result.Keyword != "spam" {
		t.Fatalf("expected matched keyword spam, got %q", result.Keyword)
	}
	if len(p.platform.deleted) != 1 || p.platform.deleted[0] != 777 {
		t.Fatalf("expected message 777 deleted, got %v", p.platform.deleted)
	}
	if len(p.platform.restricted) != 1 || p.platform.restricted[0] != 7 {
		t.Fatalf("expected user 7 restricted, got %v", p.platform.restricted)
	}

	// The mute must survive a restart via the state file.
	reopened, err := snapshot.Open(p.statePath, nil)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	if _, ok := reopened.Mutes(-100200)[7]; !ok {
		t.Fatal("expected persisted mute record for user 7")
	}
}

func TestKeywordOutsideItsLocationIsIgnored(t *testing.T) {
	p := newPipeline(t, 999, 12*time.Hour)
	ctx := context.Background()

	if _, _, err := p.keywords.Add(-100200, "42", "spam"); err != nil {
		t.Fatalf("add keyword: %v", err)
	}

	result := p.engine.OnMessage(ctx, message(7, model.DefaultLocation, "spam"))
	if result.Verdict != enums.VerdictNoMatch {
		t.Fatalf("expected no match outside the configured topic, got %s", result.Verdict)
	}
	if len(p.platform.deleted) != 0 {
		t.Fatalf("expected no deletion, got %v", p.platform.deleted)
	}
}

func TestOwnerIsExemptButMessageIsDeleted(t *testing.T) {
	p := newPipeline(t, 999, 12*time.Hour)
	ctx := context.Background()

	if _, _, err := p.keywords.Add(-100200, "42", "spam"); err != nil {
		t.Fatalf("add keyword: %v", err)
	}

	result := p.engine.OnMessage(ctx, message(999, "42", "spam"))
	if result.Verdict != enums.VerdictAdminExempt {
		t.Fatalf("expected admin exempt, got %s", result.Verdict)
	}
	if len(p.platform.deleted) != 1 {
		t.Fatalf("expected deletion despite exemption, got %v", p.platform.deleted)
	}
	if len(p.platform.restricted) != 0 {
		t.Fatalf("expected no restriction, got %v", p.platform.restricted)
	}
}

func TestExpiredMuteIsSweptOnce(t *testing.T) {
	p := newPipeline(t, 999, 20*time.Millisecond)
	ctx := context.Background()

	if _, _, err := p.keywords.Add(-100200, "42", "spam"); err != nil {
		t.Fatalf("add keyword: %v", err)
	}
	if result := p.engine.OnMessage(ctx, message(7, "42", "spam")); result.Verdict != enums.VerdictEnforced {
		t.Fatalf("expected enforced, got %s", result.Verdict)
	}

	time.Sleep(50 * time.Millisecond)

	released, err := p.mutes.Sweep(ctx, -100200)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(released) != 1 || released[0] != 7 {
		t.Fatalf("expected user 7 released, got %v", released)
	}
	if len(p.platform.unrestricted) != 1 || p.platform.unrestricted[0] != 7 {
		t.Fatalf("expected user 7 unrestricted, got %v", p.platform.unrestricted)
	}

	released, err = p.mutes.Sweep(ctx, -100200)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if len(released) != 0 {
		t.Fatalf("expected nothing on second sweep, got %v", released)
	}
}

func TestManualUnmuteLiftsRestriction(t *testing.T) {
	p := newPipeline(t, 999, 12*time.Hour)
	ctx := context.Background()

	if _, _, err := p.keywords.Add(-100200, "42", "spam"); err != nil {
		t.Fatalf("add keyword: %v", err)
	}
	if result := p.engine.OnMessage(ctx, message(7, "42", "spam")); result.Verdict != enums.VerdictEnforced {
		t.Fatalf("expected enforced, got %s", result.Verdict)
	}

	wasMuted, err := p.mutes.Unmute(ctx, -100200, 7)
	if err != nil {
		t.Fatalf("unmute: %v", err)
	}
	if !wasMuted {
		t.Fatal("expected an active mute to be lifted")
	}
	if len(p.mutes.Active(-100200)) != 0 {
		t.Fatal("expected no active mutes after unmute")
	}
}
