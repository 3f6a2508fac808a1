package access

import (
	"context"
	"log/slog"
	"strings"

	"github.com/HiteshJha1/telegram-keyword-bot/internal/domain/enums"
)

// FailPolicy decides how a failed platform admin query is classified:
// "enforce" treats the sender as regular, "exempt" treats them as a
// platform admin.
type FailPolicy string

const (
	FailPolicyEnforce FailPolicy = "enforce"
	FailPolicyExempt  FailPolicy = "exempt"
)

// ParseFailPolicy normalizes a raw config value, defaulting to enforce.
func ParseFailPolicy(raw string) FailPolicy {
	if strings.ToLower(strings.TrimSpace(raw)) == string(FailPolicyExempt) {
		return FailPolicyExempt
	}
	return FailPolicyEnforce
}

type AdminsRepo interface {
	IsAdmin(userID int64) bool
	AddAdmin(userID int64) (bool, error)
	RemoveAdmin(userID int64) (bool, error)
	Admins() []int64
}

// ChatAdminOracle answers whether a user is an administrator or owner of a
// chat on the platform side.
type ChatAdminOracle interface {
	IsChatAdmin(ctx context.Context, chatID, userID int64) (bool, error)
}

// Service resolves a (chat, user) pair into a privilege tier. The
// configured owner id is a named bootstrap escape hatch and is always a
// bot admin; it never appears in the stored admin list.
type Service struct {
	ownerTGID  int64
	repo       AdminsRepo
	oracle     ChatAdminOracle
	failPolicy FailPolicy
	logger     *slog.Logger
}

func NewService(ownerTGID int64, repo AdminsRepo, oracle ChatAdminOracle, failPolicy FailPolicy, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		ownerTGID:  ownerTGID,
		repo:       repo,
		oracle:     oracle,
		failPolicy: failPolicy,
		logger:     logger,
	}
}

// IsBotAdmin reports bot-level admin privilege: the bootstrap owner or a
// member of the admin list. No platform call is involved.
func (s *Service) IsBotAdmin(userID int64) bool {
	if s.ownerTGID != 0 && userID == s.ownerTGID {
		return true
	}
	return s.repo.IsAdmin(userID)
}

// Classify resolves the privilege tier for a sender. Bot admins
// short-circuit without a platform call; everyone else is checked against
// the platform admin oracle on every classification; results are never
// cached because platform privilege can change between messages.
func (s *Service) Classify(ctx context.Context, chatID, userID int64) enums.Privilege {
	if s.IsBotAdmin(userID) {
		return enums.PrivilegeBotAdmin
	}

	isAdmin, err := s.oracle.IsChatAdmin(ctx, chatID, userID)
	if err != nil {
		s.logger.Warn("platform admin check failed",
			"error", err, "chat_id", chatID, "user_id", userID, "policy", string(s.failPolicy))
		if s.failPolicy == FailPolicyExempt {
			return enums.PrivilegePlatformAdmin
		}
		return enums.PrivilegeRegular
	}
	if isAdmin {
		return enums.PrivilegePlatformAdmin
	}
	return enums.PrivilegeRegular
}

// AddAdmin grants bot-admin privilege; re-adding reports added=false.
func (s *Service) AddAdmin(userID int64) (bool, error) {
	return s.repo.AddAdmin(userID)
}

// RemoveAdmin revokes bot-admin privilege; an unknown id reports
// removed=false.
func (s *Service) RemoveAdmin(userID int64) (bool, error) {
	return s.repo.RemoveAdmin(userID)
}

func (s *Service) ListAdmins() []int64 {
	return s.repo.Admins()
}
