package keywords

import (
	"errors"
	"strings"
)

type Repo interface {
	AddKeyword(chatID int64, location, keyword string) (bool, error)
	RemoveKeyword(chatID int64, location, keyword string) (bool, error)
	Keywords(chatID int64, location string) []string
	KeywordsByLocation(chatID int64) map[string][]string
}

var ErrEmptyKeyword = errors.New("keyword is empty")

// Service is the keyword store: per (chat, location) lists of lowercase
// keywords the moderation engine matches against.
type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// Normalize lowercases and trims a raw keyword so matching against
// lowercased message text is case-insensitive.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Add stores a keyword for a chat location and returns the normalized
// form. Re-adding an existing keyword reports added=false and does not
// mutate state.
func (s *Service) Add(chatID int64, location, raw string) (string, bool, error) {
	keyword := Normalize(raw)
	if keyword == "" {
		return "", false, ErrEmptyKeyword
	}
	added, err := s.repo.AddKeyword(chatID, location, keyword)
	return keyword, added, err
}

// Remove deletes a keyword from a chat location; removing an absent
// keyword reports removed=false.
func (s *Service) Remove(chatID int64, location, raw string) (string, bool, error) {
	keyword := Normalize(raw)
	if keyword == "" {
		return "", false, ErrEmptyKeyword
	}
	removed, err := s.repo.RemoveKeyword(chatID, location, keyword)
	return keyword, removed, err
}

// KeywordsFor is the engine's per-message read path: the configured
// keywords of one (chat, location) in insertion order.
func (s *Service) KeywordsFor(chatID int64, location string) []string {
	return s.repo.Keywords(chatID, location)
}

// List returns every location of the chat that has at least one keyword.
func (s *Service) List(chatID int64) map[string][]string {
	return s.repo.KeywordsByLocation(chatID)
}
