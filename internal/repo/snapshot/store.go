package snapshot

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/HiteshJha1/telegram-keyword-bot/internal/domain/model"
)

// Store is the single authoritative copy of the bot's persisted state:
// per-topic keyword lists, the bot admin list and the mute ledger records.
// All mutations run under one write lock and flush the snapshot file before
// the lock is released, so readers never observe a torn write and the file
// never lags a mutation. Keyword lists keep insertion order because the
// engine scans them in that order.
type Store struct {
	path   string
	logger *slog.Logger

	mu       sync.RWMutex
	keywords map[int64]map[string][]string
	admins   []int64
	mutes    map[model.MuteKey]time.Time
}

// Open loads the snapshot at path, or starts empty when the file does not
// exist yet. Any other read or decode failure is fatal: silently starting
// empty would drop configured keywords and forget active mutes.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		path:     path,
		logger:   logger,
		keywords: make(map[int64]map[string][]string),
		admins:   []int64{},
		mutes:    make(map[model.MuteKey]time.Time),
	}

	snap, err := readSnapshot(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Info("state file not found, starting with empty state", "path", path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state file: %w", err)
	}
	if err := s.apply(snap); err != nil {
		return nil, fmt.Errorf("load state file: %w", err)
	}
	return s, nil
}

func (s *Store) apply(snap model.Snapshot) error {
	for chatRaw, byLocation := range snap.TopicKeywords {
		chatID, err := strconv.ParseInt(chatRaw, 10, 64)
		if err != nil {
			return fmt.Errorf("parse chat id %q: %w", chatRaw, err)
		}
		locations := make(map[string][]string, len(byLocation))
		for location, list := range byLocation {
			if len(list) == 0 {
				continue
			}
			locations[location] = append([]string(nil), list...)
		}
		if len(locations) > 0 {
			s.keywords[chatID] = locations
		}
	}

	s.admins = append([]int64{}, snap.AdminUsers...)

	for raw, expiry := range snap.MutedUsers {
		key, err := model.ParseMuteKey(raw)
		if err != nil {
			return err
		}
		s.mutes[key] = expiry.UTC()
	}
	return nil
}

// persistLocked writes the snapshot file. Callers must hold the write lock.
func (s *Store) persistLocked() error {
	snap := model.NewSnapshot()
	for chatID, byLocation := range s.keywords {
		chatRaw := strconv.FormatInt(chatID, 10)
		locations := make(map[string][]string, len(byLocation))
		for location, list := range byLocation {
			locations[location] = append([]string(nil), list...)
		}
		snap.TopicKeywords[chatRaw] = locations
	}
	snap.AdminUsers = append(snap.AdminUsers, s.admins...)
	for key, expiry := range s.mutes {
		snap.MutedUsers[key.String()] = expiry
	}
	return writeSnapshot(s.path, snap)
}

// AddKeyword appends a keyword to the (chat, location) list unless it is
// already present. The list is created lazily on first add.
func (s *Store) AddKeyword(chatID int64, location, keyword string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	locations := s.keywords[chatID]
	if locations == nil {
		locations = make(map[string][]string)
		s.keywords[chatID] = locations
	}
	for _, existing := range locations[location] {
		if existing == keyword {
			return false, nil
		}
	}
	locations[location] = append(locations[location], keyword)
	return true, s.persistLocked()
}

// RemoveKeyword deletes a keyword from the (chat, location) list. Removing
// an absent keyword is a no-op reported as removed=false.
func (s *Store) RemoveKeyword(chatID int64, location, keyword string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	locations := s.keywords[chatID]
	list := locations[location]
	idx := -1
	for i, existing := range list {
		if existing == keyword {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	list = append(list[:idx], list[idx+1:]...)
	if len(list) == 0 {
		delete(locations, location)
		if len(locations) == 0 {
			delete(s.keywords, chatID)
		}
	} else {
		locations[location] = list
	}
	return true, s.persistLocked()
}

// Keywords returns the keyword list for one (chat, location) in insertion
// order. The lookup never scans other chats.
func (s *Store) Keywords(chatID int64, location string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.keywords[chatID][location]...)
}

// KeywordsByLocation returns every non-empty keyword list of the chat.
func (s *Store) KeywordsByLocation(chatID int64) map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byLocation := make(map[string][]string, len(s.keywords[chatID]))
	for location, list := range s.keywords[chatID] {
		if len(list) == 0 {
			continue
		}
		byLocation[location] = append([]string(nil), list...)
	}
	return byLocation
}

func (s *Store) IsAdmin(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adminIndexLocked(userID) >= 0
}

func (s *Store) adminIndexLocked(userID int64) int {
	for i, id := range s.admins {
		if id == userID {
			return i
		}
	}
	return -1
}

// AddAdmin grants bot-admin privilege; a user id appears at most once.
func (s *Store) AddAdmin(userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.adminIndexLocked(userID) >= 0 {
		return false, nil
	}
	s.admins = append(s.admins, userID)
	return true, s.persistLocked()
}

func (s *Store) RemoveAdmin(userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.adminIndexLocked(userID)
	if idx < 0 {
		return false, nil
	}
	s.admins = append(s.admins[:idx], s.admins[idx+1:]...)
	return true, s.persistLocked()
}

func (s *Store) Admins() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]int64(nil), s.admins...)
}

// PutMute upserts a mute record, replacing any existing expiry for the key.
func (s *Store) PutMute(key model.MuteKey, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutes[key] = expiry.UTC()
	return s.persistLocked()
}

// DeleteMute removes a mute record, reporting whether one existed.
func (s *Store) DeleteMute(key model.MuteKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.mutes[key]; !ok {
		return false, nil
	}
	delete(s.mutes, key)
	return true, s.persistLocked()
}

// Mutes returns the expiry of every mute record in the chat.
func (s *Store) Mutes(chatID int64) map[int64]time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byUser := make(map[int64]time.Time)
	for key, expiry := range s.mutes {
		if key.ChatID == chatID {
			byUser[key.UserID] = expiry
		}
	}
	return byUser
}

// MutedChats lists every chat with at least one mute record.
func (s *Store) MutedChats() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[int64]struct{})
	for key := range s.mutes {
		seen[key.ChatID] = struct{}{}
	}
	chats := make([]int64, 0, len(seen))
	for chatID := range seen {
		chats = append(chats, chatID)
	}
	sort.Slice(chats, func(i, j int) bool { return chats[i] < chats[j] })
	return chats
}

// ClaimExpired removes every record in the chat whose expiry has passed and
// returns the affected user ids. The expiry check and the removal happen
// under the same critical section, so a record refreshed by a concurrent
// re-mute is never claimed.
func (s *Store) ClaimExpired(chatID int64, now time.Time) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []int64
	for key, expiry := range s.mutes {
		if key.ChatID != chatID || expiry.After(now) {
			continue
		}
		delete(s.mutes, key)
		users = append(users, key.UserID)
	}
	if len(users) == 0 {
		return nil, nil
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	return users, s.persistLocked()
}
