// Package prefs holds per-user chat preferences in memory.
package prefs

import "sync"

// DefaultLanguage is the reply language used until the user picks another.
const DefaultLanguage = "en"

type entry struct {
	language string
	tts      bool
}

// Store is a mutex-guarded preference map keyed by user id.
type Store struct {
	mu    sync.Mutex
	users map[int64]entry
}

// New creates an empty preference store.
func New() *Store {
	return &Store{users: map[int64]entry{}}
}

// Language returns the user's reply language.
func (s *Store) Language(userID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.users[userID]; ok && e.language != "" {
		return e.language
	}
	return DefaultLanguage
}

// SetLanguage stores the user's reply language.
func (s *Store) SetLanguage(userID int64, lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.users[userID]
	e.language = lang
	s.users[userID] = e
}

// TTS reports whether voice replies are on for the user.
func (s *Store) TTS(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[userID].tts
}

// SetTTS toggles voice replies for the user.
func (s *Store) SetTTS(userID int64, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.users[userID]
	e.tts = on
	s.users[userID] = e
}
