package chat

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/afrowave/api/internal/model/chat"
)

var (
	ErrOwnerRequired   = errors.New("owner id is required")
	ErrSessionNotFound = errors.New("session not found")
)

// DefaultMaxSessions caps stored sessions per owner; the retention sweep
// deletes everything beyond the N most recently active on each append.
const DefaultMaxSessions = 100

const previewLimit = 80

// Service holds conversation state for all identities within the process.
// State is process-local and lost on restart.
type Service struct {
	mu          sync.RWMutex
	sessions    map[string]chat.Session
	maxPerOwner int
}

// NewService bootstraps the in-memory session store.
func NewService() *Service {
	return &Service{
		sessions:    make(map[string]chat.Session),
		maxPerOwner: DefaultMaxSessions,
	}
}

// GetOrCreate returns the session for sessionID if it exists, otherwise
// allocates a new one. A caller-supplied id is honored verbatim, which lets
// clients resume a conversation by id; an existing session is returned as-is
// and ownership is only enforced by the read/delete paths.
func (s *Service) GetOrCreate(_ context.Context, sessionID, ownerID string) (chat.Session, error) {
	if ownerID == "" {
		return chat.Session{}, ErrOwnerRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID != "" {
		if session, ok := s.sessions[sessionID]; ok {
			return copySession(session), nil
		}
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	now := time.Now().UTC()
	session := chat.Session{
		ID:           sessionID,
		OwnerID:      ownerID,
		Messages:     make([]chat.Message, 0, 16),
		CreatedAt:    now,
		LastActivity: now,
	}
	s.sessions[sessionID] = session

	return copySession(session), nil
}

// Append adds a message to the session transcript, bumps LastActivity and
// runs the retention sweep for the session's owner.
func (s *Service) Append(_ context.Context, sessionID string, message chat.Message) (chat.Session, error) {
	if sessionID == "" {
		return chat.Session{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}

	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}

	session.Messages = append(session.Messages, message)
	session.LastActivity = time.Now().UTC()
	s.sessions[sessionID] = session

	s.sweepLocked(session.OwnerID)

	return copySession(session), nil
}

// Get returns the session only to its owner. A foreign session is reported
// as absent so existence does not leak.
func (s *Service) Get(_ context.Context, sessionID, requesterID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok || session.OwnerID != requesterID {
		return chat.Session{}, ErrSessionNotFound
	}
	return copySession(session), nil
}

// Transcript returns the full ordered message history of an owned session.
func (s *Service) Transcript(ctx context.Context, sessionID, requesterID string) ([]chat.Message, error) {
	session, err := s.Get(ctx, sessionID, requesterID)
	if err != nil {
		return nil, err
	}
	return session.Messages, nil
}

// List returns up to limit session summaries for the requester, most
// recently active first.
func (s *Service) List(_ context.Context, requesterID string, limit int) ([]chat.Summary, error) {
	if requesterID == "" {
		return nil, ErrOwnerRequired
	}

	s.mu.RLock()
	owned := make([]chat.Session, 0)
	for _, session := range s.sessions {
		if session.OwnerID == requesterID {
			owned = append(owned, session)
		}
	}
	s.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool {
		return owned[i].LastActivity.After(owned[j].LastActivity)
	})

	if limit > 0 && len(owned) > limit {
		owned = owned[:limit]
	}

	summaries := make([]chat.Summary, 0, len(owned))
	for _, session := range owned {
		summaries = append(summaries, summarize(session))
	}
	return summaries, nil
}

// Delete removes an owned session. Missing or foreign sessions report
// ErrSessionNotFound, making a repeated delete fail the second time.
func (s *Service) Delete(_ context.Context, sessionID, requesterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok || session.OwnerID != requesterID {
		return ErrSessionNotFound
	}

	delete(s.sessions, sessionID)
	return nil
}

// sweepLocked deletes every session of the owner beyond the maxPerOwner most
// recently active. Caller must hold the write lock. The population is
// self-capped by this sweep, so the sort stays small.
func (s *Service) sweepLocked(ownerID string) {
	owned := make([]chat.Session, 0)
	for _, session := range s.sessions {
		if session.OwnerID == ownerID {
			owned = append(owned, session)
		}
	}
	if len(owned) <= s.maxPerOwner {
		return
	}

	sort.Slice(owned, func(i, j int) bool {
		return owned[i].LastActivity.After(owned[j].LastActivity)
	})

	for _, stale := range owned[s.maxPerOwner:] {
		delete(s.sessions, stale.ID)
	}
}

func summarize(session chat.Session) chat.Summary {
	preview := ""
	if n := len(session.Messages); n > 0 {
		preview = truncate(session.Messages[n-1].Content, previewLimit)
	}
	return chat.Summary{
		ID:           session.ID,
		MessageCount: len(session.Messages),
		Preview:      preview,
		CreatedAt:    session.CreatedAt,
		LastActivity: session.LastActivity,
	}
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func copySession(session chat.Session) chat.Session {
	copied := session
	copied.Messages = make([]chat.Message, len(session.Messages))
	copy(copied.Messages, session.Messages)
	return copied
}
