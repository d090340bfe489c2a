package server

import (
	"sync"
	"time"
)

// Message is one turn of a session transcript.
type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

// historyStore keeps per-session transcripts for the life of the process.
// Transcripts never persist across restarts; conversation memory belongs to
// the surface, not the pipeline.
type historyStore struct {
	sessions map[string][]Message
	mu       sync.RWMutex
}

func newHistoryStore() *historyStore {
	return &historyStore{sessions: make(map[string][]Message)}
}

func (h *historyStore) append(session string, msgs ...Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[session] = append(h.sessions[session], msgs...)
}

// get returns a copy of the session transcript; unknown sessions yield an
// empty transcript.
func (h *historyStore) get(session string) []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msgs := h.sessions[session]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
