package repository

import (
	"sync"
	"time"

	"github.com/dkovalev/modelmart/pkg/domain"
)

type conversationEntry struct {
	turns      []domain.ChatMessage
	lastUpdate time.Time
}

// conversationRepository keeps per-model chat history in memory. Entries
// expire after ttl of inactivity; a ttl of zero keeps them forever.
type conversationRepository struct {
	mu         sync.RWMutex
	entries    map[int64]conversationEntry
	defaultTTL time.Duration
}

func NewConversationRepository(defaultTTL time.Duration) *conversationRepository {
	return &conversationRepository{
		entries:    make(map[int64]conversationEntry),
		defaultTTL: defaultTTL,
	}
}

func (c *conversationRepository) AppendTurn(modelID int64, role, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[modelID]
	if ok && c.expired(entry) {
		entry = conversationEntry{}
	}

	entry.turns = append(entry.turns, domain.NewChatMessage(role, content))
	entry.lastUpdate = time.Now()
	c.entries[modelID] = entry
}

// RecentTurns returns up to n most recent turns, oldest first.
func (c *conversationRepository) RecentTurns(modelID int64, n int) []domain.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[modelID]
	if !ok || c.expired(entry) {
		return nil
	}

	turns := entry.turns
	if n > 0 && len(turns) > n {
		turns = turns[len(turns)-n:]
	}

	out := make([]domain.ChatMessage, len(turns))
	copy(out, turns)
	return out
}

func (c *conversationRepository) Clear(modelID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, modelID)
}

func (c *conversationRepository) expired(entry conversationEntry) bool {
	return c.defaultTTL > 0 && time.Since(entry.lastUpdate) > c.defaultTTL
}
