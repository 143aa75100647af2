package session

import (
	"context"
	"sync"
	"time"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/google/uuid"
)

// Session is the server-side state behind a session cookie.
type Session struct {
	ID        string          `json:"id"`
	UserID    int64           `json:"user_id,omitempty"`
	Role      domain.UserRole `json:"role,omitempty"`
	Cart      *domain.Cart    `json:"cart,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func New() *Session {
	return &Session{ID: uuid.NewString(), CreatedAt: time.Now()}
}

func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != 0
}

func (s *Session) IsAdmin() bool {
	return s.Authenticated() && s.Role == domain.UserRoleAdmin
}

func (s *Session) Login(user *domain.User) {
	s.UserID = user.ID
	s.Role = user.Role
}

// Logout forgets the user but keeps the cart.
func (s *Session) Logout() {
	s.UserID = 0
	s.Role = ""
}

// Store persists sessions by id. Get returns domain.ErrNotFound for unknown
// or expired ids.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, sessions: make(map[string]memoryEntry)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if m.ttl > 0 && !m.now().Before(entry.expiresAt) {
		delete(m.sessions, id)
		return nil, domain.ErrNotFound
	}
	s := entry.session
	s.Cart = copyCart(entry.session.Cart)
	return &s, nil
}

func (m *MemoryStore) Put(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *s
	stored.Cart = copyCart(s.Cart)
	m.sessions[s.ID] = memoryEntry{session: stored, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func copyCart(c *domain.Cart) *domain.Cart {
	if c == nil {
		return nil
	}
	out := domain.NewCart()
	for k, v := range c.Items {
		out.Items[k] = v
	}
	return out
}

var _ Store = (*MemoryStore)(nil)
