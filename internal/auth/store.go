package auth

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

// Account couples a user with its credential hash.
type Account struct {
	User         models.User
	PasswordHash string
}

type resetEntry struct {
	email     string
	expiresAt time.Time
}

// Store keeps accounts and password-reset tokens in memory. Durable account
// storage belongs to the upstream identity provider; this store implements
// the bundled backend contract.
type Store struct {
	mu      sync.RWMutex
	byEmail map[string]*Account
	resets  map[string]resetEntry
}

// NewStore constructs an empty account store.
func NewStore() *Store {
	return &Store{
		byEmail: make(map[string]*Account),
		resets:  make(map[string]resetEntry),
	}
}

// Seed credentials for the demo account.
const (
	SeedEmail    = "dayane_paz@gmail.com"
	SeedPassword = "Pazygor080@"
)

// SeedDefault registers the demo account with access to every system.
func (s *Store) SeedDefault() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Create(&Account{
		User: models.User{
			ID:      "1",
			Name:    "Dayane Paz",
			Email:   SeedEmail,
			Role:    "admin",
			Systems: []string{models.SystemDigital, models.SystemFinance, models.SystemAcademy},
		},
		PasswordHash: string(hash),
	})
}

// FindByEmail looks an account up by its (case-insensitive) email.
func (s *Store) FindByEmail(email string) (*Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.byEmail[normalizeEmail(email)]
	return acc, ok
}

// Create registers a new account, rejecting duplicate emails.
func (s *Store) Create(acc *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalizeEmail(acc.User.Email)
	if _, exists := s.byEmail[key]; exists {
		return httpx.ErrDuplicate
	}
	s.byEmail[key] = acc
	return nil
}

// UpdatePassword replaces the stored hash for an account.
func (s *Store) UpdatePassword(email, hash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return false
	}
	acc.PasswordHash = hash
	return true
}

// CreateReset issues a password-reset token for the account.
func (s *Store) CreateReset(email string, ttl time.Duration) string {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets[token] = resetEntry{email: normalizeEmail(email), expiresAt: time.Now().Add(ttl)}
	return token
}

// ResetValid reports whether a reset token exists and has not expired.
func (s *Store) ResetValid(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.resets[token]
	return ok && time.Now().Before(entry.expiresAt)
}

// ConsumeReset removes a valid reset token and returns the account email it
// was issued for.
func (s *Store) ConsumeReset(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.resets[token]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.resets, token)
		return "", false
	}
	delete(s.resets, token)
	return entry.email, true
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
