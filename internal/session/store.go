// Package session owns the authenticated seller identity and access token,
// restoring them from durable local storage on startup and persisting every
// mutation.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/VictorHenrique01/mini-mercado-hub/internal/market"
)

// State distinguishes "not restored yet" from "restored and anonymous" so
// consumers never redirect to login before Restore has run.
type State int

const (
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

const (
	tokenFile  = "access_token"
	sellerFile = "seller.json"
)

// Store holds the session state and mirrors it to two files under dir.
type Store struct {
	mu     sync.RWMutex
	fs     afero.Fs
	dir    string
	logger *zap.Logger

	state  State
	token  string
	seller *market.Seller
}

func NewStore(fs afero.Fs, dir string, logger *zap.Logger) *Store {
	return &Store{
		fs:     fs,
		dir:    dir,
		logger: logger,
		state:  StateUnknown,
	}
}

// Restore loads the persisted token and seller. If either entry is missing or
// the seller record does not parse, storage is wiped and the store stays
// anonymous.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, tokenErr := afero.ReadFile(s.fs, filepath.Join(s.dir, tokenFile))
	raw, sellerErr := afero.ReadFile(s.fs, filepath.Join(s.dir, sellerFile))

	if tokenErr != nil || sellerErr != nil || len(token) == 0 {
		if !os.IsNotExist(tokenErr) || !os.IsNotExist(sellerErr) {
			s.logger.Warn("incomplete session state, clearing",
				zap.NamedError("token_err", tokenErr),
				zap.NamedError("seller_err", sellerErr))
		}
		s.wipeLocked()
		return
	}

	var seller market.Seller
	if err := json.Unmarshal(raw, &seller); err != nil {
		s.logger.Warn("stored seller record is malformed, clearing", zap.Error(err))
		s.wipeLocked()
		return
	}

	s.token = string(token)
	s.seller = &seller
	s.state = StateAuthenticated
	s.logger.Info("session restored", zap.Int("seller_id", seller.ID))
}

// Login persists the token and seller and marks the session authenticated.
func (s *Store) Login(token string, seller market.Seller) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persistLocked(token, seller); err != nil {
		return err
	}
	s.token = token
	s.seller = &seller
	s.state = StateAuthenticated
	s.logger.Info("session established", zap.Int("seller_id", seller.ID))
	return nil
}

// UpdateSeller replaces the persisted seller record. The token is untouched.
func (s *Store) UpdateSeller(seller market.Seller) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(seller)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, filepath.Join(s.dir, sellerFile), raw, 0o600); err != nil {
		return err
	}
	s.seller = &seller
	return nil
}

// Logout drops the session and erases durable state. It reports whether an
// authenticated session was actually dropped, so a burst of concurrent 401s
// triggers follow-up actions only once.
func (s *Store) Logout() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasAuthenticated := s.state == StateAuthenticated
	s.wipeLocked()
	if wasAuthenticated {
		s.logger.Info("session cleared")
	}
	return wasAuthenticated
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// Token returns the access token, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Seller returns a copy of the current seller identity.
func (s *Store) Seller() (market.Seller, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.seller == nil {
		return market.Seller{}, false
	}
	return *s.seller, true
}

func (s *Store) persistLocked(token string, seller market.Seller) error {
	if err := s.fs.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(seller)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return err
	}
	return afero.WriteFile(s.fs, filepath.Join(s.dir, sellerFile), raw, 0o600)
}

func (s *Store) wipeLocked() {
	_ = s.fs.Remove(filepath.Join(s.dir, tokenFile))
	_ = s.fs.Remove(filepath.Join(s.dir, sellerFile))
	s.token = ""
	s.seller = nil
	s.state = StateAnonymous
}
