package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"courtside/models"
	"courtside/storage"
)

// Restore loads the persisted session at process start. It ends in
// Authenticated only when both the session record and the token are
// present and the record parses; any partial or corrupt pair is cleared
// and the store ends Unauthenticated.
func (s *DefaultSessionStore) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateLoading

	rawUser, userErr := s.Store.Get(storage.KeyUser)
	token, tokenErr := s.Store.Get(storage.KeyToken)

	if userErr != nil || tokenErr != nil || token == "" {
		s.clearLocked()
		if userErr != nil && !errors.Is(userErr, storage.ErrKeyNotFound) {
			return fmt.Errorf("failed to restore session: %w", userErr)
		}
		if tokenErr != nil && !errors.Is(tokenErr, storage.ErrKeyNotFound) {
			return fmt.Errorf("failed to restore session: %w", tokenErr)
		}
		return nil
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(rawUser), &sess); err != nil {
		s.logger.Warn("Persisted session record is corrupt, clearing", zap.Error(err))
		s.clearLocked()
		return nil
	}

	s.seq++
	s.current = &sess
	s.state = StateAuthenticated
	s.logger.Debug("Session restored", zap.String("userID", sess.ID))
	return nil
}

// Login persists the session record and the pre-obtained token, then
// adopts them in memory. On persistence failure nothing changes: in-memory
// state must not diverge from durable storage.
func (s *DefaultSessionStore) Login(ctx context.Context, sess models.Session, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.Store.Set(storage.KeyUser, string(payload)); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	if err := s.Store.Set(storage.KeyToken, token); err != nil {
		// Roll the record back so restore never sees a record without a
		// token. Partial presence is invalid by contract either way.
		if delErr := s.Store.Delete(storage.KeyUser); delErr != nil {
			s.logger.Warn("Failed to roll back session record", zap.Error(delErr))
		}
		return fmt.Errorf("failed to persist token: %w", err)
	}

	s.seq++
	s.current = &sess
	s.state = StateAuthenticated
	s.logger.Info("Logged in", zap.String("userID", sess.ID))
	return nil
}

// Logout clears the persisted pair and transitions to Unauthenticated
// regardless of the prior state. Idempotent.
func (s *DefaultSessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userErr := s.Store.Delete(storage.KeyUser)
	tokenErr := s.Store.Delete(storage.KeyToken)

	s.seq++
	s.current = nil
	s.state = StateUnauthenticated

	if userErr != nil {
		return fmt.Errorf("failed to clear session: %w", userErr)
	}
	if tokenErr != nil {
		return fmt.Errorf("failed to clear token: %w", tokenErr)
	}
	return nil
}

// UpdateProfile pushes a partial profile update to the backend, then
// merges the changed fields over the current session: only non-nil fields
// override. A no-op when unauthenticated. On failure the prior in-memory
// state is untouched.
func (s *DefaultSessionStore) UpdateProfile(ctx context.Context, req models.SessionUpdateRequest) (*models.Session, error) {
	s.mu.Lock()
	if s.state != StateAuthenticated || s.current == nil {
		s.mu.Unlock()
		return nil, nil
	}
	seq := s.seq
	merged := *s.current
	s.mu.Unlock()

	if _, err := s.API.Request(ctx, "PUT", "/api/v1/profile", req, nil); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	applyUpdate(&merged, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq != seq {
		// A newer mutation (logout, fresh login) landed while the round
		// trip was in flight; its state wins.
		s.logger.Warn("Discarding stale profile update result")
		return nil, nil
	}

	payload, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.Store.Set(storage.KeyUser, string(payload)); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	s.seq++
	s.current = &merged
	copied := merged
	return &copied, nil
}

// Refresh fetches the canonical profile from the backend and adopts it
// wholesale (full replace, not merge). A no-op when no token is persisted.
// A failed fetch means the session is no longer valid, so Refresh logs
// out as a corrective action — it is not side-effect-free on failure.
func (s *DefaultSessionStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	token, err := s.Store.Get(storage.KeyToken)
	if errors.Is(err, storage.ErrKeyNotFound) || (err == nil && token == "") {
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to read credential: %w", err)
	}
	seq := s.seq
	s.mu.Unlock()

	body, err := s.API.Request(ctx, "GET", "/api/v1/profile", nil, nil)
	if err != nil {
		s.logger.Warn("Profile refresh failed, logging out", zap.Error(err))
		if logoutErr := s.Logout(ctx); logoutErr != nil {
			s.logger.Warn("Corrective logout failed", zap.Error(logoutErr))
		}
		return fmt.Errorf("failed to refresh session: %w", err)
	}

	sess, err := decodeProfile(body)
	if err != nil {
		s.logger.Warn("Profile response malformed, logging out", zap.Error(err))
		if logoutErr := s.Logout(ctx); logoutErr != nil {
			s.logger.Warn("Corrective logout failed", zap.Error(logoutErr))
		}
		return fmt.Errorf("failed to refresh session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq != seq {
		s.logger.Warn("Discarding stale refresh result")
		return nil
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.Store.Set(storage.KeyUser, string(payload)); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.seq++
	s.current = sess
	s.state = StateAuthenticated
	return nil
}

// clearLocked drops both persisted keys and the in-memory record. Callers
// hold the mutex.
func (s *DefaultSessionStore) clearLocked() {
	if err := s.Store.Delete(storage.KeyUser); err != nil {
		s.logger.Warn("Failed to clear persisted session", zap.Error(err))
	}
	if err := s.Store.Delete(storage.KeyToken); err != nil {
		s.logger.Warn("Failed to clear persisted token", zap.Error(err))
	}
	s.seq++
	s.current = nil
	s.state = StateUnauthenticated
}

// applyUpdate merges non-nil request fields over the session record.
func applyUpdate(sess *models.Session, req models.SessionUpdateRequest) {
	if req.Name != nil {
		sess.Name = *req.Name
	}
	if req.Email != nil {
		sess.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		sess.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		sess.Address = *req.Address
	}
	if req.ProfileImage != nil {
		sess.ProfileImage = *req.ProfileImage
	}
}

// decodeProfile accepts either a bare session object or one wrapped under
// a "user" key; the backend is not consistent between endpoints.
func decodeProfile(body []byte) (*models.Session, error) {
	var wrapped struct {
		User *models.Session `json:"user"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.User != nil && wrapped.User.ID != "" {
		return wrapped.User, nil
	}

	var sess models.Session
	if err := json.Unmarshal(body, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse profile response: %w", err)
	}
	if sess.ID == "" {
		return nil, errors.New("profile response contains no user")
	}
	return &sess, nil
}
