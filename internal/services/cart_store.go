// internal/services/cart_store.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/letmemugyou/backend/internal/models"
)

// CartStore persists session-scoped carts. Implementations are injected so
// the cart never lives in ambient process-wide state.
type CartStore interface {
	Get(ctx context.Context, sessionID string) ([]models.CartLine, error)
	Save(ctx context.Context, sessionID string, lines []models.CartLine) error
	Clear(ctx context.Context, sessionID string) error
}

// GormCartStore keeps one cart_sessions row per session id.
type GormCartStore struct {
	db *gorm.DB
}

func NewGormCartStore(db *gorm.DB) *GormCartStore {
	return &GormCartStore{db: db}
}

func (s *GormCartStore) Get(ctx context.Context, sessionID string) ([]models.CartLine, error) {
	var session models.CartSession
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart session: %w", err)
	}
	return session.Lines, nil
}

func (s *GormCartStore) Save(ctx context.Context, sessionID string, lines []models.CartLine) error {
	var session models.CartSession
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		session = models.CartSession{SessionID: sessionID, Lines: lines}
		if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
			return fmt.Errorf("failed to create cart session: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load cart session: %w", err)
	}

	session.Lines = lines
	if err := s.db.WithContext(ctx).Save(&session).Error; err != nil {
		return fmt.Errorf("failed to save cart session: %w", err)
	}
	return nil
}

func (s *GormCartStore) Clear(ctx context.Context, sessionID string) error {
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.CartSession{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear cart session: %w", err)
	}
	return nil
}

// MemoryCartStore backs carts with a process-local map. Suitable for
// single-instance deployments and tests.
type MemoryCartStore struct {
	mtx   sync.RWMutex
	carts map[string][]models.CartLine
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string][]models.CartLine)}
}

func (s *MemoryCartStore) Get(ctx context.Context, sessionID string) ([]models.CartLine, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	lines := s.carts[sessionID]
	out := make([]models.CartLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (s *MemoryCartStore) Save(ctx context.Context, sessionID string, lines []models.CartLine) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	stored := make([]models.CartLine, len(lines))
	copy(stored, lines)
	s.carts[sessionID] = stored
	return nil
}

func (s *MemoryCartStore) Clear(ctx context.Context, sessionID string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.carts, sessionID)
	return nil
}
