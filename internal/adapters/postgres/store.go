package postgres

import (
	"time"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/ports"
	"gorm.io/gorm"
)

var _ ports.Storage = (*Store)(nil)

// Store is the relational backend. Foreign keys and unique constraints are
// enforced by the database and surface as domain.ErrReferenceViolation and
// domain.ErrConflict.
type Store struct {
	db    *gorm.DB
	nowFn func() time.Time
}

func NewStore(db *gorm.DB, nowFn func() time.Time) *Store {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Store{db: db, nowFn: nowFn}
}

func (s *Store) now() time.Time {
	return domain.NormalizeTime(s.nowFn())
}

// DB exposes the handle for readiness checks.
func (s *Store) DB() *gorm.DB { return s.db }
