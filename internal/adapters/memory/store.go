package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

// Store keeps every entity in process memory. Ids come from one counter per
// entity type and are never reused. References between entities are not
// checked: a post may name an author that does not exist.
type Store struct {
	mu    sync.RWMutex
	nowFn func() time.Time

	seq map[string]int64

	users       map[int64]domain.User
	teams       map[int64]domain.Team
	members     map[int64]domain.TeamMember
	platforms   map[int64]domain.SocialPlatform
	posts       map[int64]domain.Post
	templates   map[int64]domain.Template
	activities  map[int64]domain.Activity
	analytics   map[int64]domain.Analytics
	memberByKey map[[2]int64]int64
}

func NewStore(nowFn func() time.Time) *Store {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Store{
		nowFn:       nowFn,
		seq:         map[string]int64{},
		users:       map[int64]domain.User{},
		teams:       map[int64]domain.Team{},
		members:     map[int64]domain.TeamMember{},
		platforms:   map[int64]domain.SocialPlatform{},
		posts:       map[int64]domain.Post{},
		templates:   map[int64]domain.Template{},
		activities:  map[int64]domain.Activity{},
		analytics:   map[int64]domain.Analytics{},
		memberByKey: map[[2]int64]int64{},
	}
}

// nextID must be called with mu held for writing.
func (s *Store) nextID(entity string) int64 {
	s.seq[entity]++
	return s.seq[entity]
}

func (s *Store) now() time.Time {
	return domain.NormalizeTime(s.nowFn())
}

func sortNewestFirst[T any](rows []T, key func(T) (time.Time, int64)) {
	sort.Slice(rows, func(i, j int) bool {
		ti, idi := key(rows[i])
		tj, idj := key(rows[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi > idj
	})
}

func sortByID[T any](rows []T, id func(T) int64) {
	sort.Slice(rows, func(i, j int) bool { return id(rows[i]) < id(rows[j]) })
}
