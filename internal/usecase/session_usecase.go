package usecase

import (
	"time"

	"laza-storefront/pkg/cache"
	"laza-storefront/pkg/logger"

	"github.com/google/uuid"
)

// Session is the state owned by one app session: a cart, a favorites set and
// an edit form. It is created on demand and lives in memory only.
type Session struct {
	ID        string
	StartedAt time.Time
	Cart      *CartUsecase
	Favorites *FavoritesUsecase
	Edit      *EditSessionUsecase
}

// Purge forwards a catalog delete to the cart and favorites of this session.
func (s *Session) Purge(itemID string) {
	s.Cart.Purge(itemID)
	s.Favorites.Purge(itemID)
}

// SessionUsecase keeps live sessions in a TTL cache and subscribes each one to
// catalog deletes. An expired or ended session is unsubscribed on eviction.
type SessionUsecase struct {
	catalog *CatalogRepository
	store   cache.CacheService
	ttl     time.Duration
}

func NewSessionUsecase(catalog *CatalogRepository, store cache.CacheService, ttl time.Duration) *SessionUsecase {
	u := &SessionUsecase{
		catalog: catalog,
		store:   store,
		ttl:     ttl,
	}
	store.OnEvicted(func(id string, _ interface{}) {
		catalog.Unsubscribe(id)
		logger.Debug().Str("session_id", id).Msg("Session evicted")
	})
	return u
}

func (u *SessionUsecase) Start() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Cart:      NewCartUsecase(),
		Favorites: NewFavoritesUsecase(),
		Edit:      NewEditSessionUsecase(u.catalog),
	}
	u.catalog.Subscribe(s.ID, s)
	u.store.Set(s.ID, s, u.ttl)

	logger.Info().Str("session_id", s.ID).Msg("Session started")
	return s
}

// Get returns a live session and extends its lifetime. The extension only
// succeeds while the entry is still present, so a session evicted between the
// lookup and the extension stays gone instead of coming back unsubscribed.
func (u *SessionUsecase) Get(id string) (*Session, bool) {
	val, found := u.store.Get(id)
	if !found {
		return nil, false
	}
	s, ok := val.(*Session)
	if !ok {
		return nil, false
	}
	if err := u.store.Replace(id, s, u.ttl); err != nil {
		return nil, false
	}
	return s, true
}

func (u *SessionUsecase) End(id string) {
	u.store.Delete(id)
}

// Active reports how many sessions the store currently holds.
func (u *SessionUsecase) Active() int {
	return u.store.ItemCount()
}
