package usecase

import (
	"sync"

	"laza-storefront/internal/domain"
)

// FavoritesUsecase tracks the ids a shopper has starred. It never consults the
// catalog, so toggling an unknown id is allowed.
type FavoritesUsecase struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewFavoritesUsecase() *FavoritesUsecase {
	return &FavoritesUsecase{ids: make(map[string]struct{})}
}

func (f *FavoritesUsecase) Toggle(id string) domain.FavoriteSet {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ids[id]; ok {
		delete(f.ids, id)
	} else {
		f.ids[id] = struct{}{}
	}
	return domain.NewFavoriteSet(f.ids)
}

func (f *FavoritesUsecase) IsFavorite(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ids[id]
	return ok
}

func (f *FavoritesUsecase) Set() domain.FavoriteSet {
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.NewFavoriteSet(f.ids)
}

func (f *FavoritesUsecase) Purge(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.ids, id)
}
