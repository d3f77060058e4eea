package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFavoritesUsecase_Toggle(t *testing.T) {
	fav := NewFavoritesUsecase()

	set := fav.Toggle("2")
	assert.True(t, set.Contains("2"))
	assert.True(t, fav.IsFavorite("2"))

	set = fav.Toggle("2")
	assert.False(t, set.Contains("2"))
	assert.False(t, fav.IsFavorite("2"))
}

func TestFavoritesUsecase_UnknownIDAllowed(t *testing.T) {
	fav := NewFavoritesUsecase()

	set := fav.Toggle("not-in-catalog")

	assert.Equal(t, []string{"not-in-catalog"}, set.IDs)
}

func TestFavoritesUsecase_SetIsSorted(t *testing.T) {
	fav := NewFavoritesUsecase()
	fav.Toggle("3")
	fav.Toggle("1")
	fav.Toggle("2")

	assert.Equal(t, []string{"1", "2", "3"}, fav.Set().IDs)
}

func TestFavoritesUsecase_Purge(t *testing.T) {
	fav := NewFavoritesUsecase()
	fav.Toggle("1")
	fav.Toggle("2")

	fav.Purge("1")
	fav.Purge("never-added")

	assert.Equal(t, []string{"2"}, fav.Set().IDs)
}
