package domain

import "sort"

// FavoriteSet is a sorted snapshot of starred catalog ids. Membership is local
// only and does not require the id to exist in the catalog.
type FavoriteSet struct {
	IDs []string `json:"ids"`
}

func NewFavoriteSet(ids map[string]struct{}) FavoriteSet {
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return FavoriteSet{IDs: out}
}

func (f FavoriteSet) Contains(id string) bool {
	i := sort.SearchStrings(f.IDs, id)
	return i < len(f.IDs) && f.IDs[i] == id
}

func (f FavoriteSet) Len() int {
	return len(f.IDs)
}
