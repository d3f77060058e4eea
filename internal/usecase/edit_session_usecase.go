package usecase

import (
	"context"
	"fmt"
	"sync"

	"laza-storefront/internal/domain"
	"laza-storefront/pkg/logger"
)

// catalogWriter is the part of CatalogRepository the edit workflow commits through.
type catalogWriter interface {
	Mirror() *domain.CatalogMirror
	Create(ctx context.Context, draft domain.ValidatedItem) (domain.CatalogItem, error)
	Update(ctx context.Context, id string, draft domain.ValidatedItem) (domain.CatalogItem, error)
}

// EditSessionUsecase drives the admin add/edit form: Idle -> Drafting -> Submitting -> Idle.
// At most one draft exists; Begin and Cancel discard whatever was there before.
type EditSessionUsecase struct {
	catalog catalogWriter

	mu         sync.Mutex
	session    domain.EditSession
	generation uint64
}

func NewEditSessionUsecase(catalog catalogWriter) *EditSessionUsecase {
	return &EditSessionUsecase{
		catalog: catalog,
		session: domain.EditSession{State: domain.EditStateIdle},
	}
}

func (u *EditSessionUsecase) Session() domain.EditSession {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.session
}

// Begin starts a new draft from any state. For an existing item the fields are
// pre-filled from the current mirror; an id missing from the mirror leaves the
// previous state untouched.
func (u *EditSessionUsecase) Begin(target domain.EditTarget) (domain.EditSession, error) {
	fields := domain.DraftFields{}
	if !target.IsNew() {
		item, ok := u.catalog.Mirror().Find(target.ItemID)
		if !ok {
			return u.Session(), fmt.Errorf("begin edit %q: %w", target.ItemID, domain.ErrNotFound)
		}
		fields = domain.DraftFromItem(item)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.generation++
	u.session = domain.EditSession{
		State:  domain.EditStateDrafting,
		Target: target,
		Fields: fields,
	}
	return u.session, nil
}

// EditField stores raw input without validating it. Outside of Drafting, or for
// an unknown field name, it does nothing.
func (u *EditSessionUsecase) EditField(name, value string) domain.EditSession {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.session.State != domain.EditStateDrafting || !domain.IsDraftField(name) {
		return u.session
	}
	u.session.Fields = u.session.Fields.With(name, value)
	return u.session
}

// Submit validates the draft and commits it through the catalog. Validation and
// gateway failures return the session to Drafting with the fields intact. If a
// Begin or Cancel happens while the commit is in flight, the newer state is kept.
func (u *EditSessionUsecase) Submit(ctx context.Context) (domain.CatalogItem, error) {
	u.mu.Lock()
	if u.session.State != domain.EditStateDrafting {
		u.mu.Unlock()
		return domain.CatalogItem{}, domain.ErrInvalidState
	}
	draft, err := domain.ValidateDraft(u.session.Fields)
	if err != nil {
		u.mu.Unlock()
		return domain.CatalogItem{}, err
	}
	u.session.State = domain.EditStateSubmitting
	gen := u.generation
	target := u.session.Target
	u.mu.Unlock()

	var item domain.CatalogItem
	if target.IsNew() {
		item, err = u.catalog.Create(ctx, draft)
	} else {
		item, err = u.catalog.Update(ctx, target.ItemID, draft)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.generation != gen {
		return item, err
	}

	// A non-empty id means the remote write went through even if the
	// follow-up refresh failed; the draft is then already committed.
	if err != nil && item.ID == "" {
		u.session.State = domain.EditStateDrafting
		return item, err
	}

	u.generation++
	u.session = domain.EditSession{State: domain.EditStateIdle}
	logger.Info().
		Str("item_id", item.ID).
		Bool("new", target.IsNew()).
		Msg("Catalog edit committed")
	return item, err
}

// Cancel discards the draft from any state.
func (u *EditSessionUsecase) Cancel() domain.EditSession {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.generation++
	u.session = domain.EditSession{State: domain.EditStateIdle}
	return u.session
}
