package usecase

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"laza-storefront/internal/domain"
	"laza-storefront/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedItems = []domain.CatalogItem{
	{ID: "1", Name: "T-shirt", Price: 20, Image: "https://via.placeholder.com/150"},
	{ID: "2", Name: "Jeans", Price: 30, Image: "https://via.placeholder.com/150"},
	{ID: "3", Name: "Dress", Price: 40, Image: "https://via.placeholder.com/150"},
}

func newTestCatalog(t *testing.T, items ...domain.CatalogItem) (*CatalogRepository, *mocks.MockCatalogGateway, *mocks.MockEventPublisher) {
	t.Helper()
	gw := mocks.NewMockCatalogGateway(items...)
	pub := &mocks.MockEventPublisher{}
	repo := NewCatalogRepository(gw, WithEventPublisher(pub, "instance-a"))
	_, err := repo.Refresh(context.Background())
	require.NoError(t, err)
	return repo, gw, pub
}

func validDraft(t *testing.T, name, price, image string) domain.ValidatedItem {
	t.Helper()
	item, err := domain.ValidateDraft(domain.DraftFields{Name: name, Price: price, Image: image})
	require.NoError(t, err)
	return item
}

// recordingPurger remembers purged ids and whether the mirror still had them.
type recordingPurger struct {
	mu            sync.Mutex
	repo          *CatalogRepository
	ids           []string
	stillMirrored []bool
}

func (p *recordingPurger) Purge(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ids = append(p.ids, id)
	p.stillMirrored = append(p.stillMirrored, p.repo.Mirror().Contains(id))
}

// ============================================
// Refresh Tests
// ============================================

func TestCatalogRepository_StartsEmpty(t *testing.T) {
	repo := NewCatalogRepository(mocks.NewMockCatalogGateway(seedItems...))

	assert.Equal(t, 0, repo.Mirror().Len())
}

func TestCatalogRepository_Refresh_MirrorsRemoteOrder(t *testing.T) {
	repo, gw, _ := newTestCatalog(t, seedItems...)

	assert.Equal(t, seedItems, repo.Mirror().Items())
	assert.Equal(t, 1, gw.ListCalls)
	assert.False(t, repo.Mirror().RefreshedAt.IsZero())
}

func TestCatalogRepository_Refresh_FailureKeepsMirror(t *testing.T) {
	repo, gw, _ := newTestCatalog(t, seedItems...)
	before := repo.Mirror()

	gw.ListErr = errors.New("unavailable")
	mirror, err := repo.Refresh(context.Background())

	assert.Nil(t, mirror)
	assert.ErrorIs(t, err, domain.ErrGateway)
	assert.Same(t, before, repo.Mirror())
	assert.Equal(t, seedItems, repo.Mirror().Items())
}

func TestCatalogRepository_Refresh_SkipsMalformedDocuments(t *testing.T) {
	repo, _, _ := newTestCatalog(t,
		domain.CatalogItem{ID: "1", Name: "ok", Price: 5, Image: "i"},
		domain.CatalogItem{ID: "", Name: "no id", Price: 5, Image: "i"},
		domain.CatalogItem{ID: "3", Name: "negative", Price: -1, Image: "i"},
		domain.CatalogItem{ID: "4", Name: "nan", Price: math.NaN(), Image: "i"},
		domain.CatalogItem{ID: "5", Name: "inf", Price: math.Inf(1), Image: "i"},
	)

	assert.Equal(t, 1, repo.Mirror().Len())
	assert.True(t, repo.Mirror().Contains("1"))
}

func TestCatalogRepository_Refresh_SwapsAtomically(t *testing.T) {
	repo, gw, _ := newTestCatalog(t, seedItems...)
	old := repo.Mirror()

	entered := make(chan struct{})
	release := make(chan struct{})
	gw.BeforeList = func() {
		close(entered)
		<-release
	}
	gw.Put(domain.CatalogItem{ID: "4", Name: "Hat", Price: 15, Image: "h"})

	done := make(chan error, 1)
	go func() {
		_, err := repo.Refresh(context.Background())
		done <- err
	}()

	<-entered
	// While the list call is in flight readers still see the previous mirror.
	assert.Same(t, old, repo.Mirror())
	assert.Equal(t, 3, repo.Mirror().Len())

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, 4, repo.Mirror().Len())
	// A mirror handed out earlier is never mutated.
	assert.Equal(t, 3, old.Len())
	assert.False(t, old.Contains("4"))
}

// ============================================
// Create Tests
// ============================================

func TestCatalogRepository_Create_Success(t *testing.T) {
	repo, gw, pub := newTestCatalog(t, seedItems...)

	item, err := repo.Create(context.Background(), validDraft(t, "Hat", "15", "h"))

	require.NoError(t, err)
	assert.Equal(t, "101", item.ID)
	assert.Equal(t, "Hat", item.Name)
	assert.Equal(t, 15.0, item.Price)
	assert.Equal(t, 4, repo.Mirror().Len())
	assert.True(t, repo.Mirror().Contains("101"))
	assert.Equal(t, []domain.ItemFields{{Name: "Hat", Price: 15, Image: "h"}}, gw.CreateCalls)
	assert.Equal(t, 2, gw.ListCalls)

	require.Len(t, pub.Events, 1)
	assert.Equal(t, domain.CatalogItemCreated, pub.Events[0].Type)
	assert.Equal(t, "101", pub.Events[0].ItemID)
	assert.Equal(t, "instance-a", pub.Events[0].Origin)
}

func TestCatalogRepository_Create_RejectsZeroPayload(t *testing.T) {
	repo, gw, _ := newTestCatalog(t, seedItems...)
	calls := gw.TotalCalls()

	_, err := repo.Create(context.Background(), domain.ValidatedItem{})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, calls, gw.TotalCalls())
}

func TestCatalogRepository_Create_GatewayFailure(t *testing.T) {
	repo, gw, pub := newTestCatalog(t, seedItems...)
	before := repo.Mirror()
	gw.CreateErr = errors.New("timeout")

	item, err := repo.Create(context.Background(), validDraft(t, "Hat", "15", "h"))

	assert.ErrorIs(t, err, domain.ErrGateway)
	assert.Empty(t, item.ID)
	assert.Same(t, before, repo.Mirror())
	assert.Empty(t, pub.Events)
}

func TestCatalogRepository_Create_RefreshFailureStillReportsItem(t *testing.T) {
	repo, gw, pub := newTestCatalog(t, seedItems...)
	gw.ListErr = errors.New("list down")

	item, err := repo.Create(context.Background(), validDraft(t, "Hat", "15", "h"))

	assert.ErrorIs(t, err, domain.ErrGateway)
	assert.Equal(t, "101", item.ID)
	assert.False(t, repo.Mirror().Contains("101"))
	assert.Len(t, pub.Events, 1)
}

// ============================================
// Update Tests
// ============================================

func TestCatalogRepository_Update_Success(t *testing.T) {
	repo, gw, pub := newTestCatalog(t, seedItems...)

	item, err := repo.Update(context.Background(), "2", validDraft(t, "Slim Jeans", "35", "j2"))

	require.NoError(t, err)
	assert.Equal(t, domain.CatalogItem{ID: "2", Name: "Slim Jeans", Price: 35, Image: "j2"}, item)
	assert.Equal(t, []mocks.UpdateCall{{ID: "2", Fields: domain.ItemFields{Name: "Slim Jeans", Price: 35, Image: "j2"}}}, gw.UpdateCalls)

	got, ok := repo.Mirror().Find("2")
	require.True(t, ok)
	assert.Equal(t, "Slim Jeans", got.Name)
	assert.Equal(t, 3, repo.Mirror().Len())

	require.Len(t, pub.Events, 1)
	assert.Equal(t, domain.CatalogItemUpdated, pub.Events[0].Type)
}

func TestCatalogRepository_Update_UnknownIDMakesNoGatewayCall(t *testing.T) {
	repo, gw, _ := newTestCatalog(t, seedItems...)
	calls := gw.TotalCalls()

	_, err := repo.Update(context.Background(), "999", validDraft(t, "X", "1", "i"))

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, errors.Is(err, domain.ErrGateway))
	assert.Equal(t, calls, gw.TotalCalls())
}

func TestCatalogRepository_Update_RemoteNotFoundIsGatewayError(t *testing.T) {
	repo, gw, _ := newTestCatalog(t, seedItems...)
	// Another admin removed the document after our last refresh.
	gw.Remove("2")

	_, err := repo.Update(context.Background(), "2", validDraft(t, "X", "1", "i"))

	assert.ErrorIs(t, err, domain.ErrGateway)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ============================================
// Delete Tests
// ============================================

func TestCatalogRepository_Delete_PurgesAfterRefresh(t *testing.T) {
	repo, gw, pub := newTestCatalog(t, seedItems...)
	purger := &recordingPurger{repo: repo}
	repo.Subscribe("s1", purger)

	err := repo.Delete(context.Background(), "2")

	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, gw.DeleteCalls)
	assert.False(t, repo.Mirror().Contains("2"))
	assert.Equal(t, []string{"2"}, purger.ids)
	assert.Equal(t, []bool{false}, purger.stillMirrored)

	require.Len(t, pub.Events, 1)
	assert.Equal(t, domain.CatalogItemDeleted, pub.Events[0].Type)
}

func TestCatalogRepository_Delete_UnknownIDMakesNoGatewayCall(t *testing.T) {
	repo, gw, _ := newTestCatalog(t, seedItems...)
	purger := &recordingPurger{repo: repo}
	repo.Subscribe("s1", purger)
	calls := gw.TotalCalls()

	err := repo.Delete(context.Background(), "999")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, calls, gw.TotalCalls())
	assert.Empty(t, purger.ids)
}

func TestCatalogRepository_Delete_GatewayFailureDoesNotPurge(t *testing.T) {
	repo, gw, pub := newTestCatalog(t, seedItems...)
	purger := &recordingPurger{repo: repo}
	repo.Subscribe("s1", purger)
	gw.DeleteErr = errors.New("boom")

	err := repo.Delete(context.Background(), "2")

	assert.ErrorIs(t, err, domain.ErrGateway)
	assert.True(t, repo.Mirror().Contains("2"))
	assert.Empty(t, purger.ids)
	assert.Empty(t, pub.Events)
}

func TestCatalogRepository_Delete_RefreshFailureStillPurges(t *testing.T) {
	repo, gw, _ := newTestCatalog(t, seedItems...)
	purger := &recordingPurger{repo: repo}
	repo.Subscribe("s1", purger)
	gw.ListErr = errors.New("list down")

	err := repo.Delete(context.Background(), "2")

	assert.ErrorIs(t, err, domain.ErrGateway)
	assert.Equal(t, []string{"2"}, purger.ids)
}

func TestCatalogRepository_Unsubscribe(t *testing.T) {
	repo, _, _ := newTestCatalog(t, seedItems...)
	purger := &recordingPurger{repo: repo}
	repo.Subscribe("s1", purger)
	repo.Unsubscribe("s1")

	require.NoError(t, repo.Delete(context.Background(), "1"))

	assert.Empty(t, purger.ids)
}

// ============================================
// Remote Event Tests
// ============================================

func TestCatalogRepository_ApplyRemoteEvent_IgnoresOwnEvents(t *testing.T) {
	repo, gw, _ := newTestCatalog(t, seedItems...)

	err := repo.ApplyRemoteEvent(context.Background(), domain.CatalogEvent{
		Type:   domain.CatalogItemCreated,
		ItemID: "1",
		Origin: "instance-a",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, gw.ListCalls)
}

func TestCatalogRepository_ApplyRemoteEvent_DeleteFromPeer(t *testing.T) {
	repo, gw, _ := newTestCatalog(t, seedItems...)
	purger := &recordingPurger{repo: repo}
	repo.Subscribe("s1", purger)
	gw.Remove("3")

	err := repo.ApplyRemoteEvent(context.Background(), domain.CatalogEvent{
		Type:   domain.CatalogItemDeleted,
		ItemID: "3",
		Origin: "instance-b",
	})

	require.NoError(t, err)
	assert.False(t, repo.Mirror().Contains("3"))
	assert.Equal(t, []string{"3"}, purger.ids)
	assert.Equal(t, []bool{false}, purger.stillMirrored)
}

func TestCatalogRepository_ApplyRemoteEvent_UpdateFromPeer(t *testing.T) {
	repo, gw, _ := newTestCatalog(t, seedItems...)
	gw.Put(domain.CatalogItem{ID: "1", Name: "Polo", Price: 22, Image: "p"})

	err := repo.ApplyRemoteEvent(context.Background(), domain.CatalogEvent{
		Type:   domain.CatalogItemUpdated,
		ItemID: "1",
		Origin: "instance-b",
	})

	require.NoError(t, err)
	item, _ := repo.Mirror().Find("1")
	assert.Equal(t, "Polo", item.Name)
}
