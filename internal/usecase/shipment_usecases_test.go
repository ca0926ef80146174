package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shipment-label-service/internal/domain"
)

func TestCreateShipmentValidation(t *testing.T) {
	repo := newFakeRepo()
	uc := CreateShipment{Repo: repo, Cache: newFakeCache()}

	tests := []struct {
		name   string
		mutate func(s *domain.Shipment)
	}{
		{"missing shipper name", func(s *domain.Shipment) { s.Shipper.Name = "" }},
		{"missing receiver name", func(s *domain.Shipment) { s.Receiver.Name = "" }},
		{"missing receiver country", func(s *domain.Shipment) { s.Receiver.Country = "" }},
		{"missing package", func(s *domain.Shipment) { s.Package = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := draftShipment("")
			tt.mutate(s)
			_, err := uc.Execute(context.Background(), s)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCreateShipmentStartsInDraft(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	uc := CreateShipment{Repo: repo, Cache: cache}

	s := draftShipment("")
	s.Status = domain.StatusDelivered // статус на входе игнорируется
	s.AirwayBillNumber = "AWB999"

	id, err := uc.Execute(context.Background(), s)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	stored, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, stored.Status)
	assert.Empty(t, stored.AirwayBillNumber)

	_, ok := cache.Get(id)
	assert.True(t, ok)
}

func TestCreateShipmentDropsLineItemsForDocuments(t *testing.T) {
	repo := newFakeRepo()
	uc := CreateShipment{Repo: repo, Cache: newFakeCache()}

	s := draftShipment("")
	s.ContentType = domain.ContentDocuments
	s.LineItems = []domain.LineItem{{Description: "stray"}}

	id, err := uc.Execute(context.Background(), s)
	require.NoError(t, err)
	stored, _ := repo.GetByID(context.Background(), id)
	assert.Empty(t, stored.LineItems)
}

func TestGetShipmentUsesCacheFirst(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	cache.Set("s1", *draftShipment("s1"))

	uc := GetShipment{Repo: repo, Cache: cache}
	s, err := uc.Execute(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)
}

func TestGetShipmentFillsCacheOnMiss(t *testing.T) {
	repo := newFakeRepo(draftShipment("s1"))
	cache := newFakeCache()

	uc := GetShipment{Repo: repo, Cache: cache}
	_, err := uc.Execute(context.Background(), "s1")
	require.NoError(t, err)

	_, ok := cache.Get("s1")
	assert.True(t, ok)
}

func TestGetShipmentNotFound(t *testing.T) {
	uc := GetShipment{Repo: newFakeRepo(), Cache: newFakeCache()}
	_, err := uc.Execute(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateShipmentOnlyInDraft(t *testing.T) {
	s := draftShipment("s1")
	s.Status = domain.StatusLabelCreated
	s.AirwayBillNumber = "AWB001"
	repo := newFakeRepo(s)

	uc := UpdateShipment{Repo: repo, Cache: newFakeCache()}
	upd := draftShipment("s1")
	upd.Receiver.City = "Boston"

	err := uc.Execute(context.Background(), upd)
	var precond *domain.PreconditionError
	assert.ErrorAs(t, err, &precond)
}

func TestUpdateShipmentKeepsStatusAndAwb(t *testing.T) {
	repo := newFakeRepo(draftShipment("s1"))
	cache := newFakeCache()
	uc := UpdateShipment{Repo: repo, Cache: cache}

	upd := draftShipment("s1")
	upd.Receiver.City = "Boston"
	upd.Status = domain.StatusDelivered // подделка статуса через update невозможна

	require.NoError(t, uc.Execute(context.Background(), upd))

	stored, _ := repo.GetByID(context.Background(), "s1")
	assert.Equal(t, domain.StatusDraft, stored.Status)
	assert.Equal(t, "Boston", stored.Receiver.City)

	cached, ok := cache.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "Boston", cached.Receiver.City)
}

func TestDeleteShipmentEvictsCache(t *testing.T) {
	repo := newFakeRepo(draftShipment("s1"))
	cache := newFakeCache()
	cache.Set("s1", *draftShipment("s1"))

	uc := DeleteShipment{Repo: repo, Cache: cache}
	require.NoError(t, uc.Execute(context.Background(), "s1"))

	_, ok := cache.Get("s1")
	assert.False(t, ok)
	_, err := repo.GetByID(context.Background(), "s1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarmCache(t *testing.T) {
	repo := newFakeRepo(draftShipment("s1"), draftShipment("s2"))
	cache := newFakeCache()

	uc := WarmCache{Repo: repo, Cache: cache}
	require.NoError(t, uc.Execute(context.Background()))

	for _, id := range []string{"s1", "s2"} {
		_, ok := cache.Get(id)
		assert.True(t, ok, "shipment %s not cached", id)
	}
}
