package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shipment-label-service/internal/dhl"
	"github.com/example/shipment-label-service/internal/domain"
)

type fakeRepo struct {
	shipments map[string]*domain.Shipment
	setLabel  error
	labels    map[string]string
}

func newFakeRepo(shipments ...*domain.Shipment) *fakeRepo {
	r := &fakeRepo{shipments: map[string]*domain.Shipment{}, labels: map[string]string{}}
	for _, s := range shipments {
		r.shipments[s.ID] = s
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, s *domain.Shipment) (string, error) {
	id := "gen-" + s.Shipper.Name
	cp := *s
	cp.ID = id
	r.shipments[id] = &cp
	return id, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*domain.Shipment, error) {
	s, ok := r.shipments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, s *domain.Shipment) error {
	if _, ok := r.shipments[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	r.shipments[s.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.shipments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.shipments, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, _ domain.ListFilter) ([]domain.ShipmentSummary, error) {
	return []domain.ShipmentSummary{}, nil
}

func (r *fakeRepo) Stats(_ context.Context) (domain.ShipmentStats, error) {
	return domain.ShipmentStats{}, nil
}

func (r *fakeRepo) SetLabel(_ context.Context, id, awb string) error {
	if r.setLabel != nil {
		return r.setLabel
	}
	s, ok := r.shipments[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Status = domain.StatusLabelCreated
	s.AirwayBillNumber = awb
	r.labels[id] = awb
	return nil
}

func (r *fakeRepo) LoadAll(_ context.Context, fn func(s domain.Shipment) error) error {
	for _, s := range r.shipments {
		if err := fn(*s); err != nil {
			return err
		}
	}
	return nil
}

type fakeCache struct {
	store map[string]domain.Shipment
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string]domain.Shipment{}} }

func (c *fakeCache) Get(id string) (domain.Shipment, bool) {
	s, ok := c.store[id]
	return s, ok
}
func (c *fakeCache) Set(id string, s domain.Shipment) { c.store[id] = s }
func (c *fakeCache) Delete(id string)                 { delete(c.store, id) }

type fakeCarrier struct {
	calls int
	resp  *dhl.CreateShipmentResponse
	err   error
}

func (c *fakeCarrier) CreateShipment(_ context.Context, _ *dhl.CreateShipmentRequest) (*dhl.CreateShipmentResponse, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.resp, nil
}

type fakePublisher struct {
	events []domain.LabelCreatedEvent
	err    error
}

func (p *fakePublisher) PublishLabelCreated(e domain.LabelCreatedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func draftShipment(id string) *domain.Shipment {
	return &domain.Shipment{
		ID:          id,
		Shipper:     domain.Shipper{Name: "Hong Gildong", Address1: "Teheran-ro", PostalCode: "06234", City: "Seoul"},
		Receiver:    domain.Receiver{Name: "John Doe", Country: "US", Address1: "Main St", PostalCode: "10001", City: "NYC", Email: "j@x.com", Phone: "123"},
		ContentType: domain.ContentDocuments,
		Status:      domain.StatusDraft,
		LineItems:   []domain.LineItem{},
		Package:     &domain.Package{Weight: 1, Length: 10, Width: 10, Height: 10},
	}
}

func TestCreateLabelHappyPath(t *testing.T) {
	repo := newFakeRepo(draftShipment("s1"))
	cache := newFakeCache()
	carrier := &fakeCarrier{resp: &dhl.CreateShipmentResponse{ShipmentTrackingNumber: "AWB001"}}
	publisher := &fakePublisher{}

	uc := CreateLabel{
		Repo: repo, Cache: cache, Carrier: carrier, Publisher: publisher,
		Accounts: dhl.AccountConfig{ExportAccount: "123456789"},
	}

	resp, err := uc.Execute(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "AWB001", resp.ShipmentTrackingNumber)
	assert.Equal(t, 1, carrier.calls)
	assert.Equal(t, "AWB001", repo.labels["s1"])

	cached, ok := cache.Get("s1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusLabelCreated, cached.Status)
	assert.Equal(t, "AWB001", cached.AirwayBillNumber)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "s1", publisher.events[0].ShipmentID)
	assert.Equal(t, "AWB001", publisher.events[0].TrackingNumber)
}

func TestCreateLabelStatusGuard(t *testing.T) {
	s := draftShipment("s1")
	s.Status = domain.StatusLabelCreated
	s.AirwayBillNumber = "AWB000"
	carrier := &fakeCarrier{resp: &dhl.CreateShipmentResponse{ShipmentTrackingNumber: "AWB001"}}

	uc := CreateLabel{
		Repo: newFakeRepo(s), Carrier: carrier,
		Accounts: dhl.AccountConfig{ExportAccount: "123456789"},
	}

	_, err := uc.Execute(context.Background(), "s1")
	var precond *domain.PreconditionError
	require.ErrorAs(t, err, &precond)
	// guard срабатывает до сетевого вызова
	assert.Equal(t, 0, carrier.calls)
}

func TestCreateLabelMissingPackage(t *testing.T) {
	s := draftShipment("s1")
	s.Package = nil
	carrier := &fakeCarrier{}

	uc := CreateLabel{
		Repo: newFakeRepo(s), Carrier: carrier,
		Accounts: dhl.AccountConfig{ExportAccount: "123456789"},
	}

	_, err := uc.Execute(context.Background(), "s1")
	var precond *domain.PreconditionError
	require.ErrorAs(t, err, &precond)
	assert.Equal(t, 0, carrier.calls)
}

func TestCreateLabelMissingConfiguration(t *testing.T) {
	carrier := &fakeCarrier{}
	uc := CreateLabel{Repo: newFakeRepo(draftShipment("s1")), Carrier: carrier}

	_, err := uc.Execute(context.Background(), "s1")
	var config *domain.ConfigurationError
	require.ErrorAs(t, err, &config)
	assert.Equal(t, 0, carrier.calls)
}

func TestCreateLabelUnknownShipment(t *testing.T) {
	uc := CreateLabel{
		Repo: newFakeRepo(), Carrier: &fakeCarrier{},
		Accounts: dhl.AccountConfig{ExportAccount: "123456789"},
	}
	_, err := uc.Execute(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateLabelResponseWithoutTrackingNumber(t *testing.T) {
	repo := newFakeRepo(draftShipment("s1"))
	carrier := &fakeCarrier{resp: &dhl.CreateShipmentResponse{DispatchConfirmationNumber: "DPK1"}}

	uc := CreateLabel{
		Repo: repo, Carrier: carrier,
		Accounts: dhl.AccountConfig{ExportAccount: "123456789"},
	}

	_, err := uc.Execute(context.Background(), "s1")
	var shape *domain.ResponseShapeError
	require.ErrorAs(t, err, &shape)
	// статус не менялся, запись осталась в draft
	s, _ := repo.GetByID(context.Background(), "s1")
	assert.Equal(t, domain.StatusDraft, s.Status)
}

func TestCreateLabelCarrierRejection(t *testing.T) {
	rejection := &domain.CarrierRejectionError{StatusCode: 422, Detail: "Invalid postal code"}
	uc := CreateLabel{
		Repo: newFakeRepo(draftShipment("s1")), Carrier: &fakeCarrier{err: rejection},
		Accounts: dhl.AccountConfig{ExportAccount: "123456789"},
	}
	_, err := uc.Execute(context.Background(), "s1")
	var got *domain.CarrierRejectionError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, "Invalid postal code", got.Detail)
}

func TestCreateLabelPartialSuccess(t *testing.T) {
	repo := newFakeRepo(draftShipment("s1"))
	repo.setLabel = errors.New("connection reset")
	carrier := &fakeCarrier{resp: &dhl.CreateShipmentResponse{ShipmentTrackingNumber: "AWB001"}}

	uc := CreateLabel{
		Repo: repo, Carrier: carrier,
		Accounts: dhl.AccountConfig{ExportAccount: "123456789"},
	}

	_, err := uc.Execute(context.Background(), "s1")
	var partial *domain.PartialSuccessError
	require.ErrorAs(t, err, &partial)
	// номер накладной сохраняется в ошибке для ручного разбора
	assert.Equal(t, "AWB001", partial.TrackingNumber)
	assert.Contains(t, partial.Error(), "connection reset")
}

func TestCreateLabelPublisherFailureIsNotFatal(t *testing.T) {
	repo := newFakeRepo(draftShipment("s1"))
	publisher := &fakePublisher{err: errors.New("stan down")}
	carrier := &fakeCarrier{resp: &dhl.CreateShipmentResponse{ShipmentTrackingNumber: "AWB001"}}

	uc := CreateLabel{
		Repo: repo, Carrier: carrier, Publisher: publisher,
		Accounts: dhl.AccountConfig{ExportAccount: "123456789"},
	}

	resp, err := uc.Execute(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "AWB001", resp.ShipmentTrackingNumber)
	assert.Equal(t, "AWB001", repo.labels["s1"])
}
