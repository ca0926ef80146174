package usecase

import (
	"context"

	"github.com/example/shipment-label-service/internal/domain"
)

// CreateShipment — создать отправление в статусе draft.
type CreateShipment struct {
	Repo  domain.ShipmentRepository
	Cache domain.ShipmentCache
}

func (uc CreateShipment) Execute(ctx context.Context, s *domain.Shipment) (string, error) {
	if s.Shipper.Name == "" || s.Receiver.Name == "" || s.Receiver.Country == "" {
		return "", domain.ErrValidation
	}
	if s.Package == nil {
		return "", domain.ErrValidation
	}
	s.Status = domain.StatusDraft
	s.AirwayBillNumber = ""
	if s.ContentType != domain.ContentGoods {
		s.LineItems = nil
	}
	id, err := uc.Repo.Create(ctx, s)
	if err != nil {
		return "", err
	}
	s.ID = id
	if uc.Cache != nil {
		uc.Cache.Set(id, *s)
	}
	return id, nil
}

// GetShipment — получить отправление по идентификатору, сначала из кэша.
type GetShipment struct {
	Repo  domain.ShipmentRepository
	Cache domain.ShipmentCache
}

func (uc GetShipment) Execute(ctx context.Context, id string) (*domain.Shipment, error) {
	if uc.Cache != nil {
		if s, ok := uc.Cache.Get(id); ok {
			return &s, nil
		}
	}
	s, err := uc.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.Cache != nil {
		uc.Cache.Set(id, *s)
	}
	return s, nil
}

// UpdateShipment — изменить отправление; разрешено только в draft.
type UpdateShipment struct {
	Repo  domain.ShipmentRepository
	Cache domain.ShipmentCache
}

func (uc UpdateShipment) Execute(ctx context.Context, s *domain.Shipment) error {
	current, err := uc.Repo.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	if current.Status != domain.StatusDraft {
		return &domain.PreconditionError{Reason: "shipment is not in draft status"}
	}
	s.Status = current.Status
	s.AirwayBillNumber = current.AirwayBillNumber
	if s.ContentType != domain.ContentGoods {
		s.LineItems = nil
	}
	if err := uc.Repo.Update(ctx, s); err != nil {
		return err
	}
	if uc.Cache != nil {
		uc.Cache.Set(s.ID, *s)
	}
	return nil
}

// DeleteShipment — удалить отправление.
type DeleteShipment struct {
	Repo  domain.ShipmentRepository
	Cache domain.ShipmentCache
}

func (uc DeleteShipment) Execute(ctx context.Context, id string) error {
	if err := uc.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if uc.Cache != nil {
		uc.Cache.Delete(id)
	}
	return nil
}

// ListShipments — список отправлений с фильтрами, новые сверху.
type ListShipments struct {
	Repo domain.ShipmentRepository
}

func (uc ListShipments) Execute(ctx context.Context, f domain.ListFilter) ([]domain.ShipmentSummary, error) {
	return uc.Repo.List(ctx, f)
}

// GetShipmentStats — количество отправлений по статусам.
type GetShipmentStats struct {
	Repo domain.ShipmentRepository
}

func (uc GetShipmentStats) Execute(ctx context.Context) (domain.ShipmentStats, error) {
	return uc.Repo.Stats(ctx)
}

// WarmCache — загрузить все отправления из репозитория в кэш при старте.
type WarmCache struct {
	Repo  domain.ShipmentRepository
	Cache domain.ShipmentCache
}

func (uc WarmCache) Execute(ctx context.Context) error {
	return uc.Repo.LoadAll(ctx, func(s domain.Shipment) error {
		uc.Cache.Set(s.ID, s)
		return nil
	})
}
