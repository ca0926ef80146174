package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/shipment-label-service/internal/dhl"
	"github.com/example/shipment-label-service/internal/domain"
)

// CarrierGateway — потребительский интерфейс клиента перевозчика.
type CarrierGateway interface {
	CreateShipment(ctx context.Context, body *dhl.CreateShipmentRequest) (*dhl.CreateShipmentResponse, error)
}

// CreateLabel — выпуск накладной: guard → mapper → client → persist.
// Повторный вызов безопасен только пока запись остаётся в draft;
// защита от дублей — только статусный guard, не дедупликация запросов.
type CreateLabel struct {
	Repo      domain.ShipmentRepository
	Cache     domain.ShipmentCache
	Carrier   CarrierGateway
	Publisher domain.LabelEventPublisher
	Accounts  dhl.AccountConfig
	Log       *logrus.Logger
	Now       func() time.Time
}

func (uc CreateLabel) Execute(ctx context.Context, id string) (*dhl.CreateShipmentResponse, error) {
	if uc.Accounts.ExportAccount == "" {
		return nil, &domain.ConfigurationError{Field: "export account number"}
	}

	s, err := uc.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Status != domain.StatusDraft {
		return nil, &domain.PreconditionError{Reason: "shipment is not in draft status"}
	}
	if s.Package == nil {
		return nil, &domain.PreconditionError{Reason: "package data is missing"}
	}

	now := time.Now()
	if uc.Now != nil {
		now = uc.Now()
	}

	body := dhl.MapCreateShipmentRequest(s, uc.Accounts, now)
	resp, err := uc.Carrier.CreateShipment(ctx, body)
	if err != nil {
		return nil, err
	}
	if resp.ShipmentTrackingNumber == "" {
		return nil, &domain.ResponseShapeError{Missing: "shipmentTrackingNumber"}
	}

	if err := uc.Repo.SetLabel(ctx, id, resp.ShipmentTrackingNumber); err != nil {
		// накладная уже выпущена у перевозчика, локально запись осталась в draft
		return nil, &domain.PartialSuccessError{TrackingNumber: resp.ShipmentTrackingNumber, Cause: err}
	}

	s.Status = domain.StatusLabelCreated
	s.AirwayBillNumber = resp.ShipmentTrackingNumber
	if uc.Cache != nil {
		uc.Cache.Set(id, *s)
	}

	if uc.Publisher != nil {
		ev := domain.LabelCreatedEvent{
			ShipmentID:     id,
			TrackingNumber: resp.ShipmentTrackingNumber,
			OccurredAt:     now,
		}
		if err := uc.Publisher.PublishLabelCreated(ev); err != nil && uc.Log != nil {
			// событие best-effort, выпуск накладной уже состоялся
			uc.Log.WithError(err).Warn("label event publish failed")
		}
	}

	return resp, nil
}
