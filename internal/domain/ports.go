package domain

import "context"

// ListFilter — фильтры списка отправлений.
type ListFilter struct {
	Status             Status
	DestinationCountry string
}

// ShipmentRepository — порт для операций персистентности отправлений.
// GetByID возвращает агрегат целиком: строки товара по порядку и упаковку;
// отсутствующие строки товара нормализуются в пустой срез, не nil.
type ShipmentRepository interface {
	Create(ctx context.Context, s *Shipment) (string, error)
	GetByID(ctx context.Context, id string) (*Shipment, error)
	Update(ctx context.Context, s *Shipment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ListFilter) ([]ShipmentSummary, error)
	Stats(ctx context.Context) (ShipmentStats, error)
	// SetLabel переводит отправление из draft в label_created и сохраняет номер накладной.
	SetLabel(ctx context.Context, id, awb string) error
	LoadAll(ctx context.Context, fn func(s Shipment) error) error
}

// ShipmentCache — порт быстрого доступа к отправлениям (кэш).
type ShipmentCache interface {
	Get(id string) (Shipment, bool)
	Set(id string, s Shipment)
	Delete(id string)
}

// LabelEventPublisher — порт публикации событий выпуска накладной.
type LabelEventPublisher interface {
	PublishLabelCreated(e LabelCreatedEvent) error
}
