package domain

import "time"

// ContentType — классификация содержимого отправления.
type ContentType string

const (
	ContentDocuments ContentType = "documents"
	ContentGoods     ContentType = "goods"
)

// Status — статус жизненного цикла отправления.
type Status string

const (
	StatusDraft           Status = "draft"
	StatusLabelCreated    Status = "label_created"
	StatusPickupCompleted Status = "pickup_completed"
	StatusDelivered       Status = "delivered"
)

// ExportReasonType — причина вывоза по строке товара.
type ExportReasonType string

const (
	ExportReasonSample     ExportReasonType = "sample"
	ExportReasonRepair     ExportReasonType = "repair"
	ExportReasonCommercial ExportReasonType = "commercial"
)

// Shipper — отправитель (всегда из Кореи).
type Shipper struct {
	Name       string `json:"name"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2,omitempty"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

// Receiver — получатель.
type Receiver struct {
	Name       string `json:"name"`
	Company    string `json:"company,omitempty"`
	Country    string `json:"country"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2,omitempty"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// LineItem — строка товара; имеет смысл только при ContentGoods.
type LineItem struct {
	Description         string           `json:"description"`
	QuantityValue       int              `json:"quantity_value"`
	QuantityUnit        string           `json:"quantity_unit"`
	Value               float64          `json:"value"`
	ValueCurrency       string           `json:"value_currency,omitempty"`
	WeightNet           float64          `json:"weight_net,omitempty"`
	WeightGross         float64          `json:"weight_gross,omitempty"`
	HSCode              string           `json:"hs_code,omitempty"`
	ManufacturerCountry string           `json:"manufacturer_country,omitempty"`
	CustomerReference   string           `json:"customer_reference,omitempty"`
	ExportReasonType    ExportReasonType `json:"export_reason_type"`
}

// Package — габариты и вес единственного места отправления.
type Package struct {
	Weight float64 `json:"weight"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Shipment — доменная сущность отправления.
// Инвариант: AirwayBillNumber заполнен тогда и только тогда, когда Status != draft.
type Shipment struct {
	ID               string      `json:"id"`
	Shipper          Shipper     `json:"shipper"`
	Receiver         Receiver    `json:"receiver"`
	ContentType      ContentType `json:"content_type"`
	GoGreenPlus      bool        `json:"gogreen_plus"`
	Status           Status      `json:"status"`
	AirwayBillNumber string      `json:"airway_bill_number,omitempty"`
	LineItems        []LineItem  `json:"line_items"`
	Package          *Package    `json:"package"`
	CreatedAt        time.Time   `json:"created_at"`
}

// ShipmentSummary — строка списка отправлений.
type ShipmentSummary struct {
	ID                 string    `json:"id"`
	AirwayBillNumber   string    `json:"airway_bill_number,omitempty"`
	DestinationCountry string    `json:"destination_country"`
	Status             Status    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

// ShipmentStats — количество отправлений по статусам для дашборда.
type ShipmentStats struct {
	Draft           int `json:"draft"`
	LabelCreated    int `json:"label_created"`
	PickupCompleted int `json:"pickup_completed"`
	Delivered       int `json:"delivered"`
}

// LabelCreatedEvent — событие выпуска накладной, публикуется после перехода в label_created.
type LabelCreatedEvent struct {
	ShipmentID     string    `json:"shipment_id"`
	TrackingNumber string    `json:"tracking_number"`
	OccurredAt     time.Time `json:"occurred_at"`
}
