package dhl

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/example/shipment-label-service/internal/domain"
)

// Лимиты длин строковых полей wire-формата; всё сверх лимита молча обрезается.
const (
	maxPostalCode   = 12
	maxCity         = 45
	maxAddressLine  = 45
	maxFullName     = 70
	maxCompanyName  = 45
	maxEmail        = 80
	maxPhone        = 25
	maxItemDesc     = 75
	maxQuantityUnit = 20
	maxCommodity    = 20
	maxCurrency     = 3
	maxCountryCode  = 2
)

// fallbackCommodityCode подставляется, когда HS-код отсутствует
// или после удаления разделителей не содержит цифр.
const fallbackCommodityCode = "84713000"

// AccountConfig — номера счетов DHL. Оба блока accounts (shipper и payer)
// заполняются экспортным счётом; импортный зарезервирован.
type AccountConfig struct {
	ExportAccount string
	ImportAccount string
}

// MapCreateShipmentRequest преобразует отправление в тело запроса
// Create Shipment. Чистая тотальная функция: не падает ни на каком
// корректно типизированном входе, мусорные числа заменяются умолчаниями.
// Момент now задаёт плановую дату отгрузки (now+1 день) и номер инвойса.
//
// Известное ограничение: валюта declaredValue берётся из первой строки
// товара и применяется ко всему отправлению, даже если строки различаются.
func MapCreateShipmentRequest(s *domain.Shipment, cfg AccountConfig, now time.Time) *CreateShipmentRequest {
	shipperAddress := PostalAddress{
		PostalCode:   clip(s.Shipper.PostalCode, maxPostalCode),
		CityName:     clip(s.Shipper.City, maxCity),
		CountryCode:  "KR",
		AddressLine1: clip(s.Shipper.Address1, maxAddressLine),
		AddressLine2: clip(s.Shipper.Address2, maxAddressLine),
		CountryName:  "KOREA, REPUBLIC OF",
	}

	receiverCountry := clip(strings.ToUpper(s.Receiver.Country), maxCountryCode)
	receiverAddress := PostalAddress{
		PostalCode:   clip(s.Receiver.PostalCode, maxPostalCode),
		CityName:     clip(s.Receiver.City, maxCity),
		CountryCode:  clip(strOr(s.Receiver.Country, "US"), maxCountryCode),
		AddressLine1: clip(s.Receiver.Address1, maxAddressLine),
		AddressLine2: clip(s.Receiver.Address2, maxAddressLine),
		CountryName:  countryName(receiverCountry),
	}

	customerDetails := CustomerDetails{
		ShipperDetails: CustomerDetail{
			PostalAddress: shipperAddress,
			ContactInformation: ContactInformation{
				FullName:    clip(s.Shipper.Name, maxFullName),
				CompanyName: clip(s.Shipper.Name, maxCompanyName),
				Email:       "shipper@example.com",
				Phone:       "01012345678",
			},
			TypeCode: "business",
		},
		ReceiverDetails: CustomerDetail{
			PostalAddress: receiverAddress,
			ContactInformation: ContactInformation{
				FullName:    clip(s.Receiver.Name, maxFullName),
				CompanyName: clip(strOr(s.Receiver.Company, s.Receiver.Name), maxCompanyName),
				Email:       clip(s.Receiver.Email, maxEmail),
				Phone:       clip(s.Receiver.Phone, maxPhone),
			},
			TypeCode: "business",
		},
	}

	pkg := s.Package
	if pkg == nil {
		pkg = &domain.Package{}
	}
	packages := []PackageItem{
		{
			TypeCode: "2BP",
			Weight:   math.Max(0.001, numOr(pkg.Weight, 1)),
			Dimensions: Dimensions{
				Length: flooredDim(pkg.Length),
				Width:  flooredDim(pkg.Width),
				Height: flooredDim(pkg.Height),
			},
			CustomerReferences: []CustomerReference{
				{Value: strOr(s.Receiver.PostalCode, "REF"), TypeCode: "CU"},
			},
		},
	}

	var services []ValueAddedService
	if s.GoGreenPlus {
		services = append(services, ValueAddedService{ServiceCode: "YY"})
	}

	isGoods := s.ContentType == domain.ContentGoods && len(s.LineItems) > 0

	description := "Documents"
	if isGoods {
		description = "Shipment"
	}

	req := &CreateShipmentRequest{
		PlannedShippingDateAndTime: formatPlannedShipping(now.AddDate(0, 0, 1)),
		Pickup:                     Pickup{IsRequested: false},
		ProductCode:                "P",
		GetRateEstimates:           false,
		Accounts: []Account{
			{TypeCode: "shipper", Number: cfg.ExportAccount},
			{TypeCode: "payer", Number: cfg.ExportAccount},
		},
		ValueAddedServices: services,
		OutputImageProperties: OutputImageProperties{
			PrinterDPI:     300,
			EncodingFormat: "pdf",
			ImageOptions: []ImageOption{
				{TypeCode: "label", TemplateName: "ECOM26_84_001", RenderDHLLogo: boolPtr(true), FitLabelsToA4: boolPtr(false)},
				{TypeCode: "waybillDoc", TemplateName: "ARCH_8X4", IsRequested: boolPtr(true), HideAccountNumber: boolPtr(false), NumberOfCopies: 1},
			},
			SplitTransportAndWaybillDocLabels: true,
		},
		CustomerDetails: customerDetails,
		Content: Content{
			Packages:            packages,
			Description:         description,
			Incoterm:            "DAP",
			UnitOfMeasurement:   "metric",
			IsCustomsDeclarable: isGoods,
		},
	}

	if isGoods {
		req.Content.DeclaredValue, req.Content.DeclaredValueCurrency = declaredValue(s.LineItems)
		req.Content.ExportDeclaration = buildExportDeclaration(s.LineItems, pkg, now)
	}

	return req
}

// declaredValue — суммарная стоимость строк, не менее 1 (требование
// валидации перевозчика), и валюта первой строки.
func declaredValue(items []domain.LineItem) (float64, string) {
	var total float64
	for _, li := range items {
		total += numOr(li.Value, 0)
	}
	currency := clip(strOr(items[0].ValueCurrency, "USD"), maxCurrency)
	return math.Max(1, numOr(total, 10)), currency
}

func buildExportDeclaration(items []domain.LineItem, pkg *domain.Package, now time.Time) *ExportDeclaration {
	var totalWeight float64
	lineItems := make([]ExportLineItem, 0, len(items))
	for i, li := range items {
		totalWeight += numOr(firstNonZero(li.WeightGross, li.WeightNet), 0)
		lineItems = append(lineItems, ExportLineItem{
			Number:      i + 1,
			Description: clip(strOr(li.Description, "Item"), maxItemDesc),
			Price:       numOr(li.Value, 0),
			Quantity: Quantity{
				Value:             intOr(li.QuantityValue, 1),
				UnitOfMeasurement: clip(strOr(li.QuantityUnit, "PCS"), maxQuantityUnit),
			},
			CommodityCodes: []CommodityCode{
				{TypeCode: "outbound", Value: commodityCode(li.HSCode)},
			},
			ExportReasonType:    mapExportReason(li.ExportReasonType),
			ManufacturerCountry: clip(strOr(li.ManufacturerCountry, "KR"), maxCountryCode),
			Weight: LineItemWeight{
				NetValue:   firstNonZero(li.WeightNet, li.WeightGross, 0.1),
				GrossValue: firstNonZero(li.WeightGross, li.WeightNet, 0.1),
			},
			IsTaxesPaid: true,
		})
	}

	return &ExportDeclaration{
		LineItems: lineItems,
		Invoice: Invoice{
			Number:           "INV-" + strconv.FormatInt(now.UnixMilli(), 10),
			Date:             now.Format("2006-01-02"),
			TotalNetWeight:   firstNonZero(totalWeight, pkg.Weight),
			TotalGrossWeight: pkg.Weight,
			ExportReasonType: "permanent",
		},
		// причина на уровне декларации всегда permanent, построчные независимы
		ExportReasonType: "permanent",
	}
}

// commodityCode оставляет в HS-коде только цифры (точки-разделители
// отбрасываются); пустой результат заменяется резервным кодом.
func commodityCode(hs string) string {
	digits := clip(digitsOnly(hs), maxCommodity)
	if digits == "" {
		return fallbackCommodityCode
	}
	return digits
}

// mapExportReason — фиксированная таблица причин вывоза; commercial и любое
// нераспознанное значение (включая иной регистр) дают permanent.
func mapExportReason(t domain.ExportReasonType) string {
	switch t {
	case domain.ExportReasonSample:
		return "sample"
	case domain.ExportReasonRepair:
		return "repair"
	default:
		return "permanent"
	}
}

// formatPlannedShipping — ISO-8601 с явным суффиксом смещения,
// как того требует расписание внешнего API.
func formatPlannedShipping(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05") + " GMT+00:00"
}

// flooredDim — габарит не меньше 1 после округления до целого.
func flooredDim(v float64) int {
	d := int(math.Round(numOr(v, 10)))
	if d < 1 {
		return 1
	}
	return d
}

// numOr — именованная политика «не падать на мусоре»: ноль и NaN
// заменяются умолчанием, остальные значения проходят как есть.
func numOr(v, def float64) float64 {
	if v == 0 || math.IsNaN(v) {
		return def
	}
	return v
}

func intOr(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// firstNonZero возвращает первое ненулевое значение либо 0.
func firstNonZero(vals ...float64) float64 {
	for _, v := range vals {
		if v != 0 && !math.IsNaN(v) {
			return v
		}
	}
	return 0
}

func strOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// clip обрезает строку до max рун; обрезка, не отказ.
func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func boolPtr(b bool) *bool { return &b }
