package dhl

// Типы тела запроса MyDHL API Create Shipment.
// Имена и вложенность полей должны совпадать с wire-форматом байт в байт.

type CreateShipmentRequest struct {
	PlannedShippingDateAndTime string                `json:"plannedShippingDateAndTime"`
	Pickup                     Pickup                `json:"pickup"`
	ProductCode                string                `json:"productCode"`
	GetRateEstimates           bool                  `json:"getRateEstimates"`
	Accounts                   []Account             `json:"accounts"`
	ValueAddedServices         []ValueAddedService   `json:"valueAddedServices,omitempty"`
	OutputImageProperties      OutputImageProperties `json:"outputImageProperties"`
	CustomerDetails            CustomerDetails       `json:"customerDetails"`
	Content                    Content               `json:"content"`
}

type Pickup struct {
	IsRequested bool `json:"isRequested"`
}

type Account struct {
	TypeCode string `json:"typeCode"`
	Number   string `json:"number"`
}

type ValueAddedService struct {
	ServiceCode string `json:"serviceCode"`
}

type OutputImageProperties struct {
	PrinterDPI                        int           `json:"printerDPI"`
	EncodingFormat                    string        `json:"encodingFormat"`
	ImageOptions                      []ImageOption `json:"imageOptions"`
	SplitTransportAndWaybillDocLabels bool          `json:"splitTransportAndWaybillDocLabels"`
}

// ImageOption покрывает оба варианта опций (label и waybillDoc);
// неиспользуемые поля опускаются через указатели.
type ImageOption struct {
	TypeCode          string `json:"typeCode"`
	TemplateName      string `json:"templateName"`
	RenderDHLLogo     *bool  `json:"renderDHLLogo,omitempty"`
	FitLabelsToA4     *bool  `json:"fitLabelsToA4,omitempty"`
	IsRequested       *bool  `json:"isRequested,omitempty"`
	HideAccountNumber *bool  `json:"hideAccountNumber,omitempty"`
	NumberOfCopies    int    `json:"numberOfCopies,omitempty"`
}

type CustomerDetails struct {
	ShipperDetails  CustomerDetail `json:"shipperDetails"`
	ReceiverDetails CustomerDetail `json:"receiverDetails"`
}

type CustomerDetail struct {
	PostalAddress      PostalAddress      `json:"postalAddress"`
	ContactInformation ContactInformation `json:"contactInformation"`
	TypeCode           string             `json:"typeCode"`
}

type PostalAddress struct {
	PostalCode   string `json:"postalCode"`
	CityName     string `json:"cityName"`
	CountryCode  string `json:"countryCode"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	CountryName  string `json:"countryName"`
}

type ContactInformation struct {
	FullName    string `json:"fullName"`
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

type Content struct {
	Packages              []PackageItem      `json:"packages"`
	Description           string             `json:"description"`
	Incoterm              string             `json:"incoterm"`
	UnitOfMeasurement     string             `json:"unitOfMeasurement"`
	IsCustomsDeclarable   bool               `json:"isCustomsDeclarable"`
	DeclaredValue         float64            `json:"declaredValue,omitempty"`
	DeclaredValueCurrency string             `json:"declaredValueCurrency,omitempty"`
	ExportDeclaration     *ExportDeclaration `json:"exportDeclaration,omitempty"`
}

type PackageItem struct {
	TypeCode           string              `json:"typeCode"`
	Weight             float64             `json:"weight"`
	Dimensions         Dimensions          `json:"dimensions"`
	CustomerReferences []CustomerReference `json:"customerReferences"`
}

type Dimensions struct {
	Length int `json:"length"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type CustomerReference struct {
	Value    string `json:"value"`
	TypeCode string `json:"typeCode"`
}

type ExportDeclaration struct {
	LineItems        []ExportLineItem `json:"lineItems"`
	Invoice          Invoice          `json:"invoice"`
	ExportReasonType string           `json:"exportReasonType"`
}

type ExportLineItem struct {
	Number              int             `json:"number"`
	Description         string          `json:"description"`
	Price               float64         `json:"price"`
	Quantity            Quantity        `json:"quantity"`
	CommodityCodes      []CommodityCode `json:"commodityCodes"`
	ExportReasonType    string          `json:"exportReasonType"`
	ManufacturerCountry string          `json:"manufacturerCountry"`
	Weight              LineItemWeight  `json:"weight"`
	IsTaxesPaid         bool            `json:"isTaxesPaid"`
}

type Quantity struct {
	Value             int    `json:"value"`
	UnitOfMeasurement string `json:"unitOfMeasurement"`
}

type CommodityCode struct {
	TypeCode string `json:"typeCode"`
	Value    string `json:"value"`
}

type LineItemWeight struct {
	NetValue   float64 `json:"netValue"`
	GrossValue float64 `json:"grossValue"`
}

type Invoice struct {
	Number           string  `json:"number"`
	Date             string  `json:"date"`
	TotalNetWeight   float64 `json:"totalNetWeight"`
	TotalGrossWeight float64 `json:"totalGrossWeight"`
	ExportReasonType string  `json:"exportReasonType"`
}

// Типы ответа Create Shipment.

type CreateShipmentResponse struct {
	ShipmentTrackingNumber     string          `json:"shipmentTrackingNumber"`
	Documents                  []LabelDocument `json:"documents,omitempty"`
	DispatchConfirmationNumber string          `json:"dispatchConfirmationNumber,omitempty"`
	Status                     *ResponseStatus `json:"status,omitempty"`
}

type LabelDocument struct {
	TypeCode       string `json:"typeCode"`
	Content        string `json:"content,omitempty"`
	EncodingFormat string `json:"encodingFormat,omitempty"`
}

type ResponseStatus struct {
	StatusCode    int    `json:"statusCode,omitempty"`
	StatusMessage string `json:"statusMessage,omitempty"`
}
