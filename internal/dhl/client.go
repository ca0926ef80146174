package dhl

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/shipment-label-service/internal/domain"
)

const shipmentsPath = "/shipments"

// Client выполняет вызовы MyDHL API с Basic-аутентификацией.
// Повторов и дедупликации на уровне клиента нет: каждый вызов получает
// новый Message-Reference.
type Client struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
}

// тело ошибки перевозчика; поля перечислены в порядке приоритета извлечения
type carrierErrorBody struct {
	Detail             string `json:"detail"`
	Message            string `json:"message"`
	Title              string `json:"title"`
	Status             int    `json:"status"`
	ValidationMessages []struct {
		Property string `json:"property"`
		Message  string `json:"message"`
	} `json:"validationMessages"`
}

// CreateShipment отправляет тело запроса на endpoint создания накладной.
// Транспортный сбой — TransportError, не-2xx — CarrierRejectionError;
// успешный ответ возвращается декодированным даже без номера накладной,
// семантическая полнота ответа — забота вызывающей стороны.
func (c *Client) CreateShipment(ctx context.Context, body *CreateShipmentRequest) (*CreateShipmentResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}

	url := strings.TrimSuffix(c.BaseURL, "/") + shipmentsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}

	now := time.Now()
	auth := base64.StdEncoding.EncodeToString([]byte(c.ClientID + ":" + c.ClientSecret))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Message-Reference", fmt.Sprintf("mydhlapi-%d", now.UnixMilli()))
	req.Header.Set("Message-Reference-Date", now.UTC().Format("2006-01-02T15:04:05.000Z07:00"))

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.CarrierRejectionError{
			StatusCode: resp.StatusCode,
			Detail:     extractErrorDetail(raw),
		}
	}

	var out CreateShipmentResponse
	// битый JSON в успешном ответе трактуем как пустой ответ
	_ = json.Unmarshal(raw, &out)
	return &out, nil
}

// extractErrorDetail выбирает первое заполненное поле из списка приоритетов
// {detail, message, title, числовой статус}, иначе общее сообщение об ошибке.
func extractErrorDetail(raw []byte) string {
	var body carrierErrorBody
	_ = json.Unmarshal(raw, &body)
	switch {
	case body.Detail != "":
		return body.Detail
	case body.Message != "":
		return body.Message
	case body.Title != "":
		return body.Title
	case body.Status != 0:
		return strconv.Itoa(body.Status)
	default:
		return "carrier request processing failed"
	}
}
