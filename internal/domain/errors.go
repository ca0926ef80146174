package domain

import "fmt"

// Общие доменные ошибки
var (
	ErrNotFound   = notFoundError("not found")
	ErrValidation = validationError("invalid data")
)

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

type validationError string

func (e validationError) Error() string { return string(e) }

// ConfigurationError — обязательная конфигурация перевозчика отсутствует;
// возникает до любого сетевого вызова.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return "carrier configuration missing: " + e.Field
}

// PreconditionError — предусловие выпуска накладной не выполнено
// (статус не draft или нет данных упаковки); сетевой вызов не производился.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string { return e.Reason }

// TransportError — сетевой сбой при обращении к перевозчику.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("carrier request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CarrierRejectionError — перевозчик явно отклонил запрос (не-2xx ответ).
type CarrierRejectionError struct {
	StatusCode int
	Detail     string
}

func (e *CarrierRejectionError) Error() string { return e.Detail }

// ResponseShapeError — перевозчик принял запрос, но в ответе нет ожидаемого поля.
type ResponseShapeError struct {
	Missing string
}

func (e *ResponseShapeError) Error() string {
	return e.Missing + " not found in carrier response"
}

// PartialSuccessError — накладная выпущена перевозчиком, но локальное
// сохранение не удалось; запись осталась в draft при уже выданной накладной.
// Единственный случай, требующий ручного решения вызывающей стороны.
type PartialSuccessError struct {
	TrackingNumber string
	Cause          error
}

func (e *PartialSuccessError) Error() string {
	return fmt.Sprintf("label %s issued but local update failed: %v", e.TrackingNumber, e.Cause)
}

func (e *PartialSuccessError) Unwrap() error { return e.Cause }
