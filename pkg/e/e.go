package e

import (
	"errors"
	"fmt"
)

var (
	// Ошибки валидации формы (ValidationFailure)
	ErrMissingFields       = fmt.Errorf("Please fill in all fields.")
	ErrInvalidPrice        = fmt.Errorf("Price must be a number.")
	ErrPriceMustBePositive = fmt.Errorf("Price must be greater than zero.")

	// Ошибки состояния представления
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrFormClosed      = fmt.Errorf("form is not open")

	// Ошибки удалённого API (NetworkOrServerFailure)
	ErrRemote = fmt.Errorf("remote products api failure")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 4xx/5xx для собственного HTTP-интерфейса
	ErrStatusBadRequest    = fmt.Errorf("bad request")
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// RemoteError описывает неуспешный вызов удалённого API.
// StatusCode равен 0, если ответ не был получен (ошибка транспорта).
type RemoteError struct {
	Method     string
	Path       string
	StatusCode int
	Err        error
}

func (r *RemoteError) Error() string {
	switch {
	case r.StatusCode == 0:
		return fmt.Sprintf("%s %s: %v", r.Method, r.Path, r.Err)
	case r.Err != nil:
		return fmt.Sprintf("%s %s: status %d: %v", r.Method, r.Path, r.StatusCode, r.Err)
	default:
		return fmt.Sprintf("%s %s: status %d", r.Method, r.Path, r.StatusCode)
	}
}

func (r *RemoteError) Unwrap() []error {
	if r.Err == nil {
		return []error{ErrRemote}
	}
	return []error{ErrRemote, r.Err}
}

// IsValidation сообщает, является ли ошибка локальной ошибкой валидации формы.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrPriceMustBePositive)
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
