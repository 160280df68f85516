package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotEnoughStock = errors.New("not enough stock")
	ErrInvalidState   = errors.New("invalid state")
	// ErrUnauthorized неверные учётные данные или отсутствующий пользователь
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden пользователь известен, но прав (роль, VIP) не хватает
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
)

// StockError names the line that could not be fulfilled.
type StockError struct {
	ProductID   string
	ProductName string
	Size        string
	Requested   int64
	Available   int64
}

func (e *StockError) Error() string {
	return fmt.Sprintf("product %q (size %s) is not available in the requested quantity: requested %d, available %d",
		e.ProductName, e.Size, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error { return ErrNotEnoughStock }

var validate = validator.New()

// validateStruct runs struct tags and folds failures into ErrInvalidInput.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(fields, ", "))
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
