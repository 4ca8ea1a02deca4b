package service

import (
	"errors"
	"fmt"

	"go-parts-inventory/pkg/database"
	"go-parts-inventory/pkg/validator"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError reports malformed or missing input for a single field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InsufficientStockError is returned by a check-out that would drive the
// derived quantity below zero. It matches ErrInsufficientStock.
type InsufficientStockError struct {
	Available int `json:"available"`
	Requested int `json:"requested"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d available", e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

func duplicate(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrDuplicate)
}

// lookupErr turns gorm's record-not-found into ErrNotFound for entity.
func lookupErr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity)
	}
	return err
}

// writeErr turns a unique-constraint violation into ErrDuplicate for entity.
func writeErr(err error, entity string) error {
	if database.IsUniqueViolation(err) {
		return duplicate(entity)
	}
	return err
}

// validate runs struct validation and reports the first failing field.
func validate(req interface{}) error {
	errs := validator.ValidateStruct(req)
	if len(errs) == 0 {
		return nil
	}
	firstErr := errs[0]
	msg := fmt.Sprintf("failed on tag '%s'", firstErr.Tag)
	if firstErr.Value != "" {
		msg = fmt.Sprintf("failed on tag '%s=%s'", firstErr.Tag, firstErr.Value)
	}
	return &ValidationError{Field: firstErr.Field, Message: msg}
}
