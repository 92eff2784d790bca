package errors

import (
	"errors"
	"fmt"
)

// ErrorCode define el código de error
type ErrorCode string

const (
	// Errores de autenticación
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidRole  ErrorCode = "INVALID_ROLE"

	// Errores de validación de entrada
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Errores de datos
	ErrCodeNotFound    ErrorCode = "NOT_FOUND"
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Errores de negocio
	ErrCodeRowError         ErrorCode = "ROW_ERROR"
	ErrCodeConflict         ErrorCode = "CONFLICT"
	ErrCodeAlreadySettled   ErrorCode = "ALREADY_SETTLED"
	ErrCodeInvalidOperation ErrorCode = "INVALID_OPERATION"
)

// AppError es el error de aplicación con código y mensaje para el usuario
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError crea un AppError nuevo
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError comprueba si un error es AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extrae el AppError de un error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsConflict indica si el error es un conflicto de liquidación
// concurrente; el llamador puede reintentar la generación.
func IsConflict(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == ErrCodeConflict
}

var (
	ErrOwnerNotFound  = errors.New("propietario no encontrado")
	ErrUnitNotFound   = errors.New("alojamiento no encontrado")
	ErrGroupNotFound  = errors.New("grupo no encontrado")
	ErrNoProperties   = errors.New("no hay alojamientos configurados")
	ErrAlreadySettled = errors.New("registro ya liquidado")
	ErrInvalidInput   = errors.New("entrada no válida")
)
