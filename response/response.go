package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vacarent/errors"
)

// Response define la estructura de respuesta
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination define la estructura de paginación
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Success devuelve una respuesta correcta
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Operación realizada con éxito",
		Data: data,
	})
}

// SuccessWithPagination devuelve una respuesta correcta paginada
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Operación realizada con éxito",
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// Error devuelve una respuesta de error
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: code,
		Mess: message,
	})
}

// ServerError devuelve una respuesta de error de servidor
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: 0,
		Mess: "Error del servidor",
	})
}

// Unauthorized devuelve una respuesta sin autenticar
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code: 0,
		Mess: "No autenticado",
	})
}

// Forbidden devuelve una respuesta sin permisos
func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Response{
		Code: 0,
		Mess: "Sin permisos de acceso",
	})
}

// NotFound devuelve una respuesta de no encontrado
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "No encontrado"
	}
	c.JSON(http.StatusNotFound, Response{
		Code: 0,
		Mess: message,
	})
}

// BadRequest devuelve una respuesta de petición incorrecta
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: 0,
		Mess: message,
	})
}

// Conflict devuelve una respuesta de conflicto (409); el cliente
// puede reintentar la operación.
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Conflicto de datos, vuelva a intentarlo"
	}
	c.JSON(http.StatusConflict, Response{
		Code: 0,
		Mess: message,
	})
}

// FromError traduce un AppError a la respuesta HTTP que corresponde
func FromError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		ServerError(c)
		return
	}

	switch appErr.Code {
	case errors.ErrCodeNotFound:
		NotFound(c, appErr.Message)
	case errors.ErrCodeConflict, errors.ErrCodeAlreadySettled:
		Conflict(c, appErr.Message)
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken, errors.ErrCodeMissingToken:
		Unauthorized(c)
	case errors.ErrCodeDBError:
		ServerError(c)
	default:
		BadRequest(c, appErr.Message)
	}
}
