package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/shared"
	"github.com/sereci/sirepre/internal/infrastructure/logger"
	"github.com/sereci/sirepre/internal/infrastructure/printing"
	"github.com/sereci/sirepre/internal/interfaces/http/dto"
	"github.com/sereci/sirepre/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler writes the staff API envelope. Public form endpoints answer
// with flat bodies and do not use it.
type BaseHandler struct{}

func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

func (h *BaseHandler) fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponse(code, message, c.GetString(middleware.RequestIDKey)))
}

func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.fail(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.fail(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.fail(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// parseUUIDParam answers 400 itself when the parameter is not a UUID.
func (h *BaseHandler) parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Identificador inválido")
		return uuid.Nil, false
	}
	return id, true
}

// HandleError answers with the status registered for a domain error code.
// A missing receipt is a 404; anything else is logged and hidden behind a
// generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if de, ok := shared.AsDomainError(err); ok {
		h.fail(c, dto.GetHTTPStatus(de.Code), de.Code, de.Message)
		return
	}
	if printing.IsRenderErrorCode(err, printing.ErrCodeNotFound) {
		h.fail(c, http.StatusNotFound, string(printing.ErrCodeNotFound), "Comprobante no encontrado")
		return
	}

	logger.FromContext(c.Request.Context()).Error("request failed",
		zap.String("route", c.FullPath()),
		zap.Error(err))
	h.fail(c, http.StatusInternalServerError, dto.ErrCodeInternal, "Error interno del servidor")
}
