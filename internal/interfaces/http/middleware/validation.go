package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sereci/sirepre/internal/interfaces/http/dto"
)

// SetupValidator makes binding errors name the json (or form) key the
// client sent instead of the Go field.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(wireName)
}

func wireName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return ""
}

// HandleValidationError answers 400 VALIDATION_ERROR with one detail per
// failed field.
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, c.GetString(RequestIDKey)))
}

func FormatValidationErrors(err error, requestID string) dto.Response {
	var fieldErrs validator.ValidationErrors
	var details []dto.ValidationDetail
	if errors.As(err, &fieldErrs) {
		details = make([]dto.ValidationDetail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: getValidationMessage(fe)})
		}
	}
	return dto.NewValidationErrorResponse("Datos de la solicitud inválidos", requestID, details)
}

var fixedMessages = map[string]string{
	"required": "Este campo es obligatorio",
	"email":    "Formato de correo inválido",
	"uuid":     "Formato UUID inválido",
	"numeric":  "Debe contener solo dígitos",
}

func getValidationMessage(fe validator.FieldError) string {
	if msg, ok := fixedMessages[fe.Tag()]; ok {
		return msg
	}
	text := fe.Type().Kind() == reflect.String
	switch fe.Tag() {
	case "min":
		if text {
			return "Debe tener al menos " + fe.Param() + " caracteres"
		}
		return "Debe ser al menos " + fe.Param()
	case "max":
		if text {
			return "Debe tener como máximo " + fe.Param() + " caracteres"
		}
		return "Debe ser como máximo " + fe.Param()
	case "oneof":
		return "Debe ser uno de: " + fe.Param()
	}
	return "Valor inválido"
}
