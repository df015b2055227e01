package presenters

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data interface{}, code int, message string) error {
	return c.Status(code).JSON(Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	response := Response{
		Status:  "error",
		Message: message,
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		response.Fields = fieldErrors(validationErrors)
	} else if err != nil {
		response.Error = err.Error()
	}

	return c.Status(code).JSON(response)
}

func fieldErrors(errs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(errs))
	for _, err := range errs {
		fields[err.Field()] = "failed on the '" + err.Tag() + "' rule"
	}
	return fields
}
