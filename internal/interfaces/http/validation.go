package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
)

const localBody = "body"

var validate = newValidator()

// newValidator reporta los campos con el nombre del tag json (o query) en lugar del de Go.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})
	return v
}

// ValidateBody decodifica el JSON en T, aplica los tags validate y deja el DTO en c.Locals.
// El handler lo recupera con Body[T].
func ValidateBody[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in T
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
		if err := validate.Struct(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
		}
		c.Locals(localBody, &in)
		return c.Next()
	}
}

// Body devuelve el DTO validado por ValidateBody[T]; nil si la ruta no lo declaró.
func Body[T any](c *fiber.Ctx) *T {
	v, _ := c.Locals(localBody).(*T)
	return v
}

// parsePage lee ?skip=&limit= con los valores por defecto y los valida antes de llegar al servicio.
func parsePage(c *fiber.Ctx) (dto.PageRequest, error) {
	page := dto.NewPageRequest()
	if err := c.QueryParser(&page); err != nil {
		return page, domain.NewValidationError("skip y limit deben ser enteros")
	}
	if err := validate.Struct(&page); err != nil {
		return page, domain.NewValidationError("%s", validationMessage(err))
	}
	return page, nil
}

// uuidParam devuelve el path param si es un UUID válido.
func uuidParam(c *fiber.Ctx, name string) (string, error) {
	raw := c.Params(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", domain.NewValidationError("%s debe ser un UUID válido", name)
	}
	return id.String(), nil
}

// validationMessage traduce el primer error del validador a un mensaje legible.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "datos inválidos"
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s debe tener al menos %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s debe ser >= %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s admite como máximo %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s debe ser <= %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s debe ser > %s", field, fe.Param())
	case "uuid":
		return fmt.Sprintf("%s debe ser un UUID válido", field)
	case "email":
		return fmt.Sprintf("%s debe ser un email válido", field)
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s no cumple la regla %s", field, fe.Tag())
	}
}
