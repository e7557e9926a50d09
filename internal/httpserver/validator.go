package httpserver

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/maksline/marketfront/internal/service"
)

type requestValidator struct {
	validate *validator.Validate
}

func NewValidator() echo.Validator {
	v := validator.New()
	_ = v.RegisterValidation("upi", func(fl validator.FieldLevel) bool {
		return service.ValidUpiID(fl.Field().String())
	})
	return &requestValidator{validate: v}
}

func (rv *requestValidator) Validate(i interface{}) error {
	if err := rv.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	return c.Validate(req)
}
