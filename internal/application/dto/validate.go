package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-bodega/internal/domain"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	// Las cantidades decimales se validan como float64 (gt, gte, min).
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("movement_type", func(fl validator.FieldLevel) bool {
		return entity.IsValidMovementType(fl.Field().String())
	})
	_ = v.RegisterValidation("warehouse_category", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", entity.WarehouseCategoryPrincipal, entity.WarehouseCategoryTecnico, entity.WarehouseCategoryOtra:
			return true
		}
		return false
	})
	return v
}

// Validate valida un DTO de entrada. Devuelve un error que envuelve domain.ErrInvalidInput
// con un mensaje legible por campo.
func Validate(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " es requerido"
	case "min":
		return fmt.Sprintf("%s debe ser al menos %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s no puede superar %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual que %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", field, fe.Param())
	case "movement_type":
		return field + " debe ser IN, OUT, TRANSFER o ADJUSTMENT"
	case "warehouse_category":
		return field + " debe ser PRINCIPAL, TECNICO u OTRA"
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
	}
	return fmt.Sprintf("%s no es válido (%s)", field, fe.Tag())
}
