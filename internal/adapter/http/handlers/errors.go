package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"ges_billing/pkg"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

	registerTagNamesOnce sync.Once
)

// RegisterValidatorTagNames makes validation errors report JSON field names.
func RegisterValidatorTagNames() {
	registerTagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
}

func respondError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func internalError(err error) *pkg.AppError {
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}

// bindingError turns a ShouldBindJSON failure into a 400 with field details.
func bindingError(err error) *pkg.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]pkg.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, pkg.FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
		}
		return errInvalidRequest.WithDetails(details...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return errInvalidRequest.WithDetails(pkg.FieldError{Field: typeErr.Field, Message: "has an invalid type"})
	}
	return errInvalidRequest
}

// fieldPath drops the top-level struct name: "BillingCycleRequest.readings[0].consumer_id" => "readings[0].consumer_id".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "datetime":
		return fmt.Sprintf("must match the layout %s", fe.Param())
	}
	return "is invalid"
}
