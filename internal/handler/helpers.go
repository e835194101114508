package handler

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/Hemantbam/Catalog-management/internal/apierror"
	"github.com/Hemantbam/Catalog-management/internal/dto"
	"github.com/Hemantbam/Catalog-management/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

var (
	catalogNameRe = regexp.MustCompile(`^[a-zA-Z0-9\s]+$`)
	attrValueRe   = regexp.MustCompile(`^[a-zA-Z0-9,\s]+$`)
)

func init() {
	// decimal.Decimal is validated as a float so numeric tags (gte, lte) apply.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Report fields by their JSON name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("catalogname", func(fl validator.FieldLevel) bool {
		return catalogNameRe.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("attrvalue", func(fl validator.FieldLevel) bool {
		return attrValueRe.MatchString(fl.Field().String())
	})
}

type normalizer interface{ Normalize() }

// bindAndValidate binds the JSON body, normalizes it and runs the validator
// tags. On failure it writes a 400 envelope and returns false; the caller
// must return without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fail(c, apierror.BadRequest("Invalid request body: %s", err.Error()))
		return false
	}
	if n, ok := req.(normalizer); ok {
		n.Normalize()
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		c.JSON(http.StatusBadRequest, dto.Envelope{
			Success: false,
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Details: fields,
		})
		return false
	}
	return true
}

// pathUUID parses a UUID path parameter, writing a 400 envelope when the
// value is malformed.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		fail(c, apierror.BadRequest("Validation failed (uuid is expected) for %s", name))
		return uuid.Nil, false
	}
	return id, true
}

func respondOK(c *gin.Context, message string, details any) {
	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Status:  http.StatusOK,
		Message: message,
		Details: details,
	})
}

// fail writes the envelope for a service error. Unexpected errors are logged
// and their message is returned as a one-element detail list.
func fail(c *gin.Context, err error) {
	e := apierror.Unexpected(err)
	env := dto.Envelope{Success: false, Status: e.Status(), Message: e.Message}

	if e.Kind == apierror.KindUnexpected {
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Err(err).
			Msg("unexpected error")
		env.Message = "Internal server error"
		env.Details = []string{e.Message}
	}
	c.JSON(env.Status, env)
}
