package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/six-cities-api/internal/domain/entity"
)

// FieldError groups every failed rule of a single request field.
type FieldError struct {
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
}

var once sync.Once

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers domain tags (objectid, city, amenity, housing, usertype).
func Init() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return primitive.IsValidObjectID(fl.Field().String())
		})
		_ = v.RegisterValidation("city", oneOfList(entity.Cities))
		_ = v.RegisterValidation("amenity", oneOfList(entity.Amenities))
		_ = v.RegisterValidation("usertype", func(fl validator.FieldLevel) bool {
			_, ok := entity.ParseUserType(fl.Field().String())
			return ok
		})
		v.RegisterAlias("housing", "oneof=apartment house room hotel")
	})
}

// oneOfList is oneof for values that may contain spaces.
func oneOfList(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, a := range allowed {
			if s == a {
				return true
			}
		}
		return false
	}
}

// ToDetails converts binding errors into the per-field list sent as error.details.
func ToDetails(err error) []FieldError {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	switch {
	case errors.As(err, &ute):
		return []FieldError{{Field: ute.Field, Messages: []string{"must be of type " + ute.Type.String()}}}
	case errors.As(err, &se), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return []FieldError{{Field: "body", Messages: []string{"invalid json"}}}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		index := make(map[string]int, len(verrs))
		for _, fe := range verrs {
			field := fieldPath(fe)
			if i, ok := index[field]; ok {
				out[i].Messages = append(out[i].Messages, formatFieldError(fe))
				continue
			}
			index[field] = len(out)
			out = append(out, FieldError{Field: field, Messages: []string{formatFieldError(fe)}})
		}
		return out
	}

	return []FieldError{{Field: "body", Messages: []string{"invalid payload"}}}
}

// IsBindingError reports whether err came from decoding or validating a request body.
func IsBindingError(err error) bool {
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs) || errors.As(err, &se) || errors.As(err, &ute)
}

// fieldPath drops the root struct name: CreateOfferRequest.coordinates.latitude -> coordinates.latitude
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "len":
		if kind == reflect.Slice || kind == reflect.Array {
			return fmt.Sprintf("must contain exactly %s items", param)
		}
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "min":
		switch {
		case isNumberKind(kind):
			return "must be at least " + param
		case kind == reflect.Slice:
			return "must contain at least " + param + " items"
		}
		return "must be at least " + param + " characters long"
	case "max":
		switch {
		case isNumberKind(kind):
			return "must be at most " + param
		case kind == reflect.Slice:
			return "must contain at most " + param + " items"
		}
		return "must be at most " + param + " characters long"
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "unique":
		return "must contain unique items"
	case "latitude":
		return "must be a valid latitude"
	case "longitude":
		return "must be a valid longitude"
	case "objectid":
		return "must be a valid ObjectId"
	case "city":
		return "must be one of: " + strings.Join(entity.Cities, ", ")
	case "amenity":
		return "must be one of: " + strings.Join(entity.Amenities, ", ")
	case "housing":
		return "must be one of: apartment, house, room, hotel"
	case "usertype":
		return "must be one of: pro, normal"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
