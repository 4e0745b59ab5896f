package domain

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// userFieldOrder fixes the order violations are reported in.
var userFieldOrder = map[string]int{
	"username":   0,
	"email":      1,
	"photo":      2,
	"department": 3,
	"role":       4,
}

// UserValidator evaluates the write-time rules of a User document and
// reports every failing field at once.
type UserValidator struct {
	v            *validator.Validate
	requirePhoto bool
}

// NewUserValidator builds the rule set. When requirePhoto is true an empty
// photo is reported as a required violation.
func NewUserValidator(requirePhoto bool) *UserValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "department", func(fl validator.FieldLevel) bool {
		return Department(fl.Field().String()).Valid()
	})
	mustRegister(v, "role", func(fl validator.FieldLevel) bool {
		return Role(fl.Field().String()).Valid()
	})
	return &UserValidator{v: v, requirePhoto: requirePhoto}
}

// mustRegister panics when tag cannot be registered.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// Validate returns nil when u satisfies every rule, otherwise a
// KindValidation *Error listing all violations.
func (uv *UserValidator) Validate(u *User) error {
	var violations []FieldViolation

	if err := uv.v.Struct(u); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return NewInternalError("validate user", err)
		}
		for _, fe := range ve {
			violations = append(violations, toViolation(fe))
		}
	}
	if uv.requirePhoto && u.Photo == "" {
		violations = append(violations, FieldViolation{Field: "photo", Kind: ViolationRequired})
	}

	if len(violations) == 0 {
		return nil
	}
	slices.SortStableFunc(violations, func(a, b FieldViolation) int {
		return userFieldOrder[a.Field] - userFieldOrder[b.Field]
	})
	return NewValidationError(violations)
}

func toViolation(fe validator.FieldError) FieldViolation {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return FieldViolation{Field: field, Kind: ViolationRequired}
	case "department":
		return FieldViolation{Field: field, Kind: ViolationEnum, Value: fmt.Sprint(fe.Value()), Allowed: enumStrings(Departments)}
	case "role":
		return FieldViolation{Field: field, Kind: ViolationEnum, Value: fmt.Sprint(fe.Value()), Allowed: enumStrings(Roles)}
	default:
		return FieldViolation{
			Field:   field,
			Kind:    ViolationOther,
			Value:   fmt.Sprint(fe.Value()),
			Message: fmt.Sprintf("'%s' failed validation (%s)", field, fe.Tag()),
		}
	}
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
