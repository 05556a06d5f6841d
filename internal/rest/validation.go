// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package rest

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/canonical/entitlement-service/internal/types"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct tag validation and converts failures into the domain
// validation error, keyed by the json field name.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return err
	}

	fields := types.FieldErrors{}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fe := range validationErrs {
			fields[fieldName(fe)] = "failed validation: " + fe.Tag()
		}
	}

	return types.NewValidationError(fields)
}

func fieldName(fe validator.FieldError) string {
	// StructNamespace is Type.Field or Type.Nested.Field; drop the type.
	parts := strings.SplitN(fe.StructNamespace(), ".", 2)
	if len(parts) == 2 {
		return toSnake(parts[1])
	}
	return toSnake(fe.Field())
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
