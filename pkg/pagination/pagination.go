// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via the "pagina" and
// "quantidade" query parameters. Unlike lookups, out-of-range parameters are
// rejected (400) instead of clamped, because the list contract declares them.
package pagination

import (
	"fmt"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/catalogo-jogos/internal/platform/apperr"
)

const (
	// PageParam is the query parameter holding the 1-indexed page number.
	PageParam = "pagina"
	// SizeParam is the query parameter holding the number of records per page.
	SizeParam = "quantidade"

	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// DefaultSize is the number of records per page if not specified.
	DefaultSize = 5
	// MaxSize is the upper bound for records per page.
	MaxSize = 50
)

// Params holds the parsed page and size from a request's query string.
type Params struct {
	Page int `query:"pagina" validate:"gte=1"`
	Size int `query:"quantidade" validate:"gte=1,lte=50"`
}

// maxOffset keeps offset+size within int for any size up to MaxSize.
const maxOffset = math.MaxInt - MaxSize

// Offset returns the zero-based index of the first record of the page.
// It saturates instead of overflowing for very large pages.
func (p Params) Offset() int {
	if p.Page <= 1 || p.Size <= 0 {
		return 0
	}
	if p.Page-1 > maxOffset/p.Size {
		return maxOffset
	}
	return (p.Page - 1) * p.Size
}

// Normalize clamps Page to at least 1 and Size into [1, MaxSize].
//
// Services call it so they tolerate direct callers that skipped [FromRequest].
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Size < 1 {
		p.Size = 1
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

var queryValidator = newQueryValidator()

// newQueryValidator reports violations under their query parameter names.
func newQueryValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("query"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// FromRequest parses "pagina" and "quantidade" from an HTTP request.
//
// Missing parameters take [DefaultPage] and [DefaultSize]. Non-numeric or
// out-of-range values produce a VALIDATION_ERROR listing every offending parameter.
func FromRequest(r *http.Request) (Params, error) {
	var details []apperr.FieldError

	page, ok := parseIntParam(r, PageParam, DefaultPage)
	if !ok {
		details = append(details, apperr.FieldError{Field: PageParam, Message: "Must be an integer"})
	}

	size, ok := parseIntParam(r, SizeParam, DefaultSize)
	if !ok {
		details = append(details, apperr.FieldError{Field: SizeParam, Message: "Must be an integer"})
	}

	params := Params{Page: page, Size: size}

	if err := queryValidator.Struct(params); err != nil {
		validationErrors, isValidation := err.(validator.ValidationErrors)
		if !isValidation {
			return Params{}, apperr.Internal(err)
		}
		for _, fieldError := range validationErrors {
			if hasField(details, fieldError.Field()) {
				continue
			}
			details = append(details, apperr.FieldError{Field: fieldError.Field(), Message: describe(fieldError)})
		}
	}

	if len(details) > 0 {
		return Params{}, apperr.ValidationError("Invalid pagination parameters", details...)
	}

	return params, nil
}

// parseIntParam parses a single integer query parameter with a fallback default.
// The boolean is false when the parameter is present but not an integer.
func parseIntParam(r *http.Request, key string, defaultVal int) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal, false
	}

	return n, true
}

func describe(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "gte":
		return fmt.Sprintf("Must be at least %s", fieldError.Param())
	case "lte":
		return fmt.Sprintf("Must be at most %s", fieldError.Param())
	default:
		return fmt.Sprintf("Failed the %q rule", fieldError.Tag())
	}
}

func hasField(details []apperr.FieldError, field string) bool {
	for _, detail := range details {
		if detail.Field == field {
			return true
		}
	}
	return false
}
