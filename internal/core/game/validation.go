// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package game

import (
	"strings"

	"github.com/taibuivan/catalogo-jogos/internal/platform/validate"
)

// ValidateWriteRequest checks every field of request and reports all violations
// at once. Each offending field appears exactly once in the error details.
func ValidateWriteRequest(request WriteRequest) error {
	validator := &validate.Validator{}

	textField(validator, FieldName, request.Name, NameMinLength, NameMaxLength)
	textField(validator, FieldPublisher, request.Publisher, PublisherMinLength, PublisherMaxLength)

	if request.Price == nil {
		validator.Custom(FieldPrice, true, "This field is required")
	} else {
		validator.FloatRange(FieldPrice, *request.Price, MinPrice, MaxPrice)
	}

	return validator.Err()
}

// ValidatePrice checks a standalone price, as sent by the price-only update.
func ValidatePrice(price float64) error {
	validator := &validate.Validator{}
	return validator.FloatRange(FieldPrice, price, MinPrice, MaxPrice).Err()
}

func textField(validator *validate.Validator, field, value string, min, max int) {
	if strings.TrimSpace(value) == "" {
		validator.Required(field, value)
		return
	}
	validator.Length(field, value, min, max)
}
