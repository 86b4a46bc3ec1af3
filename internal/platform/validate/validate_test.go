// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/catalogo-jogos/internal/platform/apperr"
	"github.com/taibuivan/catalogo-jogos/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "nome", "Chess", false},
		{"empty_string", "nome", "", true},
		{"whitespace_only", "nome", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Length checks rune-based bounds, including multibyte text.
*/
func TestValidator_Length(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"lower_bound", "abc", true},
		{"below_lower", "ab", false},
		{"multibyte_counts_runes", "Pé", false},
		{"multibyte_at_bound", "Pés", true},
		{"upper_bound", string(make([]rune, 100)), true},
		{"above_upper", string(make([]rune, 101)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Length("nome", tt.value, 3, 100)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_FloatRange checks inclusive bounds and NaN rejection.
*/
func TestValidator_FloatRange(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		isValid bool
	}{
		{"min_inclusive", 1, true},
		{"max_inclusive", 1000, true},
		{"below_min", 0.99, false},
		{"above_max", 1000.01, false},
		{"nan", math.NaN(), false},
		{"inf", math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.FloatRange("preco", tt.value, 1, 1000)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_UUID checks identifier shape validation.
*/
func TestValidator_UUID(t *testing.T) {
	assert.False(t, (&validate.Validator{}).UUID("id", "0190b6a4-7c1e-7d2a-9f00-1b2c3d4e5f60").HasErrors())
	assert.False(t, (&validate.Validator{}).UUID("id", "0190B6A4-7C1E-7D2A-9F00-1B2C3D4E5F60").HasErrors())
	assert.True(t, (&validate.Validator{}).UUID("id", "not-a-uuid").HasErrors())
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("nome", "Chess").
		Length("nome", "Chess", 3, 100).
		FloatRange("preco", 10, 1, 1000).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("nome", "").                 // Fails
		Length("produtora", "", 1, 100).      // Fails
		Custom("preco", true, "is required"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
