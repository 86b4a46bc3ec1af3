// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/catalogo-jogos/internal/platform/apperr"
	"github.com/taibuivan/catalogo-jogos/internal/platform/constants"
	"github.com/taibuivan/catalogo-jogos/internal/platform/validate"
)

// ErrBodyTooLarge is returned when a body exceeds [constants.MaxRequestBodyBytes].
var ErrBodyTooLarge = apperr.New("PAYLOAD_TOO_LARGE", "Request body too large", http.StatusRequestEntityTooLarge)

/*
DecodeJSON reads at most [constants.MaxRequestBodyBytes] of the request body
and decodes it into the target structure.

Parameters:
  - writer: http.ResponseWriter (closes the connection on oversized bodies)
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: ErrBodyTooLarge past the cap, validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	if request.Body == nil {
		return validate.ErrInvalidJSON
	}

	body := http.MaxBytesReader(writer, request.Body, constants.MaxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrBodyTooLarge
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
UUID retrieves a named URL parameter and checks that it is UUID-shaped.

Returns:
  - string: the lower-cased identifier
  - error: VALIDATION_ERROR naming the parameter
*/
func UUID(request *http.Request, name string) (string, error) {
	raw := chi.URLParam(request, name)

	validator := &validate.Validator{}
	if err := validator.UUID(name, raw).Err(); err != nil {
		return "", err
	}

	return strings.ToLower(raw), nil
}

/*
Float retrieves a named URL parameter as a float64.

Returns:
  - error: VALIDATION_ERROR naming the parameter if it is not a number
*/
func Float(request *http.Request, name string) (float64, error) {
	raw := chi.URLParam(request, name)

	value, parseErr := strconv.ParseFloat(raw, 64)

	validator := &validate.Validator{}
	if err := validator.Custom(name, parseErr != nil, "Must be a number").Err(); err != nil {
		return 0, err
	}

	return value, nil
}
