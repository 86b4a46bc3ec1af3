// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package game

import (
	"net/http"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/catalogo-jogos/internal/platform/apperr"
)

// Game is a catalog entry. (Name, Publisher) is unique across the catalog.
type Game struct {
	ID        string
	Name      string
	Publisher string
	Price     float64
}

// WriteRequest carries the client-submitted fields for create and full update.
//
// Price is a pointer so an absent "preco" can be told apart from zero.
type WriteRequest struct {
	Name      string   `json:"nome"`
	Publisher string   `json:"produtora"`
	Price     *float64 `json:"preco"`
}

// Normalized returns the request with text fields in Unicode NFC, so composed
// and decomposed spellings count the same characters and share one uniqueness key.
func (request WriteRequest) Normalized() WriteRequest {
	request.Name = norm.NFC.String(request.Name)
	request.Publisher = norm.NFC.String(request.Publisher)
	return request
}

// View is the JSON shape returned to clients.
type View struct {
	ID        string  `json:"id"`
	Name      string  `json:"nome"`
	Publisher string  `json:"produtora"`
	Price     float64 `json:"preco"`
}

// NewView maps a [Game] to its response shape.
func NewView(game *Game) View {
	return View{
		ID:        game.ID,
		Name:      game.Name,
		Publisher: game.Publisher,
		Price:     game.Price,
	}
}

// JSON field names, used in validation details.
const (
	FieldID        = "id"
	FieldName      = "nome"
	FieldPublisher = "produtora"
	FieldPrice     = "preco"
)

// Field constraints.
const (
	NameMinLength      = 3
	NameMaxLength      = 100
	PublisherMinLength = 1
	PublisherMaxLength = 100
	MinPrice           = 1.0
	MaxPrice           = 1000.0
)

// Domain errors.
var (
	// ErrAlreadyRegistered reports a (name, publisher) pair that already exists.
	ErrAlreadyRegistered = apperr.New("GAME_ALREADY_REGISTERED", "already registered for this publisher", http.StatusUnprocessableEntity)

	// ErrNotRegistered reports a mutation on an id that is not in the catalog.
	ErrNotRegistered = apperr.New("GAME_NOT_REGISTERED", "game not found", http.StatusNotFound)
)
