// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package game

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/catalogo-jogos/internal/platform/request"
	"github.com/taibuivan/catalogo-jogos/internal/platform/respond"
	"github.com/taibuivan/catalogo-jogos/pkg/pagination"
	"github.com/taibuivan/catalogo-jogos/pkg/slice"
)

// # Handler Definition

// Handler exposes the catalog over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// # Route Registration

// Routes returns the catalog router, mounted by the server at /api/v1/jogos.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listGames)
	router.Post("/", handler.createGame)

	router.Get("/{id}", handler.getGame)
	router.Put("/{id}", handler.updateGame)
	router.Patch("/{id}/preco/{preco}", handler.updatePrice)
	router.Delete("/{id}", handler.deleteGame)

	return router
}

// # Lookups

// listGames handles GET /?pagina=&quantidade=. An empty page is 204.
func (handler *Handler) listGames(writer http.ResponseWriter, request *http.Request) {
	params, err := pagination.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	games, err := handler.service.List(request.Context(), params.Page, params.Size)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if len(games) == 0 {
		respond.NoContent(writer)
		return
	}
	respond.OK(writer, slice.Map(games, NewView))
}

// getGame handles GET /{id}. An unknown id is 204, not 404.
func (handler *Handler) getGame(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, found, err := handler.service.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if !found {
		respond.NoContent(writer)
		return
	}
	respond.OK(writer, NewView(game))
}

// # Mutations

func (handler *Handler) createGame(writer http.ResponseWriter, request *http.Request) {
	var body WriteRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, err := handler.service.Create(request.Context(), body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, NewView(game))
}

func (handler *Handler) updateGame(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body WriteRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, err := handler.service.UpdateFull(request.Context(), id, body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, NewView(game))
}

// updatePrice handles PATCH /{id}/preco/{preco}.
func (handler *Handler) updatePrice(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	price, err := requestutil.Float(request, FieldPrice)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, err := handler.service.UpdatePrice(request.Context(), id, price)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, NewView(game))
}

func (handler *Handler) deleteGame(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Status(writer, http.StatusOK)
}
