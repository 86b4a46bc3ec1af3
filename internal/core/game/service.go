// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package game

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/catalogo-jogos/internal/platform/apperr"
	"github.com/taibuivan/catalogo-jogos/internal/platform/dberr"
	"github.com/taibuivan/catalogo-jogos/internal/platform/metrics"
	"github.com/taibuivan/catalogo-jogos/pkg/pagination"
	"github.com/taibuivan/catalogo-jogos/pkg/uuid"
)

// Mutation names reported to the [MutationRecorder].
const (
	OperationCreate      = "create"
	OperationUpdate      = "update"
	OperationUpdatePrice = "update_price"
	OperationDelete      = "delete"
)

// MutationRecorder observes the result of every write. A nil recorder is allowed.
type MutationRecorder interface {
	RecordMutation(operation, outcome string)
}

// # Service Layer

// Service enforces the catalog rules on top of a [Repository]: field
// validation, (name, publisher) uniqueness and existence checks on mutation.
type Service struct {
	repo     Repository
	logger   *slog.Logger
	recorder MutationRecorder
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger, recorder MutationRecorder) *Service {
	return &Service{
		repo:     repo,
		logger:   logger,
		recorder: recorder,
	}
}

// # Lookups

/*
List returns one page of the catalog ordered by id.

Description: page and size are clamped into their valid ranges so direct
callers cannot request an unbounded page. A page past the end yields an
empty, non-nil slice.

Parameters:
  - context: context.Context
  - page: int (1-indexed)
  - size: int (records per page)

Returns:
  - []*Game: the games of the page
  - error: storage failures
*/
func (service *Service) List(context context.Context, page, size int) ([]*Game, error) {
	params := pagination.Params{Page: page, Size: size}.Normalize()

	games, err := service.repo.List(context, params.Size, params.Offset())
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []*Game{}
	}
	return games, nil
}

// GetByID looks a game up. Absence is not an error: found is false for
// unknown and malformed ids alike. Ids are matched case-insensitively.
func (service *Service) GetByID(context context.Context, id string) (game *Game, found bool, err error) {
	id = strings.ToLower(id)
	if !uuid.Valid(id) {
		return nil, false, nil
	}

	game, err = service.repo.FindByID(context, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return game, true, nil
}

// # Mutations

/*
Create validates request, assigns a fresh id and stores the game.

Returns:
  - *Game: the stored game
  - error: VALIDATION_ERROR, [ErrAlreadyRegistered] or storage failures
*/
func (service *Service) Create(context context.Context, request WriteRequest) (game *Game, err error) {
	defer func() { service.observe(OperationCreate, err) }()

	request = request.Normalized()
	if err := ValidateWriteRequest(request); err != nil {
		return nil, err
	}

	if err := service.ensureAvailable(context, request.Name, request.Publisher, ""); err != nil {
		return nil, err
	}

	game = &Game{
		ID:        uuid.New(),
		Name:      request.Name,
		Publisher: request.Publisher,
		Price:     *request.Price,
	}

	// The store enforces uniqueness again to close the check-then-insert race.
	if err := service.repo.Create(context, game); err != nil {
		return nil, mapStoreError(err)
	}

	service.logger.InfoContext(context, "game_created",
		slog.String("game_id", game.ID),
		slog.String("name", game.Name),
		slog.String("publisher", game.Publisher),
	)
	return game, nil
}

/*
UpdateFull replaces name, publisher and price of an existing game.

Description: the new (name, publisher) pair may equal the game's own pair,
but not the pair of any other game.

Returns:
  - *Game: the updated game
  - error: VALIDATION_ERROR, [ErrNotRegistered], [ErrAlreadyRegistered] or storage failures
*/
func (service *Service) UpdateFull(context context.Context, id string, request WriteRequest) (game *Game, err error) {
	defer func() { service.observe(OperationUpdate, err) }()

	request = request.Normalized()
	if err := ValidateWriteRequest(request); err != nil {
		return nil, err
	}

	game, err = service.existing(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.ensureAvailable(context, request.Name, request.Publisher, game.ID); err != nil {
		return nil, err
	}

	game.Name = request.Name
	game.Publisher = request.Publisher
	game.Price = *request.Price

	if err := service.repo.Update(context, game); err != nil {
		return nil, mapStoreError(err)
	}

	service.logger.InfoContext(context, "game_updated", slog.String("game_id", game.ID))
	return game, nil
}

// UpdatePrice changes only the price of an existing game.
func (service *Service) UpdatePrice(context context.Context, id string, price float64) (game *Game, err error) {
	defer func() { service.observe(OperationUpdatePrice, err) }()

	if err := ValidatePrice(price); err != nil {
		return nil, err
	}

	game, err = service.existing(context, id)
	if err != nil {
		return nil, err
	}

	previous := game.Price
	game.Price = price

	if err := service.repo.Update(context, game); err != nil {
		return nil, mapStoreError(err)
	}

	service.logger.InfoContext(context, "game_price_updated",
		slog.String("game_id", game.ID),
		slog.Float64("previous_price", previous),
		slog.Float64("price", price),
	)
	return game, nil
}

// Delete removes a game. Its (name, publisher) pair becomes available again.
func (service *Service) Delete(context context.Context, id string) (err error) {
	defer func() { service.observe(OperationDelete, err) }()

	game, err := service.existing(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, game.ID); err != nil {
		return mapStoreError(err)
	}

	service.logger.InfoContext(context, "game_deleted", slog.String("game_id", game.ID))
	return nil
}

// # Helpers

// existing loads the game a mutation targets, reporting absence as [ErrNotRegistered].
func (service *Service) existing(context context.Context, id string) (*Game, error) {
	game, found, err := service.GetByID(context, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotRegistered
	}
	return game, nil
}

// ensureAvailable fails with [ErrAlreadyRegistered] when the pair belongs to
// a game other than ownerID. An empty ownerID means no game may hold it.
func (service *Service) ensureAvailable(context context.Context, name, publisher, ownerID string) error {
	holder, err := service.repo.FindByNamePublisher(context, name, publisher)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if holder.ID != ownerID {
		return ErrAlreadyRegistered
	}
	return nil
}

// mapStoreError turns backend-neutral store errors into domain errors.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, dberr.ErrDuplicate):
		return ErrAlreadyRegistered
	case errors.Is(err, dberr.ErrNotFound):
		return ErrNotRegistered
	default:
		return err
	}
}

func (service *Service) observe(operation string, err error) {
	if service.recorder == nil {
		return
	}

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus < http.StatusInternalServerError {
			outcome = metrics.OutcomeRejected
		}
	}
	service.recorder.RecordMutation(operation, outcome)
}
