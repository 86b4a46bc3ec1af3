// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package game

import "context"

// Repository is the persistence contract of the catalog.
//
// Implementations report a missing record with dberr.ErrNotFound and a
// (name, publisher) collision with dberr.ErrDuplicate.
type Repository interface {
	// List returns at most limit games ordered by id, skipping offset games.
	List(context context.Context, limit, offset int) ([]*Game, error)
	FindByID(context context.Context, id string) (*Game, error)
	FindByNamePublisher(context context.Context, name, publisher string) (*Game, error)
	Create(context context.Context, game *Game) error
	// Update overwrites name, publisher and price of the game with game.ID.
	Update(context context.Context, game *Game) error
	Delete(context context.Context, id string) error
}
