// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package game

import (
	"context"
	"slices"
	"sync"

	"github.com/taibuivan/catalogo-jogos/internal/platform/dberr"
)

// pairKey is the uniqueness key of a game.
type pairKey struct {
	name      string
	publisher string
}

// MemoryRepository keeps the catalog in process memory. It is the default
// store and the one used by tests.
//
// A single RWMutex guards both maps, so the pair check and the insert of
// Create happen atomically.
type MemoryRepository struct {
	mutex sync.RWMutex
	games map[string]Game
	pairs map[pairKey]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		games: make(map[string]Game),
		pairs: make(map[pairKey]string),
	}
}

func (repository *MemoryRepository) List(_ context.Context, limit, offset int) ([]*Game, error) {
	repository.mutex.RLock()
	defer repository.mutex.RUnlock()

	ids := make([]string, 0, len(repository.games))
	for id := range repository.games {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	if limit <= 0 || offset < 0 || offset >= len(ids) {
		return []*Game{}, nil
	}

	end := min(offset+limit, len(ids))
	result := make([]*Game, 0, end-offset)
	for _, id := range ids[offset:end] {
		game := repository.games[id]
		result = append(result, &game)
	}
	return result, nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Game, error) {
	repository.mutex.RLock()
	defer repository.mutex.RUnlock()

	game, ok := repository.games[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return &game, nil
}

func (repository *MemoryRepository) FindByNamePublisher(_ context.Context, name, publisher string) (*Game, error) {
	repository.mutex.RLock()
	defer repository.mutex.RUnlock()

	id, ok := repository.pairs[pairKey{name: name, publisher: publisher}]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	game := repository.games[id]
	return &game, nil
}

func (repository *MemoryRepository) Create(_ context.Context, game *Game) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	key := pairKey{name: game.Name, publisher: game.Publisher}
	if _, taken := repository.pairs[key]; taken {
		return dberr.ErrDuplicate
	}
	if _, taken := repository.games[game.ID]; taken {
		return dberr.ErrDuplicate
	}

	repository.games[game.ID] = *game
	repository.pairs[key] = game.ID
	return nil
}

func (repository *MemoryRepository) Update(_ context.Context, game *Game) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	current, ok := repository.games[game.ID]
	if !ok {
		return dberr.ErrNotFound
	}

	oldKey := pairKey{name: current.Name, publisher: current.Publisher}
	newKey := pairKey{name: game.Name, publisher: game.Publisher}
	if holder, taken := repository.pairs[newKey]; taken && holder != game.ID {
		return dberr.ErrDuplicate
	}

	delete(repository.pairs, oldKey)
	repository.pairs[newKey] = game.ID
	repository.games[game.ID] = *game
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	current, ok := repository.games[id]
	if !ok {
		return dberr.ErrNotFound
	}

	delete(repository.pairs, pairKey{name: current.Name, publisher: current.Publisher})
	delete(repository.games, id)
	return nil
}
