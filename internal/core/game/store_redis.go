// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/catalogo-jogos/internal/platform/dberr"
)

// # Key Layout
//
//	{prefix}:game:{id}                 hash with id, name, publisher, price
//	{prefix}:index                     sorted set of ids, all scored 0 (lexical order)
//	{prefix}:pair:{len(name)}:{name}:{publisher}  string holding the owning id
//
// Writes run as WATCH/MULTI/EXEC transactions over the game hash and the pair
// key they claim, so (name, publisher) stays unique and a pair key always
// names its game. The name length prefix keeps names and publishers
// containing ':' from colliding.

const (
	hashID        = "id"
	hashName      = "name"
	hashPublisher = "publisher"
	hashPrice     = "price"
)

// RedisRepository stores the catalog in Redis.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	return &RedisRepository{client: client, prefix: prefix}
}

func (repository *RedisRepository) gameKey(id string) string {
	return repository.prefix + ":game:" + id
}

func (repository *RedisRepository) indexKey() string {
	return repository.prefix + ":index"
}

func (repository *RedisRepository) pairKey(name, publisher string) string {
	return fmt.Sprintf("%s:pair:%d:%s:%s", repository.prefix, len(name), name, publisher)
}

func encodeGame(game *Game) map[string]any {
	return map[string]any{
		hashID:        game.ID,
		hashName:      game.Name,
		hashPublisher: game.Publisher,
		hashPrice:     strconv.FormatFloat(game.Price, 'g', -1, 64),
	}
}

func decodeGame(values map[string]string) (*Game, error) {
	price, err := strconv.ParseFloat(values[hashPrice], 64)
	if err != nil {
		return nil, fmt.Errorf("decode price of game %q: %w", values[hashID], err)
	}
	return &Game{
		ID:        values[hashID],
		Name:      values[hashName],
		Publisher: values[hashPublisher],
		Price:     price,
	}, nil
}

func (repository *RedisRepository) List(context context.Context, limit, offset int) ([]*Game, error) {
	if limit <= 0 || offset < 0 {
		return []*Game{}, nil
	}
	games := make([]*Game, 0, limit)

	ids, err := repository.client.ZRange(context, repository.indexKey(), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, dberr.Wrap(err, "list_game_ids")
	}
	if len(ids) == 0 {
		return games, nil
	}

	commands := make([]*redis.MapStringStringCmd, len(ids))
	_, err = repository.client.Pipelined(context, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			commands[i] = pipe.HGetAll(context, repository.gameKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, dberr.Wrap(err, "list_games")
	}

	for _, command := range commands {
		values := command.Val()
		// Removed between ZRANGE and HGETALL.
		if len(values) == 0 {
			continue
		}
		game, err := decodeGame(values)
		if err != nil {
			return nil, dberr.Wrap(err, "decode_game")
		}
		games = append(games, game)
	}
	return games, nil
}

func (repository *RedisRepository) FindByID(context context.Context, id string) (*Game, error) {
	values, err := repository.client.HGetAll(context, repository.gameKey(id)).Result()
	if err != nil {
		return nil, dberr.Wrap(err, "get_game_by_id")
	}
	if len(values) == 0 {
		return nil, dberr.ErrNotFound
	}

	game, err := decodeGame(values)
	if err != nil {
		return nil, dberr.Wrap(err, "decode_game")
	}
	return game, nil
}

func (repository *RedisRepository) FindByNamePublisher(context context.Context, name, publisher string) (*Game, error) {
	id, err := repository.client.Get(context, repository.pairKey(name, publisher)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, dberr.ErrNotFound
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_game_by_name_publisher")
	}
	return repository.FindByID(context, id)
}

func (repository *RedisRepository) Create(context context.Context, game *Game) error {
	pair := repository.pairKey(game.Name, game.Publisher)
	key := repository.gameKey(game.ID)

	return repository.transact(context, "create_game", func(tx *redis.Tx) error {
		if err := claimable(context, tx, pair, game.ID); err != nil {
			return err
		}
		exists, err := tx.Exists(context, key).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return dberr.ErrDuplicate
		}

		_, err = tx.TxPipelined(context, func(pipe redis.Pipeliner) error {
			pipe.Set(context, pair, game.ID, 0)
			pipe.HSet(context, key, encodeGame(game))
			pipe.ZAdd(context, repository.indexKey(), redis.Z{Score: 0, Member: game.ID})
			return nil
		})
		return err
	}, pair, key)
}

func (repository *RedisRepository) Update(context context.Context, game *Game) error {
	newPair := repository.pairKey(game.Name, game.Publisher)
	key := repository.gameKey(game.ID)

	// Watching the hash covers the old pair too: it only moves when the hash changes.
	return repository.transact(context, "update_game", func(tx *redis.Tx) error {
		current, err := readGame(context, tx, key)
		if err != nil {
			return err
		}

		oldPair := repository.pairKey(current.Name, current.Publisher)
		pairChanged := oldPair != newPair
		if pairChanged {
			if err := claimable(context, tx, newPair, game.ID); err != nil {
				return err
			}
		}

		_, err = tx.TxPipelined(context, func(pipe redis.Pipeliner) error {
			pipe.HSet(context, key, encodeGame(game))
			if pairChanged {
				pipe.Del(context, oldPair)
				pipe.Set(context, newPair, game.ID, 0)
			}
			return nil
		})
		return err
	}, key, newPair)
}

func (repository *RedisRepository) Delete(context context.Context, id string) error {
	key := repository.gameKey(id)

	return repository.transact(context, "delete_game", func(tx *redis.Tx) error {
		current, err := readGame(context, tx, key)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(context, func(pipe redis.Pipeliner) error {
			pipe.Del(context, key)
			pipe.ZRem(context, repository.indexKey(), id)
			pipe.Del(context, repository.pairKey(current.Name, current.Publisher))
			return nil
		})
		return err
	}, key)
}

// # Transactions

// maxTxAttempts bounds the retries of a write whose watched keys keep changing.
const maxTxAttempts = 16

// transact runs fn under WATCH on keys and retries it while a concurrent
// writer invalidates the transaction. fn must read through tx and write
// through tx.TxPipelined so EXEC aborts when a watched key moved.
func (repository *RedisRepository) transact(context context.Context, action string, fn func(tx *redis.Tx) error, keys ...string) error {
	var err error
	for range maxTxAttempts {
		err = repository.client.Watch(context, fn, keys...)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case errors.Is(err, dberr.ErrNotFound), errors.Is(err, dberr.ErrDuplicate):
			return err
		default:
			return dberr.Wrap(err, action)
		}
	}
	return dberr.Wrap(err, action+"_contended")
}

// readGame loads the hash at key inside a watched transaction.
func readGame(context context.Context, tx *redis.Tx, key string) (*Game, error) {
	values, err := tx.HGetAll(context, key).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, dberr.ErrNotFound
	}
	return decodeGame(values)
}

// claimable fails with [dberr.ErrDuplicate] when pair is held by a game other than id.
func claimable(context context.Context, tx *redis.Tx, pair, id string) error {
	holder, err := tx.Get(context, pair).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	if holder != id {
		return dberr.ErrDuplicate
	}
	return nil
}
