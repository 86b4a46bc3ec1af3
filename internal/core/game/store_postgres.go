// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/catalogo-jogos/internal/platform/database/schema"
	"github.com/taibuivan/catalogo-jogos/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectColumns is the column list every read scans, in [scanGame] order.
var selectColumns = strings.Join(schema.CatalogGame.Columns(), ", ")

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*Game, error) {
	game := &Game{}
	if err := row.Scan(&game.ID, &game.Name, &game.Publisher, &game.Price); err != nil {
		return nil, err
	}
	return game, nil
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC LIMIT $1 OFFSET $2`,
		selectColumns, schema.CatalogGame.Table, schema.CatalogGame.ID)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "list_games")
	}
	defer rows.Close()

	games := make([]*Game, 0, limit)
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_game")
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_games")
	}
	return games, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CatalogGame.Table, schema.CatalogGame.ID)

	game, err := scanGame(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_game_by_id")
	}
	return game, nil
}

func (repository *PostgresRepository) FindByNamePublisher(context context.Context, name, publisher string) (*Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		selectColumns, schema.CatalogGame.Table, schema.CatalogGame.Name, schema.CatalogGame.Publisher)

	game, err := scanGame(repository.db.QueryRow(context, query, name, publisher))
	if err != nil {
		return nil, dberr.Wrap(err, "get_game_by_name_publisher")
	}
	return game, nil
}

func (repository *PostgresRepository) Create(context context.Context, game *Game) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4)`,
		schema.CatalogGame.Table, selectColumns)

	_, err := repository.db.Exec(context, query, game.ID, game.Name, game.Publisher, game.Price)
	return dberr.Wrap(err, "create_game")
}

func (repository *PostgresRepository) Update(context context.Context, game *Game) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1`,
		schema.CatalogGame.Table,
		schema.CatalogGame.Name, schema.CatalogGame.Publisher, schema.CatalogGame.Price,
		schema.CatalogGame.ID)

	tag, err := repository.db.Exec(context, query, game.ID, game.Name, game.Publisher, game.Price)
	if err != nil {
		return dberr.Wrap(err, "update_game")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogGame.Table, schema.CatalogGame.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_game")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
