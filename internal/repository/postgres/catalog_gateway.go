package pgrepo

import (
	"context"
	"errors"
	"fmt"

	"laza-storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// catalogGateway stores each catalog item as one row of catalog_items.
// Rows are listed in creation order, which is the canonical catalog order.
type catalogGateway struct {
	db DBTX
}

func NewCatalogGateway(db DBTX) domain.CatalogGateway {
	return &catalogGateway{db: db}
}

const (
	listCatalogItems = `SELECT id::text, name, price, image FROM catalog_items ORDER BY created_at, id`

	createCatalogItem = `INSERT INTO catalog_items (name, price, image)
VALUES ($1, $2, $3)
RETURNING id::text, name, price, image`

	updateCatalogItem = `UPDATE catalog_items
SET name = $2, price = $3, image = $4, updated_at = now()
WHERE id = $1::uuid
RETURNING id::text, name, price, image`

	deleteCatalogItem = `DELETE FROM catalog_items WHERE id = $1::uuid`
)

func (g *catalogGateway) List(ctx context.Context) ([]domain.CatalogItem, error) {
	rows, err := g.db.Query(ctx, listCatalogItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.CatalogItem, 0)
	for rows.Next() {
		var it domain.CatalogItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Image); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (g *catalogGateway) Create(ctx context.Context, fields domain.ItemFields) (domain.CatalogItem, error) {
	var it domain.CatalogItem
	err := g.db.QueryRow(ctx, createCatalogItem, fields.Name, fields.Price, fields.Image).
		Scan(&it.ID, &it.Name, &it.Price, &it.Image)
	if err != nil {
		return domain.CatalogItem{}, err
	}
	return it, nil
}

func (g *catalogGateway) Update(ctx context.Context, id string, fields domain.ItemFields) (domain.CatalogItem, error) {
	var it domain.CatalogItem
	err := g.db.QueryRow(ctx, updateCatalogItem, id, fields.Name, fields.Price, fields.Image).
		Scan(&it.ID, &it.Name, &it.Price, &it.Image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CatalogItem{}, fmt.Errorf("row %q: %w", id, domain.ErrNotFound)
		}
		return domain.CatalogItem{}, err
	}
	return it, nil
}

// Delete succeeds whether or not the row still exists.
func (g *catalogGateway) Delete(ctx context.Context, id string) error {
	_, err := g.db.Exec(ctx, deleteCatalogItem, id)
	return err
}
