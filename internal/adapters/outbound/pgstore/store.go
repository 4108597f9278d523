package pgstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"

	"github.com/happyshop/happyshop/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
    id          TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    image       TEXT NOT NULL DEFAULT '',
    price       NUMERIC(12,2) NOT NULL CHECK (price >= 0),
    stock       INTEGER NOT NULL CHECK (stock >= 0)
)`

// Byte-order collation keeps results in the same order as the trolley.
const (
	searchQuery = `SELECT id, description, image, price, stock
FROM products
WHERE id ILIKE $1 OR description ILIKE $1
ORDER BY id COLLATE "C"`

	lockQuery = `SELECT id, description, image, price, stock
FROM products
WHERE id = ANY($1)
ORDER BY id COLLATE "C"
FOR UPDATE`

	decrementQuery = `UPDATE products SET stock = stock - $1 WHERE id = $2`

	pruneQuery = `DELETE FROM products WHERE NOT (id = ANY($1))`

	upsertQuery = `INSERT INTO products (id, description, image, price, stock)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
    description = EXCLUDED.description,
    image       = EXCLUDED.image,
    price       = EXCLUDED.price,
    stock       = EXCLUDED.stock`
)

// Store implements domain.InventoryStore on a PostgreSQL products table.
type Store struct {
	db *sql.DB
}

// Open connects through the pgx driver and pings the server.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %w", domain.ErrStoreUnavailable, err)
	}

	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping: %w", domain.ErrStoreUnavailable, err)
	}
	return New(db), nil
}

// New wraps an existing connection pool.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate creates the products table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return unavailable("migrate", err)
	}
	return nil
}

// Seed replaces the products table in one transaction: rows missing from
// products are deleted, the rest are upserted.
func (s *Store) Seed(ctx context.Context, products []domain.Product) error {
	if err := domain.ValidateCatalogue(products); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin seed", err)
	}
	defer func() { _ = tx.Rollback() }()

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	if _, err := tx.ExecContext(ctx, pruneQuery, pq.Array(ids)); err != nil {
		return unavailable("prune catalogue", err)
	}

	for _, p := range products {
		if _, err := tx.ExecContext(ctx, upsertQuery, p.ID, p.Description, p.ImageRef, p.UnitPrice, p.StockQuantity); err != nil {
			return unavailable("seed "+p.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return unavailable("commit seed", err)
	}
	return nil
}

func (s *Store) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(keyword)) + "%"

	rows, err := s.db.QueryContext(ctx, searchQuery, pattern)
	if err != nil {
		return nil, unavailable("search", err)
	}
	defer rows.Close()

	out, err := scanProducts(rows)
	if err != nil {
		return nil, unavailable("search", err)
	}
	return out, nil
}

// PurchaseStocks locks the requested rows in ascending id order, checks
// them and decrements all of them, or rolls back on any shortage.
func (s *Store) PurchaseStocks(ctx context.Context, req domain.GroupedRequest) ([]domain.Shortage, error) {
	if req.IsEmpty() {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, unavailable("begin purchase", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, lockQuery, pq.Array(req.IDs()))
	if err != nil {
		return nil, unavailable("lock stock", err)
	}
	locked, err := scanProducts(rows)
	_ = rows.Close()
	if err != nil {
		return nil, unavailable("lock stock", err)
	}

	available := make(map[string]domain.Product, len(locked))
	for _, p := range locked {
		available[p.ID] = p
	}
	if shortages := domain.CheckShortages(req, available); len(shortages) > 0 {
		return shortages, nil
	}

	for _, it := range req.Items() {
		if _, err := tx.ExecContext(ctx, decrementQuery, it.Quantity, it.ProductID); err != nil {
			return nil, unavailable("decrement "+it.ProductID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, unavailable("commit purchase", err)
	}
	return nil, nil
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Description, &p.ImageRef, &p.UnitPrice, &p.StockQuantity); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// escapeLike escapes LIKE wildcards so the keyword matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
}
