package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxPool interface {
	querier
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	repositories
	pool   pgxPool
	logger *slog.Logger
}

// repositories builds repository adapters on top of a querier.
type repositories struct {
	q querier
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := newStorage(pool, logger)
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

func newStorage(pool pgxPool, logger *slog.Logger) *Storage {
	return &Storage{repositories: repositories{q: pool}, pool: pool, logger: logger}
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (r repositories) Users() repository.UserRepository {
	return &userRepository{q: r.q}
}

func (r repositories) Items() repository.ItemRepository {
	return &itemRepository{q: r.q}
}

func (r repositories) Coupons() repository.CouponRepository {
	return &couponRepository{q: r.q}
}

func (r repositories) Orders() repository.OrderRepository {
	return &orderRepository{q: r.q}
}

func (r repositories) OrderItems() repository.OrderItemRepository {
	return &orderItemRepository{q: r.q}
}

func (r repositories) Addresses() repository.AddressRepository {
	return &addressRepository{q: r.q}
}

func (r repositories) Payments() repository.PaymentRepository {
	return &paymentRepository{q: r.q}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS items (
            id BIGSERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            slug TEXT UNIQUE NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price_cents BIGINT NOT NULL CHECK (price_cents >= 0)
        )`,
		`CREATE TABLE IF NOT EXISTS coupons (
            id BIGSERIAL PRIMARY KEY,
            code TEXT UNIQUE NOT NULL,
            amount_cents BIGINT NOT NULL CHECK (amount_cents >= 0)
        )`,
		`CREATE TABLE IF NOT EXISTS addresses (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            street_address TEXT NOT NULL,
            apartment_address TEXT NOT NULL DEFAULT '',
            country TEXT NOT NULL,
            zip TEXT NOT NULL,
            is_default BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            charge_id TEXT UNIQUE NOT NULL,
            amount_cents BIGINT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            ordered BOOLEAN NOT NULL DEFAULT FALSE,
            start_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            ordered_date TIMESTAMPTZ,
            address_id BIGINT REFERENCES addresses(id),
            payment_id BIGINT REFERENCES payments(id),
            coupon_id BIGINT REFERENCES coupons(id)
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            item_id BIGINT NOT NULL REFERENCES items(id),
            ordered BOOLEAN NOT NULL DEFAULT FALSE,
            quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1),
            order_id BIGINT REFERENCES orders(id)
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_open_user ON orders(user_id) WHERE NOT ordered`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_order_items_open ON order_items(user_id, item_id) WHERE NOT ordered`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_addresses_default ON addresses(user_id) WHERE is_default`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user_completed ON orders(user_id, ordered_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// Atomic runs fn with repositories bound to a single transaction.
func (s *Storage) Atomic(ctx context.Context, fn func(repository.Factory) error) error {
	return s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return fn(repositories{q: tx})
	})
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				s.logger.Error("rollback failed", slog.String("error", rbErr.Error()))
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// mapError translates driver errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domainErrors.ErrAlreadyExists
	}
	return err
}

var _ repository.Store = (*Storage)(nil)
