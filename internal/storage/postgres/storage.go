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

	domainErrors "github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/errors"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/model"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/repository"
)

const pgUniqueViolation = "23505"

// Pool is the subset of pgxpool.Pool the storage uses; pgxmock satisfies it.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (Pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

type artistRepository struct {
	storage *Storage
}

type collectionRepository struct {
	storage *Storage
}

type collectibleRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
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

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Artists() repository.ArtistRepository {
	return &artistRepository{storage: s}
}

func (s *Storage) Collections() repository.CollectionRepository {
	return &collectionRepository{storage: s}
}

func (s *Storage) Collectibles() repository.CollectibleRepository {
	return &collectibleRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS artists (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS collections (
            id SERIAL PRIMARY KEY,
            artist_id BIGINT NOT NULL REFERENCES artists(id),
            name TEXT NOT NULL,
            symbol TEXT NOT NULL DEFAULT '',
            mint_address TEXT,
            tree_address TEXT,
            royalty_bps INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS collectibles (
            id SERIAL PRIMARY KEY,
            collection_id BIGINT NOT NULL REFERENCES collections(id),
            name TEXT NOT NULL,
            metadata_uri TEXT NOT NULL,
            price_usd DOUBLE PRECISION NOT NULL DEFAULT 0,
            supply_type TEXT NOT NULL,
            max_supply INTEGER,
            nfc_public_key TEXT,
            mint_start TIMESTAMPTZ,
            mint_end TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            wallet_address TEXT NOT NULL,
            collectible_id BIGINT NOT NULL REFERENCES collectibles(id),
            collection_id BIGINT NOT NULL REFERENCES collections(id),
            device_id TEXT,
            status TEXT NOT NULL,
            price_usd DOUBLE PRECISION NOT NULL,
            supply_type TEXT NOT NULL,
            max_supply INTEGER,
            payment_sig TEXT,
            mint_sig TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_wallet_collectible
            ON orders(wallet_address, collectible_id) WHERE status <> 'failed'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_device_collectible
            ON orders(device_id, collectible_id) WHERE status <> 'failed' AND device_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_orders_pending_age ON orders(created_at) WHERE status = 'pending'`,
		`CREATE INDEX IF NOT EXISTS idx_collectibles_collection ON collectibles(collection_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- ArtistRepository implementation ---

func (r *artistRepository) Create(ctx context.Context, login, passwordHash string) (*model.Artist, error) {
	const query = `INSERT INTO artists (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var a model.Artist
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	a.Login = login
	a.PasswordHash = passwordHash
	return &a, nil
}

func (r *artistRepository) GetByLogin(ctx context.Context, login string) (*model.Artist, error) {
	const query = `SELECT id, login, password_hash, created_at FROM artists WHERE login=$1`
	var a model.Artist
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&a.ID, &a.Login, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *artistRepository) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	const query = `SELECT id, login, password_hash, created_at FROM artists WHERE id=$1`
	var a model.Artist
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Login, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// --- CollectionRepository implementation ---

func (r *collectionRepository) Create(ctx context.Context, collection *model.Collection) (*model.Collection, error) {
	const query = `INSERT INTO collections (artist_id, name, symbol, mint_address, tree_address, royalty_bps)
                   VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	out := *collection
	err := r.storage.pool.QueryRow(ctx, query,
		collection.ArtistID, collection.Name, collection.Symbol,
		collection.MintAddress, collection.TreeAddress, collection.RoyaltyBps,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *collectionRepository) GetByID(ctx context.Context, id int64) (*model.Collection, error) {
	const query = `SELECT id, artist_id, name, symbol, mint_address, tree_address, royalty_bps, created_at
                   FROM collections WHERE id=$1`
	var c model.Collection
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.ArtistID, &c.Name, &c.Symbol, &c.MintAddress, &c.TreeAddress, &c.RoyaltyBps, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *collectionRepository) ListByArtist(ctx context.Context, artistID int64) ([]model.Collection, error) {
	const query = `SELECT id, artist_id, name, symbol, mint_address, tree_address, royalty_bps, created_at
                   FROM collections WHERE artist_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Collection
	for rows.Next() {
		var c model.Collection
		if err := rows.Scan(&c.ID, &c.ArtistID, &c.Name, &c.Symbol, &c.MintAddress, &c.TreeAddress, &c.RoyaltyBps, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *collectionRepository) SetAddresses(ctx context.Context, id int64, mintAddress, treeAddress string) error {
	const query = `UPDATE collections SET mint_address=$2, tree_address=$3 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, mintAddress, treeAddress)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- CollectibleRepository implementation ---

func (r *collectibleRepository) Create(ctx context.Context, collectible *model.Collectible) (*model.Collectible, error) {
	const query = `INSERT INTO collectibles
                   (collection_id, name, metadata_uri, price_usd, supply_type, max_supply, nfc_public_key, mint_start, mint_end)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at`
	out := *collectible
	err := r.storage.pool.QueryRow(ctx, query,
		collectible.CollectionID, collectible.Name, collectible.MetadataURI, collectible.PriceUSD,
		collectible.SupplyType, collectible.MaxSupply, collectible.NFCPublicKey,
		collectible.MintStart, collectible.MintEnd,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *collectibleRepository) GetByID(ctx context.Context, id int64) (*model.Collectible, error) {
	const query = `SELECT id, collection_id, name, metadata_uri, price_usd, supply_type, max_supply,
                          nfc_public_key, mint_start, mint_end, created_at
                   FROM collectibles WHERE id=$1`
	var c model.Collectible
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.CollectionID, &c.Name, &c.MetadataURI, &c.PriceUSD, &c.SupplyType, &c.MaxSupply,
		&c.NFCPublicKey, &c.MintStart, &c.MintEnd, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *collectibleRepository) ListByCollection(ctx context.Context, collectionID int64) ([]model.Collectible, error) {
	const query = `SELECT id, collection_id, name, metadata_uri, price_usd, supply_type, max_supply,
                          nfc_public_key, mint_start, mint_end, created_at
                   FROM collectibles WHERE collection_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, collectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Collectible
	for rows.Next() {
		var c model.Collectible
		if err := rows.Scan(&c.ID, &c.CollectionID, &c.Name, &c.MetadataURI, &c.PriceUSD, &c.SupplyType,
			&c.MaxSupply, &c.NFCPublicKey, &c.MintStart, &c.MintEnd, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, wallet_address, collectible_id, collection_id, device_id, status,
                      price_usd, supply_type, max_supply, payment_sig, mint_sig, created_at, updated_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.WalletAddress, &o.CollectibleID, &o.CollectionID, &o.DeviceID, &o.Status,
		&o.PriceUSD, &o.SupplyType, &o.MaxSupply, &o.PaymentSig, &o.MintSig, &o.CreatedAt, &o.UpdatedAt)
}

// Create inserts a pending order. The collectible row is locked for the
// supply check so two concurrent inserts cannot both pass the cap, and the
// partial unique indexes reject a second non-failed order for the same
// wallet or device. A unique violation surfaces as ErrAlreadyExists.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	out := *order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if order.MaxSupply != nil {
			var locked int64
			if err := tx.QueryRow(ctx, `SELECT id FROM collectibles WHERE id=$1 FOR UPDATE`, order.CollectibleID).Scan(&locked); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return domainErrors.ErrNotFound
				}
				return err
			}

			var minted int32
			const countQuery = `SELECT COUNT(*) FROM orders WHERE collectible_id=$1 AND status <> 'failed'`
			if err := tx.QueryRow(ctx, countQuery, order.CollectibleID).Scan(&minted); err != nil {
				return err
			}
			if minted >= *order.MaxSupply {
				return domainErrors.ErrSupplyExhausted
			}
		}

		const insertQuery = `INSERT INTO orders
            (id, wallet_address, collectible_id, collection_id, device_id, status, price_usd, supply_type, max_supply)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
            RETURNING created_at, updated_at`
		err := tx.QueryRow(ctx, insertQuery,
			order.ID, order.WalletAddress, order.CollectibleID, order.CollectionID, order.DeviceID,
			model.OrderStatusPending, order.PriceUSD, order.SupplyType, order.MaxSupply,
		).Scan(&out.CreatedAt, &out.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}
		out.Status = model.OrderStatusPending
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	var o model.Order
	if err := scanOrder(r.storage.pool.QueryRow(ctx, query, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) FindActive(ctx context.Context, collectibleID int64, wallet string, deviceID *string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + `
              FROM orders
              WHERE collectible_id=$1 AND status <> 'failed'
                AND (wallet_address=$2 OR ($3::text IS NOT NULL AND device_id=$3))
              ORDER BY created_at DESC LIMIT 1`
	var o model.Order
	if err := scanOrder(r.storage.pool.QueryRow(ctx, query, collectibleID, wallet, deviceID), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Finalize performs the single allowed terminal transition. The conditional
// update keeps finalization idempotent: a second attempt matches no row.
func (r *orderRepository) Finalize(ctx context.Context, id string, status model.OrderStatus, paymentSig, mintSig *string) error {
	if !status.Terminal() {
		return domainErrors.ErrOrderNotPending
	}
	const query = `UPDATE orders SET status=$2, payment_sig=$3, mint_sig=$4, updated_at=NOW()
                   WHERE id=$1 AND status='pending'`
	tag, err := r.storage.pool.Exec(ctx, query, id, status, paymentSig, mintSig)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrOrderNotPending
	}
	return nil
}

func (r *orderRepository) SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	cutoff := time.Now().Add(-olderThan)
	query := `SELECT ` + orderColumns + `
              FROM orders
              WHERE status='pending' AND created_at < $1
              ORDER BY created_at
              LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.WalletAddress, &o.CollectibleID, &o.CollectionID, &o.DeviceID, &o.Status,
			&o.PriceUSD, &o.SupplyType, &o.MaxSupply, &o.PaymentSig, &o.MintSig, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
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

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
