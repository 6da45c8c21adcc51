package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/the-1ndex/mmm/mmm/data/address"
	"github.com/the-1ndex/mmm/solana/mmm"

	pgutil "github.com/the-1ndex/mmm/database/postgres"
)

const (
	tableName = "mmm__core_derivedaddress"

	allColumns = `id, address, bump, program, kind, owner, uuid, pool, asset_mint, created_at`
)

type model struct {
	Id        sql.NullInt64 `db:"id"`
	Address   string        `db:"address"`
	Bump      uint8         `db:"bump"`
	Program   string        `db:"program"`
	Kind      uint8         `db:"kind"`
	Owner     string        `db:"owner"`
	Uuid      string        `db:"uuid"`
	Pool      string        `db:"pool"`
	AssetMint string        `db:"asset_mint"`
	CreatedAt time.Time     `db:"created_at"`
}

func toModel(obj *address.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	createdAt := obj.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return &model{
		Address:   obj.Address,
		Bump:      obj.Bump,
		Program:   obj.Program,
		Kind:      uint8(obj.Kind),
		Owner:     obj.Owner,
		Uuid:      obj.Uuid,
		Pool:      obj.Pool,
		AssetMint: obj.AssetMint,
		CreatedAt: createdAt,
	}, nil
}

func fromModel(obj *model) *address.Record {
	return &address.Record{
		Id:        uint64(obj.Id.Int64),
		Address:   obj.Address,
		Bump:      obj.Bump,
		Program:   obj.Program,
		Kind:      mmm.EntityKind(obj.Kind),
		Owner:     obj.Owner,
		Uuid:      obj.Uuid,
		Pool:      obj.Pool,
		AssetMint: obj.AssetMint,
		CreatedAt: obj.CreatedAt.UTC(),
	}
}

// dbPut inserts the model unless its address already exists, in which case
// the stored row is loaded into res for the caller to compare
func (m *model) dbPut(ctx context.Context, db *sqlx.DB) (res *model, inserted bool, err error) {
	err = pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + tableName + `
			(address, bump, program, kind, owner, uuid, pool, asset_mint, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (address) DO NOTHING
			RETURNING ` + allColumns

		res = &model{}
		err := tx.QueryRowxContext(
			ctx,
			query,
			m.Address,
			m.Bump,
			m.Program,
			m.Kind,
			m.Owner,
			m.Uuid,
			m.Pool,
			m.AssetMint,
			m.CreatedAt,
		).StructScan(res)
		if err == nil {
			inserted = true
			return nil
		} else if err != sql.ErrNoRows {
			return err
		}

		query = `SELECT ` + allColumns + ` FROM ` + tableName + `
			WHERE address = $1
			LIMIT 1`
		return tx.GetContext(ctx, res, query, m.Address)
	})
	return res, inserted, err
}

func dbGetByAddress(ctx context.Context, db *sqlx.DB, value string) (*model, error) {
	res := &model{}

	query := `SELECT ` + allColumns + ` FROM ` + tableName + `
		WHERE address = $1
		LIMIT 1`

	err := db.GetContext(ctx, res, query, value)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, address.ErrNotFound)
	}
	return res, nil
}

func dbGetAllByPool(ctx context.Context, db *sqlx.DB, pool string) ([]*model, error) {
	var res []*model

	query := `SELECT ` + allColumns + ` FROM ` + tableName + `
		WHERE pool = $1
		ORDER BY id ASC`

	err := db.SelectContext(ctx, &res, query, pool)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, address.ErrNotFound)
	}
	if len(res) == 0 {
		return nil, address.ErrNotFound
	}
	return res, nil
}
