package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/the-1ndex/mmm/mmm/data/address"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres backed address.Store
func New(db *sql.DB) address.Store {
	return &store{
		db: sqlx.NewDb(db, "postgres"),
	}
}

// Put implements address.Store.Put
func (s *store) Put(ctx context.Context, record *address.Record) error {
	m, err := toModel(record)
	if err != nil {
		return err
	}

	stored, inserted, err := m.dbPut(ctx, s.db)
	if err != nil {
		return err
	}

	res := fromModel(stored)
	if !inserted && !res.IsEquivalent(record) {
		return address.ErrAlreadyExists
	}

	record.Id = res.Id
	record.CreatedAt = res.CreatedAt
	return nil
}

// GetByAddress implements address.Store.GetByAddress
func (s *store) GetByAddress(ctx context.Context, value string) (*address.Record, error) {
	m, err := dbGetByAddress(ctx, s.db, value)
	if err != nil {
		return nil, err
	}
	return fromModel(m), nil
}

// GetAllByPool implements address.Store.GetAllByPool
func (s *store) GetAllByPool(ctx context.Context, pool string) ([]*address.Record, error) {
	models, err := dbGetAllByPool(ctx, s.db, pool)
	if err != nil {
		return nil, err
	}

	res := make([]*address.Record, len(models))
	for i, m := range models {
		res[i] = fromModel(m)
	}
	return res, nil
}
