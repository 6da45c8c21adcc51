package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// CheckNoRows maps sql.ErrNoRows to notFoundErr and returns any other error
// unchanged
func CheckNoRows(inErr, notFoundErr error) error {
	if inErr == sql.ErrNoRows {
		return notFoundErr
	}
	return inErr
}

// ExecuteInTx runs fn in a transaction, committing when it returns nil and
// rolling back otherwise
func ExecuteInTx(ctx context.Context, db *sqlx.DB, isolation sql.IsolationLevel, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: isolation})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return errors.Wrapf(err, "rollback also failed: %s", rollbackErr.Error())
		}
		return err
	}
	return tx.Commit()
}
