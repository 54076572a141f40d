package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/common/database"
)

// DB は端末ストレージへのアクセスをX-Rayでトレースするラッパーです
type DB struct {
	*sqlx.DB
}

// NewDB は database.DB から repository.DB を作成します
func NewDB(db *database.DB) *DB {
	return &DB{DB: db.DB}
}

// GetContext wraps sqlx.DB.GetContext with X-Ray tracing
func (db *DB) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	ctx, seg := beginSubsegment(ctx, "DB.Get")
	addMetadata(seg, "query", query)

	err := db.DB.GetContext(ctx, dest, db.Rebind(query), args...)
	if err != nil && err != sql.ErrNoRows {
		closeSegment(seg, err)
		return err
	}
	closeSegment(seg, nil)
	return err
}

// SelectContext wraps sqlx.DB.SelectContext with X-Ray tracing
func (db *DB) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	ctx, seg := beginSubsegment(ctx, "DB.Select")
	addMetadata(seg, "query", query)

	err := db.DB.SelectContext(ctx, dest, db.Rebind(query), args...)
	closeSegment(seg, err)
	return err
}

// WithTx はトランザクション内で fn を実行します
// fn がエラーを返した場合はロールバックします
func (db *DB) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	ctx, seg := beginSubsegment(ctx, "DB.WithTx")
	defer func() { closeSegment(seg, err) }()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("rollback failed: %v, original error: %v", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
