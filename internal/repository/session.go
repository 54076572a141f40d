package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
)

// SessionRepository は端末ストレージに保存されたセッションを扱うインターフェースです
type SessionRepository interface {
	Load(ctx context.Context) (model.Session, error)
	Save(ctx context.Context, session model.Session) error
	Clear(ctx context.Context) error
}

// SessionRepositoryImpl はSessionRepositoryの実装です
type SessionRepositoryImpl struct {
	db *DB
}

// NewSessionRepository は新しいSessionRepositoryを作成します
func NewSessionRepository(db *DB) *SessionRepositoryImpl {
	return &SessionRepositoryImpl{db: db}
}

type storageEntry struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

const upsertStorageQuery = `
	INSERT INTO device_storage (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// Load は保存されているキーを読み込みます。存在しないキーは空文字になります
func (r *SessionRepositoryImpl) Load(ctx context.Context) (session model.Session, err error) {
	ctx, seg := beginSubsegment(ctx, "SessionRepository.Load")
	defer func() { closeSegment(seg, err) }()

	var entries []storageEntry
	query := `SELECT key, value FROM device_storage WHERE key IN (?, ?, ?)`
	if err = r.db.SelectContext(ctx, &entries, query,
		model.StorageKeyUserID, model.StorageKeyAuthToken, model.StorageKeyIsAdmin); err != nil {
		return model.Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	for _, e := range entries {
		switch e.Key {
		case model.StorageKeyUserID:
			session.UserID = e.Value
		case model.StorageKeyAuthToken:
			session.AuthToken = e.Value
		case model.StorageKeyIsAdmin:
			session.IsAdmin = model.ParseAdminFlag(e.Value)
		}
	}
	return session, nil
}

// Save は3つのキーを1つのトランザクションで書き込みます
func (r *SessionRepositoryImpl) Save(ctx context.Context, session model.Session) (err error) {
	ctx, seg := beginSubsegment(ctx, "SessionRepository.Save")
	defer func() { closeSegment(seg, err) }()

	now := time.Now().UTC()
	entries := []storageEntry{
		{Key: model.StorageKeyUserID, Value: session.UserID},
		{Key: model.StorageKeyAuthToken, Value: session.AuthToken},
		{Key: model.StorageKeyIsAdmin, Value: session.AdminFlagValue()},
	}

	err = r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := tx.Rebind(upsertStorageQuery)
		for _, e := range entries {
			if _, err := tx.ExecContext(ctx, query, e.Key, e.Value, now); err != nil {
				return fmt.Errorf("failed to save %s: %w", e.Key, err)
			}
		}
		return nil
	})
	return err
}

// Clear は端末ストレージの全キーを削除します
func (r *SessionRepositoryImpl) Clear(ctx context.Context) (err error) {
	ctx, seg := beginSubsegment(ctx, "SessionRepository.Clear")
	defer func() { closeSegment(seg, err) }()

	err = r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM device_storage`); err != nil {
			return fmt.Errorf("failed to clear storage: %w", err)
		}
		return nil
	})
	return err
}
