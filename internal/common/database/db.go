package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB は端末ストレージ用のデータベース接続です
type DB struct {
	*sqlx.DB
}

// Config は端末ストレージの接続設定です
// sqlite の場合 DSN はファイルパス、postgres の場合は接続文字列です
type Config struct {
	Driver string
	DSN    string
}

const schema = `
	CREATE TABLE IF NOT EXISTS device_storage (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`

// NewDB は端末ストレージを開き、テーブルを作成します
func NewDB(cfg Config) (*DB, error) {
	var conn *sqlx.DB

	switch strings.ToLower(cfg.Driver) {
	case DriverSQLite, "":
		// 保存先ディレクトリがなければ作成する
		if dir := filepath.Dir(cfg.DSN); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return nil, fmt.Errorf("failed to create storage directory: %w", err)
			}
		}

		db, err := sqlx.Open(DriverSQLite, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		// sqliteは書き込みを直列化するため接続は1本に絞る
		db.SetMaxOpenConns(1)
		conn = db

	case DriverPostgres:
		// X-Ray対応のSQLコンテキストを作成
		db, err := xray.SQLContext(DriverPostgres, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open database with X-Ray: %w", err)
		}

		// コネクションプールの設定
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		conn = sqlx.NewDb(db, DriverPostgres)

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}

	// 接続テスト
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping storage: %w", err)
	}

	db := &DB{conn}
	if err := db.Migrate(context.Background()); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

// Migrate は端末ストレージのテーブルを作成します
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate storage: %w", err)
	}
	return nil
}
