package screen

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated はセッションが無くログイン画面へ遷移したことを表します
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrAdminOnly は管理者専用の操作を一般ユーザーが呼び出したことを表します
	ErrAdminOnly = errors.New("admin only")
	// ErrReadOnly は過去の予約を変更しようとしたことを表します
	ErrReadOnly = errors.New("past reservations are read-only")
	// ErrNotLoaded は編集対象の予約が読み込まれていないことを表します
	ErrNotLoaded = errors.New("reservation not loaded")
)

// ValidationError は送信前の入力チェックで弾かれたことを表します
type ValidationError struct {
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Title + ": " + e.Message
}

// ActionError はユーザー操作が失敗し、Message を表示したことを表します
type ActionError struct {
	Title   string
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Title, e.Message, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
