package repository

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyResult は1件取得APIが空の配列を返したことを表します
var ErrEmptyResult = errors.New("empty result")

// TransportError はHTTPレスポンスを受け取れなかったことを表します
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError はサーバーが2xx以外を返したことを表します
// Message はレスポンスボディの error フィールドで、無い場合は空です
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
}

// IsUnauthorized は認証・認可エラーかどうかを返します
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// ServerMessage はエラーがサーバー由来のメッセージを持っていれば返します
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
