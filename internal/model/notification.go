package model

import (
	"fmt"
	"time"
)

// NotificationType は画面に表示する通知の種類を表します
type NotificationType string

const (
	// NotificationTypeSuccess は操作成功の通知を表します
	NotificationTypeSuccess NotificationType = "success"
	// NotificationTypeError は操作失敗の通知を表します
	NotificationTypeError NotificationType = "error"
	// NotificationTypeValidation は入力チェックで弾かれたことを表します
	NotificationTypeValidation NotificationType = "validation"
)

// Notification は画面からユーザーへ表示するアラートです
// 表示方法（ダイアログ、標準出力など）は通知先の実装に任せます
type Notification struct {
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}

// String はWeb版のアラートと同じ "タイトル: メッセージ" 形式で返します
func (n Notification) String() string {
	return fmt.Sprintf("%s: %s", n.Title, n.Message)
}

// NewSuccessNotification は成功通知を作成します
func NewSuccessNotification(message string) Notification {
	return Notification{
		Type:      NotificationTypeSuccess,
		Title:     "Success",
		Message:   message,
		CreatedAt: time.Now(),
	}
}

// NewErrorNotification はエラー通知を作成します
func NewErrorNotification(message string) Notification {
	return Notification{
		Type:      NotificationTypeError,
		Title:     "Error",
		Message:   message,
		CreatedAt: time.Now(),
	}
}

// NewValidationNotification は入力チェックの通知を作成します
func NewValidationNotification(title, message string) Notification {
	return Notification{
		Type:      NotificationTypeValidation,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
}
