// Package screen は予約アプリの各画面の振る舞いを実装します
// 画面の描画は行わず、Navigator / Notifier / Confirmer を通じてUI層に結果を伝えます
package screen

import (
	"context"
	"time"

	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/repository"
)

// Navigator は画面遷移を担当します
type Navigator interface {
	ToLogin()
	Back()
	ToEditReservation(reservationID model.ID)
}

// Notifier はアラートなどでユーザーに通知します
type Notifier interface {
	Notify(n model.Notification)
}

// Confirmer は破壊的な操作の前にユーザーへ確認します
type Confirmer interface {
	Confirm(title, message string) bool
}

// SessionStore はプロセス全体で共有されるセッションです
type SessionStore interface {
	Current() model.Session
	Clear(ctx context.Context) error
}

// Deps は画面が利用する依存関係です
type Deps struct {
	Session      SessionStore
	Navigator    Navigator
	Notifier     Notifier
	Confirmer    Confirmer
	Restaurants  repository.RestaurantRepository
	Reservations repository.ReservationRepository
	Users        repository.UserRepository
	// Now が nil の場合は time.Now を使います
	Now          func() time.Time
}
