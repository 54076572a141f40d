package screen

import (
	"log"
	"time"

	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/repository"
)

// SessionGuard は画面の表示前にセッションを確認します
// 管理者フラグはサーバーに問い合わせず、端末の値をそのまま信頼します
type SessionGuard struct {
	session   SessionStore
	navigator Navigator
}

// NewSessionGuard は新しいSessionGuardを作成します
func NewSessionGuard(session SessionStore, navigator Navigator) *SessionGuard {
	return &SessionGuard{session: session, navigator: navigator}
}

// Activate はユーザーIDと認証トークンが揃っていればセッションを返します
// どちらかが欠けている場合はログイン画面へ遷移し ErrNotAuthenticated を返します
func (g *SessionGuard) Activate() (model.Session, error) {
	s := g.session.Current()
	if !s.Authenticated() {
		g.navigator.ToLogin()
		return model.Session{}, ErrNotAuthenticated
	}
	return s, nil
}

// base は各画面に共通の処理です
type base struct {
	deps  Deps
	guard *SessionGuard
}

func newBase(deps Deps) base {
	return base{deps: deps, guard: NewSessionGuard(deps.Session, deps.Navigator)}
}

func (b *base) activate() (model.Session, error) {
	return b.guard.Activate()
}

func (b *base) activateAdmin() (model.Session, error) {
	s, err := b.guard.Activate()
	if err != nil {
		return s, err
	}
	if !s.IsAdmin {
		return s, ErrAdminOnly
	}
	return s, nil
}

func (b *base) now() time.Time {
	if b.deps.Now != nil {
		return b.deps.Now()
	}
	return time.Now()
}

// invalid は入力エラーを通知します
func (b *base) invalid(title, message string) error {
	b.deps.Notifier.Notify(model.NewValidationNotification(title, message))
	return &ValidationError{Title: title, Message: message}
}

// fail はサーバーのエラーメッセージがあればそれを、無ければ fallback を通知します
func (b *base) fail(op, fallback string, err error) error {
	message := fallback
	if m, ok := repository.ServerMessage(err); ok {
		message = m
	}
	log.Printf("%s error: %v", op, err)
	n := model.NewErrorNotification(message)
	b.deps.Notifier.Notify(n)
	return &ActionError{Title: n.Title, Message: message, Err: err}
}

func (b *base) succeed(message string) {
	b.deps.Notifier.Notify(model.NewSuccessNotification(message))
}
