package screen

import (
	"context"
	"log"
)

// Logout は端末のセッションを消去してログイン画面へ戻ります
// サーバー側のセッション無効化は行いません
type Logout struct {
	session   SessionStore
	navigator Navigator
}

// NewLogout は新しいLogoutを作成します
func NewLogout(deps Deps) *Logout {
	return &Logout{session: deps.Session, navigator: deps.Navigator}
}

// Run は消去に失敗した場合もログイン画面へ遷移し、エラーを返します
func (l *Logout) Run(ctx context.Context) (err error) {
	ctx, seg := beginSubsegment(ctx, "Logout.Run")
	defer func() { closeSegment(seg, err) }()

	err = l.session.Clear(ctx)
	if err != nil {
		log.Printf("Logout error: %v", err)
	}
	l.navigator.ToLogin()
	return err
}
