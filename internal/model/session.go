package model

// 端末ストレージに保存されるセッションのキー
const (
	StorageKeyUserID    = "userId"
	StorageKeyAuthToken = "authToken"
	StorageKeyIsAdmin   = "isAdmin"
)

// Session は端末に保存されたユーザーID・認証トークン・管理者フラグの組です
// 管理者フラグは画面表示の切り替えにのみ使い、サーバー側で再検証されます
type Session struct {
	UserID    string
	AuthToken string
	IsAdmin   bool
}

// Authenticated はユーザーIDと認証トークンが両方揃っているかを返します
// どちらか一方しかない状態は未認証として扱います
func (s Session) Authenticated() bool {
	return s.UserID != "" && s.AuthToken != ""
}

// AdminFlagValue は管理者フラグを保存用の文字列に変換します
func (s Session) AdminFlagValue() string {
	if s.IsAdmin {
		return "true"
	}
	return "false"
}

// ParseAdminFlag は保存された文字列が "true" の場合のみ管理者とみなします
func ParseAdminFlag(v string) bool {
	return v == "true"
}
