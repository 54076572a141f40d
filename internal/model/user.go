package model

import "encoding/json"

// User はユーザー情報です
// 一覧APIは user_id と id のどちらかで識別子を返します
type User struct {
	UserID ID     `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// UnmarshalJSON は user_id が無い場合に id を識別子として使います
func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		UserID ID     `json:"user_id"`
		ID     ID     `json:"id"`
		Name   string `json:"name"`
		Email  string `json:"email"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	u.UserID = raw.UserID
	if u.UserID.IsZero() {
		u.UserID = raw.ID
	}
	u.Name = raw.Name
	u.Email = raw.Email
	return nil
}

// UserProfile はプロフィール設定画面で更新する項目です
type UserProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Registration は新規登録画面の送信内容です
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Complete は全項目が入力されているかを返します
func (r Registration) Complete() bool {
	return r.Name != "" && r.Email != "" && r.Password != ""
}
