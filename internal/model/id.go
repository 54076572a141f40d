package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
)

// 先頭ゼロのない整数のみ。"007" のような識別子は文字列のまま送る
var numericID = regexp.MustCompile(`^-?(0|[1-9]\d*)$`)

// ID はAPIが返す識別子です
// サーバーは数値と文字列のどちらでも返すため、文字列として保持します
type ID string

// String は識別子を文字列で返します
func (id ID) String() string {
	return string(id)
}

// IsZero は識別子が未設定かどうかを返します
func (id ID) IsZero() bool {
	return id == ""
}

// MarshalJSON は数値として表現できる識別子をJSONの数値で出力します
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if numericID.MatchString(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON は数値・文字列・nullのいずれも受け付けます
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	*id = ID(n.String())
	return nil
}
