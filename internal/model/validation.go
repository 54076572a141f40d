package model

import (
	"regexp"
	"strconv"
	"strings"
)

const isoDateLayout = "2006-01-02"

var (
	// DD/MM/YYYY 形式。暦として正しいかどうかは確認しない
	datePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	// 24時間表記の HH:MM
	timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	digits      = regexp.MustCompile(`^\d+$`)
	leadingInt  = regexp.MustCompile(`^[+-]?\d+`)
)

// IsValidDate は入力が DD/MM/YYYY 形式かどうかを返します
func IsValidDate(s string) bool {
	return datePattern.MatchString(s)
}

// IsValidTime は入力が24時間表記の HH:MM 形式かどうかを返します
func IsValidTime(s string) bool {
	return timePattern.MatchString(s)
}

// ParsePeopleCount は人数が正の整数の文字列であれば値を返します
func ParsePeopleCount(s string) (int, bool) {
	if !digits.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// ToISODate は DD/MM/YYYY を YYYY-MM-DD に並べ替えます
// "/" で分割して逆順に連結するだけなので 31/02/2024 もそのまま変換されます
func ToISODate(s string) string {
	parts := strings.Split(s, "/")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "-")
}

// CoercePeopleCount は parseInt と同様に先頭の整数部分を取り出します
// 数字が含まれない場合は nil を返します
func CoercePeopleCount(s string) *int {
	m := leadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}
