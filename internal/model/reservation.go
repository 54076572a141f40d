package model

import (
	"strings"
	"time"
)

// Reservation はAPIから返される予約情報です
// Name と RestaurantName は管理者向け一覧でのみ返される表示用の項目です
type Reservation struct {
	ReservationID  ID     `json:"reservation_id"`
	UserID         ID     `json:"user_id"`
	RestaurantID   ID     `json:"restaurant_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	PeopleCount    int    `json:"people_count"`
	Name           string `json:"name,omitempty"`
	RestaurantName string `json:"restaurant_name,omitempty"`
}

// ReservationRequest は予約作成時の送信内容です
type ReservationRequest struct {
	UserID       ID     `json:"user_id"`
	RestaurantID ID     `json:"restaurant_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PeopleCount  int    `json:"people_count"`
}

// ReservationUpdate は予約更新時に送信するレコード全体です
// PeopleCount が nil の場合は null として送信されます
type ReservationUpdate struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	PeopleCount  *int   `json:"people_count"`
	UserID       ID     `json:"user_id"`
	RestaurantID ID     `json:"restaurant_id"`
}

const invalidDate = "Invalid Date"

// ParseDate は予約日を時刻として解釈します
// RFC3339形式のタイムスタンプを優先し、YYYY-MM-DD の場合はUTCの0時とみなします
func (r Reservation) ParseDate() (time.Time, bool) {
	s := strings.TrimSpace(r.Date)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(isoDateLayout, s, time.UTC); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// IsPast は予約日が now より厳密に前であれば true を返します
// 予約の時刻フィールドは判定に使いません。now と同時刻の予約は未来扱いです
// 日付を解釈できない予約は過去扱いになりません
func (r Reservation) IsPast(now time.Time) bool {
	t, ok := r.ParseDate()
	if !ok {
		return false
	}
	return t.Before(now)
}

// DatePart はISOタイムスタンプから日付部分のみを取り出します
func (r Reservation) DatePart() string {
	date, _, _ := strings.Cut(r.Date, "T")
	return date
}

// LocalizedDate は一覧表示・検索で使う M/D/YYYY 形式の日付文字列を返します
func (r Reservation) LocalizedDate() string {
	t, ok := r.ParseDate()
	if !ok {
		return invalidDate
	}
	return t.UTC().Format("1/2/2006")
}

// Matches はユーザー名・レストラン名・日付文字列のいずれかに
// query が大文字小文字を区別せず含まれるかを判定します
func (r Reservation) Matches(query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.RestaurantName), q) ||
		strings.Contains(strings.ToLower(r.LocalizedDate()), q)
}

// FilterReservations は reservations 全体から query に一致する予約を抽出します
func FilterReservations(reservations []Reservation, query string) []Reservation {
	filtered := make([]Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.Matches(query) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
