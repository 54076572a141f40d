package screen

import (
	"context"

	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
)

// ReservationList は予約一覧画面です
// 管理者は全ユーザーの予約を表示し、絞り込みができます
type ReservationList struct {
	base

	all     []model.Reservation
	visible []model.Reservation
	query   string
}

// NewReservationList は新しいReservationListを作成します
func NewReservationList(deps Deps) *ReservationList {
	return &ReservationList{base: newBase(deps)}
}

// Reservations は絞り込み後の予約を返します
func (l *ReservationList) Reservations() []model.Reservation {
	return append([]model.Reservation(nil), l.visible...)
}

// Query は現在の絞り込み条件を返します
func (l *ReservationList) Query() string {
	return l.query
}

// IsPast は予約が過去のもので、編集・削除できないかを返します
func (l *ReservationList) IsPast(r model.Reservation) bool {
	return r.IsPast(l.now())
}

// Mount は画面表示時に予約一覧を読み込みます
func (l *ReservationList) Mount(ctx context.Context) error {
	return l.FetchAll(ctx)
}

// OnFocus は画面に戻るたびに一覧を取得し直します
func (l *ReservationList) OnFocus(ctx context.Context) error {
	return l.FetchAll(ctx)
}

// FetchAll は管理者なら全予約、それ以外は自分の予約を取得します
// 成功すると絞り込みは解除されます
func (l *ReservationList) FetchAll(ctx context.Context) (err error) {
	ctx, seg := beginSubsegment(ctx, "ReservationList.FetchAll")
	defer func() { closeSegment(seg, err) }()

	s, err := l.activate()
	if err != nil {
		return err
	}
	addSessionMetadata(seg, s)

	var reservations []model.Reservation
	if s.IsAdmin {
		reservations, err = l.deps.Reservations.ListAll(ctx)
	} else {
		reservations, err = l.deps.Reservations.ListByUser(ctx, s.UserID)
	}
	if err != nil {
		return l.fail("Fetch reservations", "Failed to fetch reservations", err)
	}

	l.all = reservations
	l.visible = reservations
	l.query = ""
	addMetadata(seg, "reservation_count", len(reservations))
	return nil
}

// Filter は名前・レストラン名・日付の部分一致で絞り込みます。管理者のみ
// 毎回取得済みの全件から計算し直します
func (l *ReservationList) Filter(query string) error {
	if _, err := l.activateAdmin(); err != nil {
		return err
	}
	l.query = query
	l.visible = model.FilterReservations(l.all, query)
	return nil
}

// Edit は予約の編集画面へ遷移します。過去の予約は ErrReadOnly です
func (l *ReservationList) Edit(reservationID model.ID) error {
	if _, err := l.activate(); err != nil {
		return err
	}
	if r, ok := l.find(reservationID); ok && l.IsPast(r) {
		return ErrReadOnly
	}
	l.deps.Navigator.ToEditReservation(reservationID)
	return nil
}

// Delete は確認ダイアログで承認された場合に予約を削除し、一覧を取得し直します
// キャンセルされた場合は false を返し、APIは呼び出しません
func (l *ReservationList) Delete(ctx context.Context, reservationID model.ID) (deleted bool, err error) {
	ctx, seg := beginSubsegment(ctx, "ReservationList.Delete")
	defer func() {
		addMetadata(seg, "deleted", deleted)
		closeSegment(seg, err)
	}()

	s, err := l.activate()
	if err != nil {
		return false, err
	}
	addSessionMetadata(seg, s)
	addMetadata(seg, "reservation_id", reservationID.String())
	if r, ok := l.find(reservationID); ok && l.IsPast(r) {
		return false, ErrReadOnly
	}
	if !l.deps.Confirmer.Confirm("Delete Reservation", "Are you sure you want to delete this reservation?") {
		return false, nil
	}

	message, err := l.deps.Reservations.Delete(ctx, reservationID)
	if err != nil {
		return false, l.fail("Delete reservation", "Failed to delete reservation", err)
	}
	if message == "" {
		message = "Reservation deleted"
	}
	l.succeed(message)
	return true, l.FetchAll(ctx)
}

func (l *ReservationList) find(reservationID model.ID) (model.Reservation, bool) {
	for _, r := range l.all {
		if r.ReservationID == reservationID {
			return r, true
		}
	}
	return model.Reservation{}, false
}
