package screen

import (
	"context"
	"strconv"

	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
)

// ReservationEditForm は予約編集フォームの入力値です
type ReservationEditForm struct {
	Date         string
	Time         string
	PeopleCount  string
	UserID       model.ID
	RestaurantID model.ID
}

// ReservationEditor は予約編集画面です
type ReservationEditor struct {
	base

	Form ReservationEditForm

	reservationID model.ID
}

// NewReservationEditor は新しいReservationEditorを作成します
func NewReservationEditor(deps Deps) *ReservationEditor {
	return &ReservationEditor{base: newBase(deps)}
}

// Load は予約を1件取得してフォームに反映します
func (e *ReservationEditor) Load(ctx context.Context, reservationID model.ID) (err error) {
	ctx, seg := beginSubsegment(ctx, "ReservationEditor.Load")
	defer func() { closeSegment(seg, err) }()

	s, err := e.activate()
	if err != nil {
		return err
	}
	addSessionMetadata(seg, s)
	addMetadata(seg, "reservation_id", reservationID.String())

	r, err := e.deps.Reservations.Get(ctx, reservationID)
	if err != nil {
		return e.fail("Fetch reservation", "Failed to fetch reservation", err)
	}

	e.reservationID = reservationID
	e.Form = ReservationEditForm{
		Date:         r.DatePart(),
		Time:         r.Time,
		PeopleCount:  strconv.Itoa(r.PeopleCount),
		UserID:       r.UserID,
		RestaurantID: r.RestaurantID,
	}
	return nil
}

// Submit はフォームの内容で予約全体を更新し、前の画面に戻ります
// 日付と時刻の形式はチェックせずそのまま送信します
func (e *ReservationEditor) Submit(ctx context.Context) (err error) {
	ctx, seg := beginSubsegment(ctx, "ReservationEditor.Submit")
	defer func() { closeSegment(seg, err) }()

	s, err := e.activate()
	if err != nil {
		return err
	}
	addSessionMetadata(seg, s)
	if e.reservationID.IsZero() {
		return ErrNotLoaded
	}
	addMetadata(seg, "reservation_id", e.reservationID.String())

	update := model.ReservationUpdate{
		Date:         e.Form.Date,
		Time:         e.Form.Time,
		PeopleCount:  model.CoercePeopleCount(e.Form.PeopleCount),
		UserID:       e.Form.UserID,
		RestaurantID: e.Form.RestaurantID,
	}
	message, err := e.deps.Reservations.Update(ctx, e.reservationID, update)
	if err != nil {
		return e.fail("Update reservation", "Update failed", err)
	}
	if message == "" {
		message = "Reservation updated successfully!"
	}
	e.succeed(message)
	e.deps.Navigator.Back()
	return nil
}
