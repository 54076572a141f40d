package screen

import (
	"context"
	"errors"

	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
)

// ReservationForm は予約作成フォームの入力値です
// UserID は管理者が代理で予約する場合のみ使います
type ReservationForm struct {
	UserID       model.ID
	RestaurantID model.ID
	Date         string
	Time         string
	Persons      string
}

// ReservationComposer は予約作成画面です
type ReservationComposer struct {
	base

	Form ReservationForm

	restaurants []model.Restaurant
	users       []model.User
}

// NewReservationComposer は新しいReservationComposerを作成します
func NewReservationComposer(deps Deps) *ReservationComposer {
	return &ReservationComposer{base: newBase(deps)}
}

// Restaurants は予約先として選べるレストランを返します
func (c *ReservationComposer) Restaurants() []model.Restaurant {
	return append([]model.Restaurant(nil), c.restaurants...)
}

// Users は管理者が予約対象として選べるユーザーを返します
func (c *ReservationComposer) Users() []model.User {
	return append([]model.User(nil), c.users...)
}

// Mount はレストランの選択肢を読み込みます。管理者の場合はユーザーの選択肢も読み込みます
func (c *ReservationComposer) Mount(ctx context.Context) (err error) {
	ctx, seg := beginSubsegment(ctx, "ReservationComposer.Mount")
	defer func() { closeSegment(seg, err) }()

	s, err := c.activate()
	if err != nil {
		return err
	}
	addSessionMetadata(seg, s)

	var errs []error
	restaurants, err := c.deps.Restaurants.List(ctx)
	if err != nil {
		errs = append(errs, c.fail("List restaurants", "Failed to load restaurants", err))
	} else {
		c.restaurants = restaurants
		addMetadata(seg, "restaurant_count", len(restaurants))
	}

	if s.IsAdmin {
		users, err := c.deps.Users.List(ctx)
		if err != nil {
			errs = append(errs, c.fail("List users", "Failed to fetch users", err))
		} else {
			c.users = users
			addMetadata(seg, "user_count", len(users))
		}
	}
	return errors.Join(errs...)
}

// Submit は入力をチェックして予約を作成します
// チェックは必須項目、日付、時刻、人数の順で、最初に失敗した項目だけを通知します
func (c *ReservationComposer) Submit(ctx context.Context) (err error) {
	ctx, seg := beginSubsegment(ctx, "ReservationComposer.Submit")
	defer func() { closeSegment(seg, err) }()

	s, err := c.activate()
	if err != nil {
		return err
	}
	addSessionMetadata(seg, s)

	f := c.Form
	if f.RestaurantID.IsZero() || f.Date == "" || f.Time == "" || f.Persons == "" || (s.IsAdmin && f.UserID.IsZero()) {
		return c.invalid("Missing Info", "Please fill in all fields")
	}
	if !model.IsValidDate(f.Date) {
		return c.invalid("Invalid Date", "Date must be in DD/MM/YYYY format")
	}
	if !model.IsValidTime(f.Time) {
		return c.invalid("Invalid Time", "Time must be in HH:MM format (24h)")
	}
	persons, ok := model.ParsePeopleCount(f.Persons)
	if !ok {
		return c.invalid("Invalid People Count", "Number of persons must be a positive number")
	}

	userID := model.ID(s.UserID)
	if s.IsAdmin {
		userID = f.UserID
	}

	req := model.ReservationRequest{
		UserID:       userID,
		RestaurantID: f.RestaurantID,
		Date:         model.ToISODate(f.Date),
		Time:         f.Time,
		PeopleCount:  persons,
	}
	if err := c.deps.Reservations.Create(ctx, req); err != nil {
		return c.fail("Reservation", "Something went wrong", err)
	}

	addMetadata(seg, "restaurant_id", f.RestaurantID.String())
	addMetadata(seg, "people_count", persons)
	c.succeed("Reservation created!")
	c.Form = ReservationForm{}
	return nil
}
