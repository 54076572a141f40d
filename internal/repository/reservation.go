package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
)

type ReservationRepository interface {
	ListAll(ctx context.Context) ([]model.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]model.Reservation, error)
	Get(ctx context.Context, reservationID model.ID) (*model.Reservation, error)
	Create(ctx context.Context, req model.ReservationRequest) error
	Update(ctx context.Context, reservationID model.ID, update model.ReservationUpdate) (string, error)
	Delete(ctx context.Context, reservationID model.ID) (string, error)
}

type ReservationRepositoryImpl struct {
	client *APIClient
}

func NewReservationRepository(client *APIClient) *ReservationRepositoryImpl {
	return &ReservationRepositoryImpl{client: client}
}

// ListAll は全ユーザーの予約を取得します。管理者のみ
func (r *ReservationRepositoryImpl) ListAll(ctx context.Context) (reservations []model.Reservation, err error) {
	ctx, seg := beginSubsegment(ctx, "ReservationRepository.ListAll")
	defer func() { closeSegment(seg, err) }()

	err = r.client.do(ctx, apiRequest{
		op:     "list all reservations",
		method: http.MethodGet,
		path:   "/reservations",
		auth:   true,
	}, &reservations)
	if err != nil {
		return nil, err
	}
	addMetadata(seg, "reservation_count", len(reservations))
	return reservations, nil
}

// ListByUser は指定されたユーザーの予約を取得します
func (r *ReservationRepositoryImpl) ListByUser(ctx context.Context, userID string) (reservations []model.Reservation, err error) {
	ctx, seg := beginSubsegment(ctx, "ReservationRepository.ListByUser")
	defer func() { closeSegment(seg, err) }()

	err = r.client.do(ctx, apiRequest{
		op:     "list reservations",
		method: http.MethodGet,
		path:   "/reservations/" + url.PathEscape(userID),
		auth:   true,
	}, &reservations)
	if err != nil {
		return nil, err
	}
	addMetadata(seg, "reservation_count", len(reservations))
	return reservations, nil
}

// Get は予約を1件取得します
// APIは1要素の配列を返すため先頭要素を返し、空の場合は ErrEmptyResult を返します
func (r *ReservationRepositoryImpl) Get(ctx context.Context, reservationID model.ID) (reservation *model.Reservation, err error) {
	ctx, seg := beginSubsegment(ctx, "ReservationRepository.Get")
	defer func() { closeSegment(seg, err) }()

	var reservations []model.Reservation
	err = r.client.do(ctx, apiRequest{
		op:     "get reservation",
		method: http.MethodGet,
		path:   "/reservations/reservation/" + url.PathEscape(reservationID.String()),
		auth:   true,
	}, &reservations)
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, ErrEmptyResult)
	}
	return &reservations[0], nil
}

// Create は予約を作成します
func (r *ReservationRepositoryImpl) Create(ctx context.Context, req model.ReservationRequest) (err error) {
	ctx, seg := beginSubsegment(ctx, "ReservationRepository.Create")
	defer func() { closeSegment(seg, err) }()

	return r.client.do(ctx, apiRequest{
		op:     "create reservation",
		method: http.MethodPost,
		path:   "/reservations",
		body:   req,
		auth:   true,
	}, nil)
}

// Update は予約レコード全体を更新し、サーバーのメッセージを返します
func (r *ReservationRepositoryImpl) Update(ctx context.Context, reservationID model.ID, update model.ReservationUpdate) (message string, err error) {
	ctx, seg := beginSubsegment(ctx, "ReservationRepository.Update")
	defer func() { closeSegment(seg, err) }()

	var resp messageResponse
	err = r.client.do(ctx, apiRequest{
		op:     "update reservation",
		method: http.MethodPut,
		path:   "/reservations/reservation/" + url.PathEscape(reservationID.String()),
		body:   update,
		auth:   true,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Delete は予約を削除し、サーバーのメッセージを返します
func (r *ReservationRepositoryImpl) Delete(ctx context.Context, reservationID model.ID) (message string, err error) {
	ctx, seg := beginSubsegment(ctx, "ReservationRepository.Delete")
	defer func() { closeSegment(seg, err) }()

	var resp messageResponse
	err = r.client.do(ctx, apiRequest{
		op:     "delete reservation",
		method: http.MethodDelete,
		path:   "/reservations/reservation/" + url.PathEscape(reservationID.String()),
		auth:   true,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
