package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
)

// UserRepository はユーザーAPIへのアクセスを担当するインターフェースです
type UserRepository interface {
	Register(ctx context.Context, registration model.Registration) error
	Get(ctx context.Context, userID string) (*model.User, error)
	Update(ctx context.Context, userID string, profile model.UserProfile) error
	List(ctx context.Context) ([]model.User, error)
}

// UserRepositoryImpl はUserRepositoryの実装です
type UserRepositoryImpl struct {
	client *APIClient
}

// NewUserRepository は新しいUserRepositoryを作成します
func NewUserRepository(client *APIClient) *UserRepositoryImpl {
	return &UserRepositoryImpl{client: client}
}

// Register はユーザーを登録します。201 Created 以外は失敗です
func (r *UserRepositoryImpl) Register(ctx context.Context, registration model.Registration) (err error) {
	ctx, seg := beginSubsegment(ctx, "UserRepository.Register")
	defer func() { closeSegment(seg, err) }()

	return r.client.do(ctx, apiRequest{
		op:           "register user",
		method:       http.MethodPost,
		path:         "/users/register",
		body:         registration,
		expectStatus: http.StatusCreated,
	}, nil)
}

// Get はユーザーを1件取得します
// APIは1要素の配列を返すため先頭要素を返し、空の場合は ErrEmptyResult を返します
func (r *UserRepositoryImpl) Get(ctx context.Context, userID string) (user *model.User, err error) {
	ctx, seg := beginSubsegment(ctx, "UserRepository.Get")
	defer func() { closeSegment(seg, err) }()

	var users []model.User
	err = r.client.do(ctx, apiRequest{
		op:     "get user",
		method: http.MethodGet,
		path:   "/users/" + url.PathEscape(userID),
		auth:   true,
	}, &users)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user %s: %w", userID, ErrEmptyResult)
	}
	return &users[0], nil
}

// Update はユーザーの名前とメールアドレスを更新します
func (r *UserRepositoryImpl) Update(ctx context.Context, userID string, profile model.UserProfile) (err error) {
	ctx, seg := beginSubsegment(ctx, "UserRepository.Update")
	defer func() { closeSegment(seg, err) }()

	return r.client.do(ctx, apiRequest{
		op:     "update user",
		method: http.MethodPut,
		path:   "/users/" + url.PathEscape(userID),
		body:   profile,
		auth:   true,
	}, nil)
}

// List は全ユーザーを取得します。管理者が代理予約の対象を選ぶために使います
func (r *UserRepositoryImpl) List(ctx context.Context) (users []model.User, err error) {
	ctx, seg := beginSubsegment(ctx, "UserRepository.List")
	defer func() { closeSegment(seg, err) }()

	err = r.client.do(ctx, apiRequest{
		op:     "list users",
		method: http.MethodGet,
		path:   "/users",
		auth:   true,
	}, &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}
