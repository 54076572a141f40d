package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
)

// RestaurantRepository はレストランAPIへのアクセスを担当するインターフェースです
type RestaurantRepository interface {
	List(ctx context.Context) ([]model.Restaurant, error)
	Search(ctx context.Context, query string) ([]model.Restaurant, error)
	Create(ctx context.Context, input model.RestaurantInput) (*model.Restaurant, error)
	Delete(ctx context.Context, restaurantID model.ID) (string, error)
}

// RestaurantRepositoryImpl はRestaurantRepositoryの実装です
type RestaurantRepositoryImpl struct {
	client *APIClient
}

// NewRestaurantRepository は新しいRestaurantRepositoryを作成します
func NewRestaurantRepository(client *APIClient) *RestaurantRepositoryImpl {
	return &RestaurantRepositoryImpl{client: client}
}

// List は全レストランを取得します。認証は不要です
func (r *RestaurantRepositoryImpl) List(ctx context.Context) (restaurants []model.Restaurant, err error) {
	ctx, seg := beginSubsegment(ctx, "RestaurantRepository.List")
	defer func() { closeSegment(seg, err) }()

	err = r.client.do(ctx, apiRequest{
		op:     "list restaurants",
		method: http.MethodGet,
		path:   "/restaurants",
	}, &restaurants)
	if err != nil {
		return nil, err
	}
	addMetadata(seg, "restaurant_count", len(restaurants))
	return restaurants, nil
}

// Search はサーバー側の部分一致検索でレストランを取得します
func (r *RestaurantRepositoryImpl) Search(ctx context.Context, query string) (restaurants []model.Restaurant, err error) {
	ctx, seg := beginSubsegment(ctx, "RestaurantRepository.Search")
	defer func() { closeSegment(seg, err) }()

	err = r.client.do(ctx, apiRequest{
		op:     "search restaurants",
		method: http.MethodGet,
		path:   "/restaurants/search",
		query:  url.Values{"q": []string{query}},
	}, &restaurants)
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

// Create はレストランを登録し、登録されたレコードを返します。管理者のみ
func (r *RestaurantRepositoryImpl) Create(ctx context.Context, input model.RestaurantInput) (restaurant *model.Restaurant, err error) {
	ctx, seg := beginSubsegment(ctx, "RestaurantRepository.Create")
	defer func() { closeSegment(seg, err) }()

	var created model.Restaurant
	err = r.client.do(ctx, apiRequest{
		op:     "create restaurant",
		method: http.MethodPost,
		path:   "/restaurants",
		body:   input,
		auth:   true,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete はレストランを削除し、サーバーのメッセージを返します。管理者のみ
func (r *RestaurantRepositoryImpl) Delete(ctx context.Context, restaurantID model.ID) (message string, err error) {
	ctx, seg := beginSubsegment(ctx, "RestaurantRepository.Delete")
	defer func() { closeSegment(seg, err) }()

	var resp messageResponse
	err = r.client.do(ctx, apiRequest{
		op:     "delete restaurant",
		method: http.MethodDelete,
		path:   "/restaurants/" + url.PathEscape(restaurantID.String()),
		auth:   true,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
