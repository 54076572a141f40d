package screen

import (
	"context"
	"strings"

	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
)

// RestaurantDirectory はレストラン一覧画面です
// 管理者はレストランの登録と削除ができます
type RestaurantDirectory struct {
	base

	// NewRestaurant は管理者向け登録フォームの入力値です
	NewRestaurant model.RestaurantInput

	restaurants []model.Restaurant
	searching   bool
	query       string
}

// NewRestaurantDirectory は新しいRestaurantDirectoryを作成します
func NewRestaurantDirectory(deps Deps) *RestaurantDirectory {
	return &RestaurantDirectory{base: newBase(deps)}
}

// Restaurants は表示中のレストランを返します
func (d *RestaurantDirectory) Restaurants() []model.Restaurant {
	return append([]model.Restaurant(nil), d.restaurants...)
}

// Searching は検索結果を表示中かどうかを返します。true の間はリセットできます
func (d *RestaurantDirectory) Searching() bool {
	return d.searching
}

// Query は直近に成功した検索語を返します
func (d *RestaurantDirectory) Query() string {
	return d.query
}

// Mount は画面表示時にレストラン一覧を読み込みます
func (d *RestaurantDirectory) Mount(ctx context.Context) error {
	return d.List(ctx)
}

// List は全レストランを取得します。失敗した場合は一覧を空にします
func (d *RestaurantDirectory) List(ctx context.Context) (err error) {
	ctx, seg := beginSubsegment(ctx, "RestaurantDirectory.List")
	defer func() { closeSegment(seg, err) }()

	s, err := d.activate()
	if err != nil {
		return err
	}
	addSessionMetadata(seg, s)

	restaurants, err := d.deps.Restaurants.List(ctx)
	if err != nil {
		d.restaurants = nil
		return d.fail("List restaurants", "Failed to load restaurants", err)
	}
	d.restaurants = restaurants
	addMetadata(seg, "restaurant_count", len(restaurants))
	return nil
}

// Search はサーバー側で検索した結果に一覧を置き換えます
func (d *RestaurantDirectory) Search(ctx context.Context, query string) (err error) {
	ctx, seg := beginSubsegment(ctx, "RestaurantDirectory.Search")
	defer func() { closeSegment(seg, err) }()

	s, err := d.activate()
	if err != nil {
		return err
	}
	addSessionMetadata(seg, s)
	if strings.TrimSpace(query) == "" {
		return d.invalid("Search", "Please enter a search term.")
	}

	restaurants, err := d.deps.Restaurants.Search(ctx, query)
	if err != nil {
		return d.fail("Search restaurants", "Failed to search restaurants.", err)
	}
	d.restaurants = restaurants
	d.searching = true
	d.query = query
	addMetadata(seg, "restaurant_count", len(restaurants))
	return nil
}

// Reset は検索状態を解除して全件を取得し直します
func (d *RestaurantDirectory) Reset(ctx context.Context) (err error) {
	ctx, seg := beginSubsegment(ctx, "RestaurantDirectory.Reset")
	defer func() { closeSegment(seg, err) }()

	s, err := d.activate()
	if err != nil {
		return err
	}
	addSessionMetadata(seg, s)
	d.query = ""
	d.searching = false

	restaurants, err := d.deps.Restaurants.List(ctx)
	if err != nil {
		return d.fail("Reload restaurants", "Failed to reload restaurants.", err)
	}
	d.restaurants = restaurants
	addMetadata(seg, "restaurant_count", len(restaurants))
	return nil
}

// Create は NewRestaurant の内容でレストランを登録します。管理者のみ
// 成功すると返されたレストランを一覧の末尾に追加し、フォームを空にします
func (d *RestaurantDirectory) Create(ctx context.Context) (err error) {
	ctx, seg := beginSubsegment(ctx, "RestaurantDirectory.Create")
	defer func() { closeSegment(seg, err) }()

	s, err := d.activateAdmin()
	if err != nil {
		return err
	}
	addSessionMetadata(seg, s)
	if !d.NewRestaurant.Complete() {
		return d.invalid("Missing Info", "Please fill out all restaurant fields.")
	}

	created, err := d.deps.Restaurants.Create(ctx, d.NewRestaurant)
	if err != nil {
		return d.fail("Create restaurant", "Failed to create restaurant", err)
	}
	d.succeed("New restaurant added!")
	d.NewRestaurant = model.RestaurantInput{}
	d.restaurants = append(d.restaurants, *created)
	addMetadata(seg, "restaurant_count", len(d.restaurants))
	return nil
}

// Delete はレストランを削除し、一覧から restaurant_id が一致するものを取り除きます。管理者のみ
func (d *RestaurantDirectory) Delete(ctx context.Context, restaurantID model.ID) (err error) {
	ctx, seg := beginSubsegment(ctx, "RestaurantDirectory.Delete")
	defer func() { closeSegment(seg, err) }()

	s, err := d.activateAdmin()
	if err != nil {
		return err
	}
	addSessionMetadata(seg, s)
	addMetadata(seg, "restaurant_id", restaurantID.String())

	message, err := d.deps.Restaurants.Delete(ctx, restaurantID)
	if err != nil {
		return d.fail("Delete restaurant", "Failed to delete restaurant", err)
	}
	if message == "" {
		message = "Restaurant deleted"
	}
	d.succeed(message)
	d.restaurants = model.RemoveRestaurant(d.restaurants, restaurantID)
	addMetadata(seg, "restaurant_count", len(d.restaurants))
	return nil
}
