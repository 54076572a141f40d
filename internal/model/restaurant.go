package model

// Restaurant はレストラン情報です
type Restaurant struct {
	RestaurantID ID     `json:"restaurant_id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	Description  string `json:"description"`
}

// RestaurantInput は管理者がレストランを登録するときの送信内容です
type RestaurantInput struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Complete は全項目が入力されているかを返します
func (in RestaurantInput) Complete() bool {
	return in.Name != "" && in.Location != "" && in.Description != ""
}

// RemoveRestaurant は restaurantID が一致するレストランを取り除いた一覧を返します
func RemoveRestaurant(restaurants []Restaurant, restaurantID ID) []Restaurant {
	kept := make([]Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if r.RestaurantID != restaurantID {
			kept = append(kept, r)
		}
	}
	return kept
}
