package model

// カートに入れた時点のメニュー情報スナップショット。
// カタログが後で変わっても明細は変わらない
type MenuItemSnapshot struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"` // 整数セント
	Category    string `json:"category"`
}

// カートの明細。(restaurant_name, item.name) が識別キーで、
// 同一キーの明細は常に1行（数量ゼロ以下の行は保存しない）
type CartLine struct {
	RestaurantName string           `json:"restaurant_name"`
	Item           MenuItemSnapshot `json:"item"`
	Quantity       int64            `json:"quantity"` // 1以上
}

// 明細の小計
func (l CartLine) LineTotal() int64 {
	return l.Item.Price * l.Quantity
}

// カート全体。Linesは追加順を保持する
type CartState struct {
	Lines []CartLine `json:"lines"`
}

// 数量の合計。毎回明細から再計算する（キャッシュしない）
func (s CartState) TotalItems() int64 {
	var n int64
	for _, l := range s.Lines {
		n += l.Quantity
	}
	return n
}

// 金額の合計（整数セント）。毎回明細から再計算する
func (s CartState) TotalAmount() int64 {
	var total int64
	for _, l := range s.Lines {
		total += l.LineTotal()
	}
	return total
}
