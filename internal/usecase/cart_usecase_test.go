package usecase

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
)

// =====================
// Fake（sessionStorage相当のインメモリKV）
// =====================

type fakeSessionRepo struct {
	store   map[string]string
	saves   int
	deletes int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{store: map[string]string{}}
}

func (f *fakeSessionRepo) Load(_ context.Context, sessionID string) (string, error) {
	payload, ok := f.store[sessionID]
	if !ok {
		return "", repo.ErrNotFound
	}
	return payload, nil
}

func (f *fakeSessionRepo) Save(_ context.Context, sessionID string, payload string) error {
	f.saves++
	f.store[sessionID] = payload
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, sessionID string) error {
	f.deletes++
	delete(f.store, sessionID)
	return nil
}

func pasta() model.MenuItemSnapshot {
	return model.MenuItemSnapshot{Name: "Carbonara", Description: "pasta", Price: 1250, Category: "Mains"}
}

func salad() model.MenuItemSnapshot {
	return model.MenuItemSnapshot{Name: "Caesar Salad", Description: "salad", Price: 850, Category: "Starters"}
}

// =====================
// AddItem
// =====================

func TestCartUsecase_AddItem_SameIdentityMergesIntoOneLine(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUsecase(newFakeSessionRepo())

	//同じ(レストラン, 品名)を3回追加
	var out CartResponse
	var err error
	for i := 0; i < 3; i++ {
		out, err = uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: pasta()})
		assert.NoError(t, err)
	}

	assert.Len(t, out.Lines, 1)
	assert.Equal(t, int64(3), out.Lines[0].Quantity)
	assert.Equal(t, int64(3), out.TotalItems)
	assert.Equal(t, int64(3*1250), out.TotalAmount)
}

func TestCartUsecase_AddItem_NewLineAppendedInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUsecase(newFakeSessionRepo())

	_, err := uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: pasta()})
	assert.NoError(t, err)
	out, err := uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: salad()})
	assert.NoError(t, err)

	assert.Len(t, out.Lines, 2)
	assert.Equal(t, "Carbonara", out.Lines[0].Item.Name)
	assert.Equal(t, "Caesar Salad", out.Lines[1].Item.Name)
}

func TestCartUsecase_AddItem_SameNameDifferentRestaurantIsSeparateLine(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUsecase(newFakeSessionRepo())

	_, err := uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: pasta()})
	assert.NoError(t, err)
	out, err := uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Osteria", Item: pasta()})
	assert.NoError(t, err)

	assert.Len(t, out.Lines, 2)
}

func TestCartUsecase_AddItem_InvalidInput(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUsecase(newFakeSessionRepo())

	_, err := uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "", Item: pasta()})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

// =====================
// UpdateQuantity / RemoveItem
// =====================

func TestCartUsecase_UpdateQuantity_Overwrites(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUsecase(newFakeSessionRepo())

	_, _ = uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: pasta()})
	_, _ = uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: pasta()})

	out, err := uc.UpdateQuantity(ctx, "s1", UpdateQuantityInput{
		RestaurantName: "Trattoria", ItemName: "Carbonara", Quantity: 5,
	})
	assert.NoError(t, err)

	//加算ではなく上書き
	assert.Equal(t, int64(5), out.Lines[0].Quantity)
	assert.Equal(t, int64(5*1250), out.TotalAmount)
}

func TestCartUsecase_UpdateQuantity_ZeroAndNegativeBehaveAsRemove(t *testing.T) {
	ctx := context.Background()

	for _, qty := range []int64{0, -5} {
		uc := NewCartUsecase(newFakeSessionRepo())
		_, _ = uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: pasta()})

		out, err := uc.UpdateQuantity(ctx, "s1", UpdateQuantityInput{
			RestaurantName: "Trattoria", ItemName: "Carbonara", Quantity: qty,
		})
		assert.NoError(t, err)
		assert.Empty(t, out.Lines)
		assert.Equal(t, int64(0), out.TotalItems)
		assert.Equal(t, int64(0), out.TotalAmount)
	}
}

func TestCartUsecase_UpdateQuantity_NoMatchIsNoOp(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUsecase(newFakeSessionRepo())

	_, _ = uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: pasta()})

	out, err := uc.UpdateQuantity(ctx, "s1", UpdateQuantityInput{
		RestaurantName: "Trattoria", ItemName: "Nothing", Quantity: 7,
	})
	assert.NoError(t, err)
	assert.Len(t, out.Lines, 1)
	assert.Equal(t, int64(1), out.Lines[0].Quantity)
}

func TestCartUsecase_RemoveItem_DeletesOnlyMatchingLine(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUsecase(newFakeSessionRepo())

	_, _ = uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: pasta()})
	_, _ = uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: salad()})

	out, err := uc.RemoveItem(ctx, "s1", "Trattoria", "Carbonara")
	assert.NoError(t, err)
	assert.Len(t, out.Lines, 1)
	assert.Equal(t, "Caesar Salad", out.Lines[0].Item.Name)
	assert.Equal(t, int64(850), out.TotalAmount)
}

func TestCartUsecase_RemoveItem_NoMatchIsNoOp(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUsecase(newFakeSessionRepo())

	_, _ = uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: pasta()})

	out, err := uc.RemoveItem(ctx, "s1", "Trattoria", "Nothing")
	assert.NoError(t, err)
	assert.Len(t, out.Lines, 1)
}

// =====================
// 合計の不変条件
// =====================

func TestCartUsecase_TotalsAlwaysMatchLines(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUsecase(newFakeSessionRepo())

	check := func(out CartResponse) {
		var amount, count int64
		for _, l := range out.Lines {
			amount += l.Item.Price * l.Quantity
			count += l.Quantity
		}
		assert.Equal(t, amount, out.TotalAmount)
		assert.Equal(t, count, out.TotalItems)
	}

	out, _ := uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: pasta()})
	check(out)
	out, _ = uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: salad()})
	check(out)
	out, _ = uc.UpdateQuantity(ctx, "s1", UpdateQuantityInput{RestaurantName: "Trattoria", ItemName: "Carbonara", Quantity: 4})
	check(out)
	out, _ = uc.RemoveItem(ctx, "s1", "Trattoria", "Caesar Salad")
	check(out)
	out, _ = uc.ClearCart(ctx, "s1")
	check(out)
}

// =====================
// 永続化・復元
// =====================

func TestCartUsecase_SavesAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	fake := newFakeSessionRepo()
	uc := NewCartUsecase(fake)

	_, _ = uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: pasta()})
	_, _ = uc.UpdateQuantity(ctx, "s1", UpdateQuantityInput{RestaurantName: "Trattoria", ItemName: "Carbonara", Quantity: 2})
	_, _ = uc.RemoveItem(ctx, "s1", "Trattoria", "Carbonara")

	assert.Equal(t, 3, fake.saves)
}

func TestCartUsecase_RehydratesFromStore(t *testing.T) {
	ctx := context.Background()
	fake := newFakeSessionRepo()

	uc := NewCartUsecase(fake)
	_, _ = uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: pasta()})
	_, _ = uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: pasta()})

	//リロード相当：同じストアから別インスタンスで読む
	uc2 := NewCartUsecase(fake)
	out, err := uc2.GetCart(ctx, "s1")
	assert.NoError(t, err)
	assert.Len(t, out.Lines, 1)
	assert.Equal(t, int64(2), out.Lines[0].Quantity)
}

func TestCartUsecase_MissingEntryIsEmptyCart(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUsecase(newFakeSessionRepo())

	out, err := uc.GetCart(ctx, "unknown")
	assert.NoError(t, err)
	assert.Empty(t, out.Lines)
	assert.Equal(t, int64(0), out.TotalAmount)
}

func TestCartUsecase_CorruptedPayloadFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	fake := newFakeSessionRepo()
	fake.store["s1"] = "{not json"

	uc := NewCartUsecase(fake)
	out, err := uc.GetCart(ctx, "s1")
	assert.NoError(t, err)
	assert.Empty(t, out.Lines)
}

func TestCartUsecase_ClearCartDeletesPersistedEntry(t *testing.T) {
	ctx := context.Background()
	fake := newFakeSessionRepo()
	uc := NewCartUsecase(fake)

	_, _ = uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: pasta()})

	out, err := uc.ClearCart(ctx, "s1")
	assert.NoError(t, err)
	assert.Empty(t, out.Lines)
	assert.Equal(t, 1, fake.deletes)

	_, ok := fake.store["s1"]
	assert.False(t, ok)
}

// セッションごとに独立したカート
func TestCartUsecase_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUsecase(newFakeSessionRepo())

	_, _ = uc.AddItem(ctx, "s1", AddItemInput{RestaurantName: "Trattoria", Item: pasta()})

	out, err := uc.GetCart(ctx, "s2")
	assert.NoError(t, err)
	assert.Empty(t, out.Lines)
}
