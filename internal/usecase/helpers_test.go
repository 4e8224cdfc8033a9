package usecase

import (
	"log/slog"
	"testing"
	"time"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newStore() *testhelpers.MemoryStore {
	store := testhelpers.NewMemoryStore()
	store.Now = func() time.Time { return fixedNow }
	return store
}

func testConfig() *config.Config {
	return &config.Config{
		Currency:          "usd",
		ChargeDescription: "Storefront order",
		OperationsEmail:   "ops@storefront.local",
	}
}

// seedCart puts quantity units of a new item into the open order of user.
func seedCart(t testing.TB, store *testhelpers.MemoryStore, cart *CartUseCase, userID int64, slug, price string, quantity int) model.Item {
	t.Helper()
	item := store.SeedItem(slug, slug, price)
	for range quantity {
		if _, err := cart.AddItem(bg(), userID, slug); err != nil {
			t.Fatalf("add %s: %v", slug, err)
		}
	}
	return item
}
