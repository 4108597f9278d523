package redisstore_test

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happyshop/happyshop/internal/adapters/outbound/redisstore"
	"github.com/happyshop/happyshop/internal/domain"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redisstore.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s := redisstore.New(client, "test", 50)
	require.NoError(t, s.Seed(context.Background(), []domain.Product{
		{ID: "0002", Description: "DAB Radio", ImageRef: "0002.jpg", UnitPrice: decimal.RequireFromString("29.99"), StockQuantity: 10},
		{ID: "0001", Description: "40 inch TV", ImageRef: "0001.jpg", UnitPrice: decimal.RequireFromString("269.00"), StockQuantity: 2},
	}))
	return mr, s
}

func hstock(t *testing.T, mr *miniredis.Miniredis, id string) string {
	t.Helper()
	return mr.HGet("test:product:"+id, "stock")
}

func TestSeed_WritesHashes(t *testing.T) {
	mr, _ := setupTestRedis(t)

	assert.Equal(t, "40 inch TV", mr.HGet("test:product:0001", "description"))
	assert.Equal(t, "269", mr.HGet("test:product:0001", "price"))
	assert.Equal(t, "2", hstock(t, mr, "0001"))

	members, err := mr.Members("test:products")
	require.NoError(t, err)
	assert.Equal(t, []string{"0001", "0002"}, members)
}

func TestSeed_ReplacesCatalogue(t *testing.T) {
	mr, s := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, []domain.Product{
		{ID: "0003", Description: "Toaster", UnitPrice: decimal.RequireFromString("19.99"), StockQuantity: 4},
	}))

	members, err := mr.Members("test:products")
	require.NoError(t, err)
	assert.Equal(t, []string{"0003"}, members)
	assert.False(t, mr.Exists("test:product:0001"))
	assert.False(t, mr.Exists("test:product:0002"))

	all, err := s.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Toaster", all[0].Description)
}

func TestSeed_RejectsDuplicateIDs(t *testing.T) {
	mr, s := setupTestRedis(t)

	err := s.Seed(context.Background(), []domain.Product{
		{ID: "0003", StockQuantity: 1},
		{ID: "0003", StockQuantity: 2},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
	assert.Equal(t, "2", hstock(t, mr, "0001"))
}

func TestSearch(t *testing.T) {
	_, s := setupTestRedis(t)
	ctx := context.Background()

	all, err := s.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "0001", all[0].ID)
	assert.Equal(t, "269.00", all[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "0001.jpg", all[0].ImageRef)

	got, err := s.Search(ctx, "radio")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].StockQuantity)
}

func TestSearch_ServerDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	s := redisstore.New(client, "test", 0)

	_, err := s.Search(context.Background(), "tv")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = s.PurchaseStocks(context.Background(), domain.NewGroupedRequest(domain.RequestItem{ProductID: "0001", Quantity: 1}))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestPurchaseStocks_Commits(t *testing.T) {
	mr, s := setupTestRedis(t)
	req := domain.NewGroupedRequest(
		domain.RequestItem{ProductID: "0001", Quantity: 2},
		domain.RequestItem{ProductID: "0002", Quantity: 4},
	)

	shortages, err := s.PurchaseStocks(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, shortages)
	assert.Equal(t, "0", hstock(t, mr, "0001"))
	assert.Equal(t, "6", hstock(t, mr, "0002"))
}

func TestPurchaseStocks_ShortageChangesNothing(t *testing.T) {
	mr, s := setupTestRedis(t)
	req := domain.NewGroupedRequest(
		domain.RequestItem{ProductID: "0001", Quantity: 5},
		domain.RequestItem{ProductID: "0002", Quantity: 1},
		domain.RequestItem{ProductID: "0099", Quantity: 1},
	)

	shortages, err := s.PurchaseStocks(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []domain.Shortage{
		{ProductID: "0001", Description: "40 inch TV", Available: 2, Requested: 5},
		{ProductID: "0099", Available: 0, Requested: 1},
	}, shortages)
	assert.Equal(t, "2", hstock(t, mr, "0001"))
	assert.Equal(t, "10", hstock(t, mr, "0002"))
}

func TestPurchaseStocks_ConcurrentNeverOversells(t *testing.T) {
	mr, s := setupTestRedis(t)
	req := domain.NewGroupedRequest(domain.RequestItem{ProductID: "0001", Quantity: 1})

	const buyers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		confirmed int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			shortages, err := s.PurchaseStocks(context.Background(), req)
			if err == nil && len(shortages) == 0 {
				mu.Lock()
				confirmed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.LessOrEqual(t, confirmed, 2)
	assert.Equal(t, strconv.Itoa(2-confirmed), hstock(t, mr, "0001"))
}
