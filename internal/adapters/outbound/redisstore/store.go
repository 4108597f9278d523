package redisstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/happyshop/happyshop/internal/domain"
)

// Store implements domain.InventoryStore on Redis hashes.
//
// Each product lives at <prefix>:product:<id> with the fields description,
// image, price and stock; <prefix>:products is the set of known ids.
type Store struct {
	client     redis.UniversalClient
	prefix     string
	maxRetries int
}

// Open parses url, connects and pings the server.
func Open(ctx context.Context, url, prefix string, maxRetries int) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, unavailable("ping", err)
	}
	return New(client, prefix, maxRetries), nil
}

// New wraps client. maxRetries bounds how often a purchase is retried
// after a concurrent writer invalidated its WATCH.
func New(client redis.UniversalClient, prefix string, maxRetries int) *Store {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Store{client: client, prefix: prefix, maxRetries: maxRetries}
}

func (s *Store) Close() error { return s.client.Close() }

func (s *Store) productKey(id string) string { return s.prefix + ":product:" + id }

func (s *Store) idsKey() string { return s.prefix + ":products" }

// Seed drops the hashes of the current catalogue and writes products in
// one MULTI block.
func (s *Store) Seed(ctx context.Context, products []domain.Product) error {
	if err := domain.ValidateCatalogue(products); err != nil {
		return err
	}

	old, err := s.client.SMembers(ctx, s.idsKey()).Result()
	if err != nil {
		return unavailable("seed", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range old {
			pipe.Del(ctx, s.productKey(id))
		}
		pipe.Del(ctx, s.idsKey())
		for _, p := range products {
			pipe.HSet(ctx, s.productKey(p.ID), map[string]any{
				"description": p.Description,
				"image":       p.ImageRef,
				"price":       p.UnitPrice.String(),
				"stock":       p.StockQuantity,
			})
			pipe.SAdd(ctx, s.idsKey(), p.ID)
		}
		return nil
	})
	if err != nil {
		return unavailable("seed", err)
	}
	return nil
}

func (s *Store) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	ids, err := s.client.SMembers(ctx, s.idsKey()).Result()
	if err != nil {
		return nil, unavailable("list ids", err)
	}
	slices.Sort(ids)

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, s.productKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, unavailable("load products", err)
	}

	var out []domain.Product
	for i, id := range ids {
		fields := cmds[i].Val()
		if len(fields) == 0 {
			continue
		}
		p, err := decodeProduct(id, fields)
		if err != nil {
			return nil, unavailable("decode "+id, err)
		}
		if p.Matches(keyword) {
			out = append(out, p)
		}
	}
	return out, nil
}

// PurchaseStocks watches every requested product, checks stock and
// decrements inside MULTI/EXEC. A lost race is retried up to maxRetries
// times before giving up.
func (s *Store) PurchaseStocks(ctx context.Context, req domain.GroupedRequest) ([]domain.Shortage, error) {
	if req.IsEmpty() {
		return nil, nil
	}

	keys := make([]string, 0, req.Len())
	for _, id := range req.IDs() {
		keys = append(keys, s.productKey(id))
	}

	var shortages []domain.Shortage
	purchase := func(tx *redis.Tx) error {
		shortages = nil
		available := make(map[string]domain.Product, req.Len())
		for _, id := range req.IDs() {
			vals, err := tx.HMGet(ctx, s.productKey(id), "description", "stock").Result()
			if err != nil {
				return err
			}
			if vals[1] == nil {
				continue
			}
			stock, err := strconv.Atoi(fmt.Sprint(vals[1]))
			if err != nil {
				return fmt.Errorf("product %s: bad stock: %w", id, err)
			}
			desc, _ := vals[0].(string)
			available[id] = domain.Product{ID: id, Description: desc, StockQuantity: stock}
		}

		if shortages = domain.CheckShortages(req, available); len(shortages) > 0 {
			return nil
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, it := range req.Items() {
				pipe.HIncrBy(ctx, s.productKey(it.ProductID), "stock", -int64(it.Quantity))
			}
			return nil
		})
		return err
	}

	var err error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		err = s.client.Watch(ctx, purchase, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return nil, unavailable("purchase", err)
	}
	return shortages, nil
}

func decodeProduct(id string, fields map[string]string) (domain.Product, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(fields["price"]))
	if err != nil {
		return domain.Product{}, fmt.Errorf("bad price: %w", err)
	}
	stock, err := strconv.Atoi(fields["stock"])
	if err != nil {
		return domain.Product{}, fmt.Errorf("bad stock: %w", err)
	}
	return domain.Product{
		ID:            id,
		Description:   fields["description"],
		ImageRef:      fields["image"],
		UnitPrice:     price,
		StockQuantity: stock,
	}, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: redis %s: %w", domain.ErrStoreUnavailable, op, err)
}
