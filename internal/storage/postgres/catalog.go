package postgres

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

type itemRepository struct {
	q querier
}

type couponRepository struct {
	q querier
}

func (r *itemRepository) List(ctx context.Context) ([]model.Item, error) {
	const query = `SELECT id, title, slug, description, price_cents FROM items ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Item
	for rows.Next() {
		var (
			it    model.Item
			cents int64
		)
		if err := rows.Scan(&it.ID, &it.Title, &it.Slug, &it.Description, &cents); err != nil {
			return nil, err
		}
		it.Price = model.FromMinorUnits(cents)
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *itemRepository) GetBySlug(ctx context.Context, slug string) (*model.Item, error) {
	const query = `SELECT id, title, slug, description, price_cents FROM items WHERE slug=$1`
	var (
		it    model.Item
		cents int64
	)
	if err := r.q.QueryRow(ctx, query, slug).Scan(&it.ID, &it.Title, &it.Slug, &it.Description, &cents); err != nil {
		return nil, mapError(err)
	}
	it.Price = model.FromMinorUnits(cents)
	return &it, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	const query = `SELECT id, code, amount_cents FROM coupons WHERE code=$1`
	return r.scan(ctx, query, code)
}

func (r *couponRepository) GetByID(ctx context.Context, id int64) (*model.Coupon, error) {
	const query = `SELECT id, code, amount_cents FROM coupons WHERE id=$1`
	return r.scan(ctx, query, id)
}

func (r *couponRepository) scan(ctx context.Context, query string, arg any) (*model.Coupon, error) {
	var (
		c     model.Coupon
		cents int64
	)
	if err := r.q.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Code, &cents); err != nil {
		return nil, mapError(err)
	}
	c.Amount = model.FromMinorUnits(cents)
	return &c, nil
}
