package postgres

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

type addressRepository struct {
	q querier
}

type paymentRepository struct {
	q querier
}

func (r *addressRepository) Create(ctx context.Context, a *model.Address) error {
	const query = `INSERT INTO addresses (user_id, street_address, apartment_address, country, zip, is_default)
                   VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.q.QueryRow(ctx, query, a.UserID, a.StreetAddress, a.ApartmentAddress, a.Country, a.Zip, a.Default).Scan(&a.ID)
	return mapError(err)
}

func (r *addressRepository) ClearDefault(ctx context.Context, userID int64) error {
	const query = `UPDATE addresses SET is_default=FALSE WHERE user_id=$1 AND is_default`
	_, err := r.q.Exec(ctx, query, userID)
	return err
}

func (r *addressRepository) GetDefault(ctx context.Context, userID int64) (*model.Address, error) {
	const query = `SELECT id, user_id, street_address, apartment_address, country, zip, is_default
                   FROM addresses WHERE user_id=$1 AND is_default`
	return r.scan(ctx, query, userID)
}

func (r *addressRepository) GetByID(ctx context.Context, id int64) (*model.Address, error) {
	const query = `SELECT id, user_id, street_address, apartment_address, country, zip, is_default
                   FROM addresses WHERE id=$1`
	return r.scan(ctx, query, id)
}

func (r *addressRepository) scan(ctx context.Context, query string, arg any) (*model.Address, error) {
	var a model.Address
	err := r.q.QueryRow(ctx, query, arg).Scan(&a.ID, &a.UserID, &a.StreetAddress, &a.ApartmentAddress, &a.Country, &a.Zip, &a.Default)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *model.Payment) error {
	const query = `INSERT INTO payments (user_id, charge_id, amount_cents) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query, p.UserID, p.ChargeID, model.MinorUnits(p.Amount)).Scan(&p.ID, &p.Timestamp)
	return mapError(err)
}

func (r *paymentRepository) GetByChargeID(ctx context.Context, chargeID string) (*model.Payment, error) {
	const query = `SELECT id, user_id, charge_id, amount_cents, created_at FROM payments WHERE charge_id=$1`
	var (
		p     model.Payment
		cents int64
	)
	if err := r.q.QueryRow(ctx, query, chargeID).Scan(&p.ID, &p.UserID, &p.ChargeID, &cents, &p.Timestamp); err != nil {
		return nil, mapError(err)
	}
	p.Amount = model.FromMinorUnits(cents)
	return &p, nil
}
