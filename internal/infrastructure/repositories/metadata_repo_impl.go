package repositories

import (
	"context"
	"fmt"

	"pay-router.backend/internal/domain/entities"
	domainerrors "pay-router.backend/internal/domain/errors"
	domainrepos "pay-router.backend/internal/domain/repositories"
)

type cardBINRepo struct {
	store domainrepos.RelationalStore[entities.CardBIN]
}

func NewCardBINRepository(store domainrepos.RelationalStore[entities.CardBIN]) domainrepos.CardBINRepository {
	return &cardBINRepo{store: store}
}

func (r *cardBINRepo) Save(ctx context.Context, bin entities.CardBIN) error {
	return r.store.Save(ctx, bin.BIN, bin)
}

func (r *cardBINRepo) FindByBIN(ctx context.Context, binPrefix string) (*entities.CardBIN, error) {
	bin, ok, err := r.store.FindByID(ctx, binPrefix)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return &bin, nil
}

func (r *cardBINRepo) ListAll(ctx context.Context) ([]entities.CardBIN, error) {
	return r.store.ListAll(ctx)
}

type interchangeFeeRepo struct {
	store domainrepos.RelationalStore[entities.InterchangeFee]
}

func NewInterchangeFeeRepository(store domainrepos.RelationalStore[entities.InterchangeFee]) domainrepos.InterchangeFeeRepository {
	return &interchangeFeeRepo{store: store}
}

func (r *interchangeFeeRepo) Save(ctx context.Context, fee entities.InterchangeFee) error {
	key := fmt.Sprintf("%s|%s|%s|%s", fee.Network, fee.CardType, fee.CardCategory, fee.Region)
	return r.store.Save(ctx, key, fee)
}

func (r *interchangeFeeRepo) ListAll(ctx context.Context) ([]entities.InterchangeFee, error) {
	return r.store.ListAll(ctx)
}
