package repositories

import (
	"context"

	"sporton/internal/gateway"
	"sporton/internal/models"
)

// BankRepository defines the interface for payee bank account data access.
type BankRepository interface {
	GetAll(ctx context.Context) ([]models.BankAccount, error)
	GetByID(ctx context.Context, id string) (*models.BankAccount, error)
	Create(ctx context.Context, bank *models.BankAccount) error
	Update(ctx context.Context, bank *models.BankAccount) error
	Delete(ctx context.Context, id string) (*models.BankAccount, error)
}

// GatewayBankRepository stores bank accounts in the banks collection.
type GatewayBankRepository struct {
	*entities[models.BankAccount]
}

func NewGatewayBankRepository(gw gateway.Gateway) *GatewayBankRepository {
	return &GatewayBankRepository{
		entities: newEntities(gw, gateway.CollectionBanks, "bank account",
			func(b *models.BankAccount) *string { return &b.ID }),
	}
}

var _ BankRepository = (*GatewayBankRepository)(nil)

func (r *GatewayBankRepository) GetAll(ctx context.Context) ([]models.BankAccount, error) {
	return r.all(ctx)
}

func (r *GatewayBankRepository) GetByID(ctx context.Context, id string) (*models.BankAccount, error) {
	return r.getByID(ctx, id)
}

func (r *GatewayBankRepository) Create(ctx context.Context, bank *models.BankAccount) error {
	return r.create(ctx, bank)
}

func (r *GatewayBankRepository) Update(ctx context.Context, bank *models.BankAccount) error {
	return r.update(ctx, bank)
}

func (r *GatewayBankRepository) Delete(ctx context.Context, id string) (*models.BankAccount, error) {
	return r.delete(ctx, id)
}
