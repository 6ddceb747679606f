package repositories

import (
	"context"

	"sporton/internal/apperrors"
	"sporton/internal/gateway"
	"sporton/internal/models"
)

// TransactionRepository defines the interface for transaction data access.
// Transactions are never deleted.
type TransactionRepository interface {
	GetAll(ctx context.Context) ([]models.Transaction, error)
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	Create(ctx context.Context, tx *models.Transaction) error
	// Update loads the transaction, applies fn and writes it back as one unit.
	// Nothing is written when fn returns an error.
	Update(ctx context.Context, id string, fn func(*models.Transaction) error) (*models.Transaction, error)
}

// GatewayTransactionRepository stores transactions in the transactions collection.
type GatewayTransactionRepository struct {
	*entities[models.Transaction]
}

func NewGatewayTransactionRepository(gw gateway.Gateway) *GatewayTransactionRepository {
	return &GatewayTransactionRepository{
		entities: newEntities(gw, gateway.CollectionTransactions, "transaction",
			func(t *models.Transaction) *string { return &t.ID }),
	}
}

var _ TransactionRepository = (*GatewayTransactionRepository)(nil)

func (r *GatewayTransactionRepository) GetAll(ctx context.Context) ([]models.Transaction, error) {
	return r.all(ctx)
}

func (r *GatewayTransactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	return r.getByID(ctx, id)
}

func (r *GatewayTransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.create(ctx, tx)
}

func (r *GatewayTransactionRepository) Update(ctx context.Context, id string, fn func(*models.Transaction) error) (*models.Transaction, error) {
	var updated models.Transaction
	err := r.mutate(ctx, func(records []models.Transaction) ([]models.Transaction, error) {
		i := r.indexOf(records, id)
		if i < 0 {
			return nil, apperrors.NewNotFound(r.entity, id)
		}
		current := records[i]
		if err := fn(&current); err != nil {
			return nil, err
		}
		records[i] = current
		updated = current
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
