package services

import (
	"context"
	"fmt"
	"strings"

	"sporton/internal/models"
	"sporton/internal/repositories"
)

// BankService manages the payee bank accounts offered for manual transfer.
type BankService struct {
	repo repositories.BankRepository
}

func NewBankService(repo repositories.BankRepository) *BankService {
	return &BankService{repo: repo}
}

func (s *BankService) ListBanks(ctx context.Context) ([]models.BankAccount, error) {
	return s.repo.GetAll(ctx)
}

func (s *BankService) GetBank(ctx context.Context, id string) (*models.BankAccount, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BankService) CreateBank(ctx context.Context, bank models.BankAccount) (*models.BankAccount, error) {
	normalizeBank(&bank)
	if err := checkStruct(bank); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &bank); err != nil {
		return nil, fmt.Errorf("failed to create bank account: %w", err)
	}
	return &bank, nil
}

func (s *BankService) UpdateBank(ctx context.Context, id string, patch models.BankAccountPatch) (*models.BankAccount, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := patch.Apply(*current)
	updated.ID = current.ID
	normalizeBank(&updated)
	if err := checkStruct(updated); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update bank account %s: %w", id, err)
	}
	return &updated, nil
}

// DeleteBank removes a bank account. Transactions keep their own copy of the bank details.
func (s *BankService) DeleteBank(ctx context.Context, id string) (*models.BankAccount, error) {
	return s.repo.Delete(ctx, id)
}

func normalizeBank(b *models.BankAccount) {
	b.BankName = strings.TrimSpace(b.BankName)
	b.AccountNumber = strings.TrimSpace(b.AccountNumber)
	b.AccountHolder = strings.TrimSpace(b.AccountHolder)
}
