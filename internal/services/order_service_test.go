package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"sporton/internal/apperrors"
	"sporton/internal/gateway"
	"sporton/internal/models"
	"sporton/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTransactionRepository is a mock implementation of repositories.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) GetAll(ctx context.Context) ([]models.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Update(ctx context.Context, id string, fn func(*models.Transaction) error) (*models.Transaction, error) {
	args := m.Called(ctx, id, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

// MockCartClearer is a mock implementation of services.CartClearer
type MockCartClearer struct {
	mock.Mock
}

func (m *MockCartClearer) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func validShipping() models.ShippingInfo {
	return models.ShippingInfo{
		FullName:   "John Doe",
		Email:      "john@example.com",
		Phone:      "081234567890",
		Address:    "Jl. Sudirman No. 1",
		City:       "Jakarta",
		Province:   "DKI Jakarta",
		PostalCode: "10220",
	}
}

// checkout snapshots the fixture cart and creates an order from it.
func checkout(t *testing.T, f *fixture) *models.Transaction {
	t.Helper()
	ctx := context.Background()
	lines, err := f.cart.Snapshot(ctx)
	require.NoError(t, err)
	tx, err := f.orders.CreateOrder(ctx, lines, validShipping())
	require.NoError(t, err)
	return tx
}

func cartLen(t *testing.T, f *fixture) int {
	t.Helper()
	items, err := f.cart.GetCart(context.Background())
	require.NoError(t, err)
	return len(items)
}

func TestOrderService_CheckoutTotals(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.cart.AddItem(ctx, "1", 1))
	require.NoError(t, f.cart.AddItem(ctx, "2", 2))

	tx := checkout(t, f)
	assert.Regexp(t, `^TRX-`, tx.ID)
	assert.Equal(t, models.StatusPending, tx.Status)
	assert.Equal(t, int64(1498000), tx.Subtotal)
	assert.Equal(t, int64(25000), tx.ShippingCost)
	assert.Equal(t, int64(1523000), tx.TotalAmount)
	assert.Equal(t, f.now, tx.CreatedAt)
	assert.Nil(t, tx.BankInfo)

	// The cart survives until the order is approved.
	assert.Equal(t, 2, cartLen(t, f))

	stored, err := f.orders.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.TotalAmount, stored.TotalAmount)
}

func TestOrderService_PriceSnapshotIsFrozen(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.cart.AddItem(ctx, "1", 2))
	tx := checkout(t, f)

	_, err := f.catalog.UpdateProduct(ctx, "1", models.ProductPatch{Price: int64Ptr(999000)})
	require.NoError(t, err)
	_, err = f.catalog.DeleteProduct(ctx, "1")
	require.NoError(t, err)

	stored, err := f.orders.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, int64(458000), stored.Items[0].UnitPrice)
	assert.Equal(t, int64(916000), stored.Subtotal)
}

func TestOrderService_CreateOrderRejectsBadInput(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.orders.CreateOrder(ctx, nil, validShipping())
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)

	shipping := validShipping()
	shipping.Email = "not-an-email"
	shipping.City = "   "
	_, err = f.orders.CreateOrder(ctx, []models.OrderLine{{ProductID: "1", Quantity: 0, UnitPrice: 458000}}, shipping)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Violations["email"])
	assert.Equal(t, "required", verr.Violations["city"])
	assert.Equal(t, "gte", verr.Violations["items[0].quantity"])

	txs, err := f.orders.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestOrderService_AttachPayment(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.cart.AddItem(ctx, "3", 1))
	tx := checkout(t, f)

	paid, err := f.orders.AttachPayment(ctx, tx.ID, "bank2", services.PaymentProof{Filename: "receipt.png", Data: pngProof})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, paid.Status)
	assert.Regexp(t, `^proof_.+\.png$`, paid.PaymentProof)
	require.NotNil(t, paid.BankInfo)
	assert.Equal(t, "Mandiri", paid.BankInfo.BankName)
	assert.Equal(t, "0987654321", paid.BankInfo.AccountNumber)
	assert.Equal(t, f.now, paid.BankInfo.UploadedAt)

	stored, err := gateway.NewBlobStore(f.slots).Load(ctx, paid.PaymentProof)
	require.NoError(t, err)
	assert.Equal(t, pngProof, stored)

	// Editing the bank later does not change the copy on the transaction.
	_, err = f.bankSvc.UpdateBank(ctx, "bank2", models.BankAccountPatch{BankName: strPtr("Bank Mandiri")})
	require.NoError(t, err)
	got, err := f.orders.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mandiri", got.BankInfo.BankName)
}

func TestOrderService_AttachPaymentValidation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.cart.AddItem(ctx, "3", 1))
	tx := checkout(t, f)

	cases := []struct {
		name   string
		bankID string
		proof  []byte
		field  string
		reason string
	}{
		{"missing bank", "", pngProof, "bankId", "required"},
		{"missing proof", "bank1", nil, "proof", "required"},
		{"not an image", "bank1", []byte("%PDF-1.4 receipt"), "proof", "not_an_image"},
		{"too large", "bank1", append(append([]byte{}, pngProof...), make([]byte, services.DefaultMaxProofBytes)...), "proof", "too_large"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.orders.AttachPayment(ctx, tx.ID, tc.bankID, services.PaymentProof{Data: tc.proof})
			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.reason, verr.Violations[tc.field])
		})
	}

	_, err := f.orders.AttachPayment(ctx, tx.ID, "bank9", services.PaymentProof{Data: pngProof})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	_, err = f.orders.AttachPayment(ctx, "TRX-MISSING", "bank1", services.PaymentProof{Data: pngProof})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	got, err := f.orders.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.False(t, got.HasPayment())
}

func TestOrderService_ApproveClearsCart(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("Publish", services.EventOrderCreated, mock.Anything).Return(nil).Once()
	publisher.On("Publish", services.EventOrderApproved, mock.Anything).Return(nil).Once()

	f := newFixture(t, publisher)
	ctx := context.Background()
	require.NoError(t, f.cart.AddItem(ctx, "1", 1))
	tx := checkout(t, f)

	approved, err := f.orders.Approve(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	assert.Equal(t, 0, cartLen(t, f))

	// Terminal: a second decision is refused and nothing changes.
	_, err = f.orders.Approve(ctx, tx.ID)
	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
	_, err = f.orders.Reject(ctx, tx.ID, "too late")
	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
	_, err = f.orders.AttachPayment(ctx, tx.ID, "bank1", services.PaymentProof{Data: pngProof})
	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))

	got, err := f.orders.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.False(t, got.HasPayment())

	publisher.AssertExpectations(t)
	var event services.OrderEvent
	body := publisher.Calls[1].Arguments.Get(1).([]byte)
	require.NoError(t, json.Unmarshal(body, &event))
	assert.Equal(t, tx.ID, event.TransactionID)
	assert.Equal(t, models.StatusApproved, event.Status)
}

func TestOrderService_RejectLeavesCart(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.cart.AddItem(ctx, "1", 1))
	tx := checkout(t, f)

	_, err := f.orders.Reject(ctx, tx.ID, "   ")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	rejected, err := f.orders.Reject(ctx, tx.ID, " transfer amount does not match ")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	assert.Equal(t, "transfer amount does not match", rejected.RejectionReason)
	require.NotNil(t, rejected.RejectedAt)
	assert.Equal(t, 1, cartLen(t, f))

	_, err = f.orders.Approve(ctx, tx.ID)
	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))

	_, err = f.orders.Reject(ctx, "TRX-MISSING", "reason")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestOrderService_PublishFailureIsNotFatal(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	f := newFixture(t, publisher)
	ctx := context.Background()
	require.NoError(t, f.cart.AddItem(ctx, "1", 1))
	tx := checkout(t, f)

	_, err := f.orders.Approve(ctx, tx.ID)
	require.NoError(t, err)
	publisher.AssertNumberOfCalls(t, "Publish", 2)
}

func TestOrderService_ApproveReportsCartFailure(t *testing.T) {
	txRepo := new(MockTransactionRepository)
	cart := new(MockCartClearer)
	approved := &models.Transaction{ID: "TRX-1", Status: models.StatusApproved}
	txRepo.On("Update", mock.Anything, "TRX-1", mock.Anything).Return(approved, nil).Once()
	cart.On("Clear", mock.Anything).Return(&apperrors.StorageError{Op: "write", Collection: "cart", Err: errors.New("disk full")}).Once()

	orders := services.NewOrderService(txRepo, nil, cart, nil, nil, services.OrderConfig{})
	_, err := orders.Approve(context.Background(), "TRX-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "approved but cart was not cleared")
	assert.Equal(t, apperrors.KindStorage, apperrors.KindOf(err))
	txRepo.AssertExpectations(t)
	cart.AssertExpectations(t)
}

func TestOrderService_StorageErrorsPropagate(t *testing.T) {
	txRepo := new(MockTransactionRepository)
	storageErr := &apperrors.StorageError{Op: "read", Collection: "transactions", Err: errors.New("connection refused")}
	txRepo.On("GetAll", mock.Anything).Return(nil, storageErr).Once()
	txRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Transaction")).Return(storageErr).Once()

	orders := services.NewOrderService(txRepo, nil, nil, nil, nil, services.OrderConfig{ShippingCost: services.DefaultShippingCost})

	_, err := orders.ListAll(context.Background())
	assert.Equal(t, apperrors.KindStorage, apperrors.KindOf(err))

	_, err = orders.CreateOrder(context.Background(), []models.OrderLine{{ProductID: "1", Quantity: 1, UnitPrice: 458000}}, validShipping())
	assert.Equal(t, apperrors.KindStorage, apperrors.KindOf(err))
	txRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrderRejectsOverflow(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	cases := []struct {
		name  string
		lines []models.OrderLine
		field string
	}{
		{"line amount", []models.OrderLine{{ProductID: "1", Quantity: 3, UnitPrice: math.MaxInt64 / 2}}, "totalAmount"},
		{"subtotal", []models.OrderLine{
			{ProductID: "1", Quantity: 1, UnitPrice: math.MaxInt64/2 + 1},
			{ProductID: "2", Quantity: 1, UnitPrice: math.MaxInt64/2 + 1},
		}, "totalAmount"},
		{"shipping", []models.OrderLine{{ProductID: "1", Quantity: 1, UnitPrice: math.MaxInt64 - 1}}, "totalAmount"},
		{"quantity ceiling", []models.OrderLine{{ProductID: "1", Quantity: models.MaxLineQuantity + 1, UnitPrice: 458000}}, "items[0].quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.orders.CreateOrder(ctx, tc.lines, validShipping())
			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Violations, tc.field)
		})
	}

	txs, err := f.orders.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestOrderService_ReattachReplacesPayment(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	blobs := gateway.NewBlobStore(f.slots)
	require.NoError(t, f.cart.AddItem(ctx, "3", 1))
	tx := checkout(t, f)

	first, err := f.orders.AttachPayment(ctx, tx.ID, "bank1", services.PaymentProof{Data: pngProof})
	require.NoError(t, err)
	f.now = f.now.Add(time.Hour)
	second, err := f.orders.AttachPayment(ctx, tx.ID, "bank3", services.PaymentProof{Data: pngProof})
	require.NoError(t, err)

	assert.NotEqual(t, first.PaymentProof, second.PaymentProof)
	assert.Equal(t, "bank3", second.BankInfo.BankID)
	assert.Equal(t, "BNI", second.BankInfo.BankName)
	assert.Equal(t, f.now, second.BankInfo.UploadedAt)
	assert.Equal(t, models.StatusPending, second.Status)

	stored, err := f.orders.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, second.PaymentProof, stored.PaymentProof)
	assert.Equal(t, second.BankInfo, stored.BankInfo)

	// The superseded proof is gone; the current one is still served.
	_, err = blobs.Load(ctx, first.PaymentProof)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	_, err = blobs.Load(ctx, second.PaymentProof)
	assert.NoError(t, err)
}

func TestOrderService_AttachAfterApproveKeepsPayment(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.cart.AddItem(ctx, "2", 1))
	tx := checkout(t, f)

	paid, err := f.orders.AttachPayment(ctx, tx.ID, "bank1", services.PaymentProof{Data: pngProof})
	require.NoError(t, err)
	_, err = f.orders.Approve(ctx, tx.ID)
	require.NoError(t, err)

	f.now = f.now.Add(time.Hour)
	_, err = f.orders.AttachPayment(ctx, tx.ID, "bank2", services.PaymentProof{Data: pngProof})
	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))

	got, err := f.orders.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.Equal(t, paid.PaymentProof, got.PaymentProof)
	assert.Equal(t, paid.BankInfo, got.BankInfo)

	_, err = gateway.NewBlobStore(f.slots).Load(ctx, paid.PaymentProof)
	assert.NoError(t, err)
}

func TestOrderService_AttachPaymentWriteFailureRemovesNewProof(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	blobs := gateway.NewBlobStore(f.slots)

	pending := &models.Transaction{ID: "TRX-1", Status: models.StatusPending}
	storageErr := &apperrors.StorageError{Op: "write", Collection: "transactions", Err: errors.New("disk full")}
	txRepo := new(MockTransactionRepository)
	txRepo.On("Update", mock.Anything, "TRX-1", mock.Anything).
		Run(func(args mock.Arguments) {
			fn := args.Get(2).(func(*models.Transaction) error)
			require.NoError(t, fn(pending))
		}).
		Return(nil, storageErr).Once()

	orders := services.NewOrderService(txRepo, f.banks, f.cart, blobs, nil, services.OrderConfig{})
	_, err := orders.AttachPayment(ctx, "TRX-1", "bank1", services.PaymentProof{Data: pngProof})
	assert.Equal(t, apperrors.KindStorage, apperrors.KindOf(err))

	require.NotEmpty(t, pending.PaymentProof)
	_, err = blobs.Load(ctx, pending.PaymentProof)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	txRepo.AssertExpectations(t)
}
