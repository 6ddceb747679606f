package services_test

import (
	"context"
	"testing"
	"time"

	"sporton/internal/gateway"
	"sporton/internal/repositories"
	"sporton/internal/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// pngProof is the smallest byte sequence mimetype detects as image/png.
var pngProof = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

type fixture struct {
	slots      *gateway.MemorySlots
	gw         *gateway.SlotGateway
	products   *repositories.GatewayProductRepository
	categories *repositories.GatewayCategoryRepository
	banks      *repositories.GatewayBankRepository
	txs        *repositories.GatewayTransactionRepository
	catalog    *services.CatalogService
	cart       *services.CartService
	bankSvc    *services.BankService
	orders     *services.OrderService
	now        time.Time
}

// newFixture wires every service over a seeded in-memory gateway.
func newFixture(t *testing.T, publisher services.EventPublisher) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		slots: gateway.NewMemorySlots(),
		now:   time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
	f.gw = gateway.NewSlotGateway(f.slots)
	require.NoError(t, gateway.Seed(ctx, f.gw, gateway.DefaultSeed()))

	f.products = repositories.NewGatewayProductRepository(f.gw)
	f.categories = repositories.NewGatewayCategoryRepository(f.gw)
	f.banks = repositories.NewGatewayBankRepository(f.gw)
	f.txs = repositories.NewGatewayTransactionRepository(f.gw)

	f.catalog = services.NewCatalogService(f.products, f.categories)
	f.cart = services.NewCartService(repositories.NewGatewayCartRepository(f.gw), f.products)
	f.bankSvc = services.NewBankService(f.banks)
	f.orders = services.NewOrderService(f.txs, f.banks, f.cart, gateway.NewBlobStore(f.slots), publisher, services.OrderConfig{
		ShippingCost: services.DefaultShippingCost,
		Now:          func() time.Time { return f.now },
	})
	return f
}
