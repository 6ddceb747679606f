package services_test

import (
	"testing"

	"sporton/internal/models"
	"sporton/internal/services"

	"github.com/stretchr/testify/assert"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{ID: "TRX-001", Status: models.StatusPending, TotalAmount: 483000, PaymentProof: "proof_a.png",
			ShippingInfo: models.ShippingInfo{FullName: "John Doe", Email: "john@example.com"}},
		{ID: "TRX-002", Status: models.StatusApproved, TotalAmount: 1523000,
			ShippingInfo: models.ShippingInfo{FullName: "Siti Rahma", Email: "siti@example.com"}},
		{ID: "TRX-003", Status: models.StatusRejected, TotalAmount: 405000,
			ShippingInfo: models.ShippingInfo{FullName: "Jane Doe", Email: "jane@example.com"}},
		{ID: "TRX-004", Status: models.StatusPending, TotalAmount: 545000,
			ShippingInfo: models.ShippingInfo{FullName: "Budi", Email: "budi@doe.id"}},
	}
}

func ids(txs []models.Transaction) []string {
	out := make([]string, 0, len(txs))
	for _, tx := range txs {
		out = append(out, tx.ID)
	}
	return out
}

func TestFilterTransactions(t *testing.T) {
	txs := sampleTransactions()

	cases := []struct {
		name   string
		filter services.TransactionFilter
		want   []string
	}{
		{"everything", services.TransactionFilter{}, []string{"TRX-001", "TRX-002", "TRX-003", "TRX-004"}},
		{"all status", services.TransactionFilter{Status: services.StatusAll}, []string{"TRX-001", "TRX-002", "TRX-003", "TRX-004"}},
		{"pending", services.TransactionFilter{Status: "pending"}, []string{"TRX-001", "TRX-004"}},
		{"search name and email", services.TransactionFilter{SearchText: "DOE"}, []string{"TRX-001", "TRX-003", "TRX-004"}},
		{"search and status", services.TransactionFilter{Status: "pending", SearchText: "doe"}, []string{"TRX-001", "TRX-004"}},
		{"search id", services.TransactionFilter{SearchText: "trx-002"}, []string{"TRX-002"}},
		{"no match", services.TransactionFilter{SearchText: "nobody"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(services.FilterTransactions(txs, tc.filter)))
		})
	}
}

func TestCountByStatus(t *testing.T) {
	counts := services.CountByStatus(sampleTransactions())
	assert.Equal(t, map[models.TransactionStatus]int{
		models.StatusPending:  2,
		models.StatusApproved: 1,
		models.StatusRejected: 1,
	}, counts)

	empty := services.CountByStatus(nil)
	assert.Len(t, empty, 3)
	assert.Equal(t, 0, empty[models.StatusApproved])
}

func TestSummarize(t *testing.T) {
	summary := services.Summarize(sampleTransactions())
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, int64(1523000), summary.ApprovedRevenue)
	assert.Equal(t, 1, summary.AwaitingReview)
	assert.Equal(t, 2, summary.ByStatus[models.StatusPending])
}
