package services

import (
	"strings"

	"sporton/internal/models"
)

// StatusAll matches transactions of any status.
const StatusAll = "all"

// TransactionFilter narrows the admin transaction list.
type TransactionFilter struct {
	Status     string
	SearchText string
}

// TransactionSummary aggregates the transaction list for the admin dashboard.
type TransactionSummary struct {
	Total           int                              `json:"total"`
	ByStatus        map[models.TransactionStatus]int `json:"byStatus"`
	ApprovedRevenue int64                            `json:"approvedRevenue"`
	AwaitingReview  int                              `json:"awaitingReview"`
}

// FilterTransactions keeps the transactions that match both the status and the
// search text. Search is case-insensitive over the ID, customer name and email.
// Order is preserved.
func FilterTransactions(txs []models.Transaction, f TransactionFilter) []models.Transaction {
	status := strings.ToLower(strings.TrimSpace(f.Status))
	search := strings.ToLower(strings.TrimSpace(f.SearchText))

	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if status != "" && status != StatusAll && string(tx.Status) != status {
			continue
		}
		if search != "" && !matchesSearch(tx, search) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func matchesSearch(tx models.Transaction, search string) bool {
	for _, field := range []string{tx.ID, tx.ShippingInfo.FullName, tx.ShippingInfo.Email} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// CountByStatus counts transactions per status. Every known status has a key.
func CountByStatus(txs []models.Transaction) map[models.TransactionStatus]int {
	counts := make(map[models.TransactionStatus]int, len(models.Statuses))
	for _, s := range models.Statuses {
		counts[s] = 0
	}
	for _, tx := range txs {
		counts[tx.Status]++
	}
	return counts
}

// Summarize builds the dashboard summary for txs.
func Summarize(txs []models.Transaction) TransactionSummary {
	summary := TransactionSummary{
		Total:    len(txs),
		ByStatus: CountByStatus(txs),
	}
	for _, tx := range txs {
		switch {
		case tx.Status == models.StatusApproved:
			summary.ApprovedRevenue += tx.TotalAmount
		case tx.IsPending() && tx.HasPayment():
			summary.AwaitingReview++
		}
	}
	return summary
}
