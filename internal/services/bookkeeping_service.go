package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"invoicing-service/internal/models"

	"github.com/google/uuid"
)

const summaryCacheTTL = 5 * time.Minute

// SummaryCache is the cache surface for bookkeeping summaries; the Redis
// client satisfies it. GetBytes returns (nil, nil) on a miss.
type SummaryCache interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// ExpenseLister is the slice of expense persistence the ledger reads.
type ExpenseLister interface {
	ListByOrg(ctx context.Context, orgID int) ([]models.Expense, error)
}

// InvoiceLister is the slice of invoice persistence the ledger reads.
type InvoiceLister interface {
	ListByOrg(ctx context.Context, orgID int) ([]models.Invoice, error)
}

type BookkeepingService struct {
	expenses  ExpenseLister
	invoices  InvoiceLister
	customers CustomerResolver
	cache     SummaryCache
}

// NewBookkeepingService wires the ledger reads. cache may be nil when Redis
// is unavailable; summaries are then computed on every call.
func NewBookkeepingService(expenses ExpenseLister, invoices InvoiceLister, customers CustomerResolver, cache SummaryCache) *BookkeepingService {
	return &BookkeepingService{
		expenses:  expenses,
		invoices:  invoices,
		customers: customers,
		cache:     cache,
	}
}

func summaryCacheKey(orgID int) string {
	return fmt.Sprintf("bookkeeping:summary:%d", orgID)
}

// isLedgerIncome reports whether an invoice counts as income: either it is in
// paid status or someone recorded a payment date on it.
func isLedgerIncome(invoice models.Invoice) bool {
	if invoice.Status == models.InvoicePaid {
		return true
	}
	info := invoice.PaymentInformation.V
	return info != nil && info.PaidAt != nil
}

// BuildLedger assembles the bookkeeping view: every expense as an outflow and
// every paid invoice as an inflow, newest first. Invoice income is the
// position subtotal; coupon discounts are a marketing cost, not reduced
// revenue.
func (s *BookkeepingService) BuildLedger(ctx context.Context, orgID int) ([]models.LedgerEntry, error) {
	expenses, err := s.expenses.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LedgerEntry, 0, len(expenses)+len(invoices))
	for _, expense := range expenses {
		entries = append(entries, models.LedgerEntry{
			ID:          expense.ID,
			Date:        expense.Date,
			Description: expense.Description,
			Type:        models.LedgerExpense,
			Amount:      expense.Amount,
			Category:    expense.Category,
			SourceID:    expense.ID,
			SourceType:  models.LedgerSourceExpense,
		})
	}

	var paid []models.Invoice
	customerIDs := make([]uuid.UUID, 0, len(invoices))
	seen := make(map[uuid.UUID]bool)
	for _, invoice := range invoices {
		if !isLedgerIncome(invoice) {
			continue
		}
		paid = append(paid, invoice)
		if !seen[invoice.CustomerID] {
			seen[invoice.CustomerID] = true
			customerIDs = append(customerIDs, invoice.CustomerID)
		}
	}

	customers, err := s.customers.GetByIDs(ctx, orgID, customerIDs)
	if err != nil {
		return nil, err
	}
	customerByID := make(map[uuid.UUID]models.Customer, len(customers))
	for _, customer := range customers {
		customerByID[customer.ID] = customer
	}

	for _, invoice := range paid {
		date := invoice.IssuedAt
		if info := invoice.PaymentInformation.V; info != nil && info.PaidAt != nil {
			date = *info.PaidAt
		}

		description := ""
		if invoice.Description != nil {
			description = *invoice.Description
		}
		if description == "" {
			if customer, ok := customerByID[invoice.CustomerID]; ok {
				description = "Invoice to " + customer.DisplayName()
			} else {
				description = fmt.Sprintf("Invoice #%d", invoice.InvoiceID)
			}
		}

		entries = append(entries, models.LedgerEntry{
			ID:          invoice.ID,
			Date:        date,
			Description: description,
			Type:        models.LedgerIncome,
			Amount:      invoice.Subtotal(),
			SourceID:    invoice.ID,
			SourceType:  models.LedgerSourceInvoice,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	return entries, nil
}

// GetSummary totals the ledger, serving from cache when possible.
func (s *BookkeepingService) GetSummary(ctx context.Context, orgID int) (*models.LedgerSummary, error) {
	key := summaryCacheKey(orgID)

	if s.cache != nil {
		cached, err := s.cache.GetBytes(ctx, key)
		if err != nil {
			slog.Warn("bookkeeping summary cache read failed", "org_id", orgID, "error", err)
		} else if cached != nil {
			var summary models.LedgerSummary
			if err := json.Unmarshal(cached, &summary); err == nil {
				return &summary, nil
			}
			slog.Warn("discarding unreadable cached summary", "org_id", orgID)
		}
	}

	entries, err := s.BuildLedger(ctx, orgID)
	if err != nil {
		return nil, err
	}

	var summary models.LedgerSummary
	for _, entry := range entries {
		switch entry.Type {
		case models.LedgerIncome:
			summary.TotalIncome += entry.Amount
		case models.LedgerExpense:
			summary.TotalExpenses += entry.Amount
		}
	}
	summary.NetAmount = summary.TotalIncome - summary.TotalExpenses

	if s.cache != nil {
		if payload, err := json.Marshal(summary); err == nil {
			if err := s.cache.SetBytes(ctx, key, payload, summaryCacheTTL); err != nil {
				slog.Warn("bookkeeping summary cache write failed", "org_id", orgID, "error", err)
			}
		}
	}

	return &summary, nil
}

// InvalidateSummary drops the cached summary after a ledger-affecting write.
func (s *BookkeepingService) InvalidateSummary(ctx context.Context, orgID int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, summaryCacheKey(orgID)); err != nil {
		slog.Warn("bookkeeping summary cache invalidation failed", "org_id", orgID, "error", err)
	}
}
