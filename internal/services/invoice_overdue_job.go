package services

import (
	"context"
	"log/slog"
	"time"

	"invoicing-service/internal/models"

	"github.com/robfig/cron/v3"
)

// OverdueInvoiceStore is the slice of invoice persistence the overdue job
// needs.
type OverdueInvoiceStore interface {
	ListDueBefore(ctx context.Context, cutoff time.Time, statuses []models.InvoiceStatus) ([]models.Invoice, error)
	Update(ctx context.Context, invoice *models.Invoice) error
}

// InvoiceOverdueJob marks sent and viewed invoices past their due date as
// overdue. Draft and canceled invoices are never touched.
type InvoiceOverdueJob struct {
	store OverdueInvoiceStore
}

func NewInvoiceOverdueJob(store OverdueInvoiceStore) *InvoiceOverdueJob {
	return &InvoiceOverdueJob{store: store}
}

// Schedule registers the job to run every night at 02:00.
func (j *InvoiceOverdueJob) Schedule(c *cron.Cron) error {
	_, err := c.AddJob("0 2 * * *", j)
	return err
}

func (j *InvoiceOverdueJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	invoices, err := j.store.ListDueBefore(ctx, time.Now(), []models.InvoiceStatus{
		models.InvoiceSent,
		models.InvoiceViewed,
	})
	if err != nil {
		slog.Error("overdue job failed to list due invoices", "error", err)
		return
	}

	marked := 0
	for i := range invoices {
		invoices[i].Status = models.InvoiceOverdue
		if err := j.store.Update(ctx, &invoices[i]); err != nil {
			slog.Error("overdue job failed to update invoice",
				"invoice_id", invoices[i].ID,
				"error", err,
			)
			continue
		}
		marked++
	}

	if marked > 0 {
		slog.Info("marked invoices overdue", "count", marked)
	}
}
