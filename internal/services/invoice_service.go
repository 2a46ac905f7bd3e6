package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"invoicing-service/internal/event"
	"invoicing-service/internal/models"
	"invoicing-service/internal/pricing"
	"invoicing-service/internal/repository"

	"github.com/google/uuid"
)

// InvoiceStore is the persistence surface the invoice service needs.
type InvoiceStore interface {
	GetByID(ctx context.Context, orgID int, id uuid.UUID) (*models.Invoice, error)
	ListByOrg(ctx context.Context, orgID int) ([]models.Invoice, error)
	NextInvoiceID(ctx context.Context, orgID int) (int, error)
	Create(ctx context.Context, invoice *models.Invoice) error
	Update(ctx context.Context, invoice *models.Invoice) error
}

// CustomerResolver resolves customers referenced by invoices.
type CustomerResolver interface {
	GetByID(ctx context.Context, orgID int, id uuid.UUID) (*models.Customer, error)
	GetByIDs(ctx context.Context, orgID int, ids []uuid.UUID) ([]models.Customer, error)
}

// ItemResolver resolves catalog items referenced by invoice positions.
type ItemResolver interface {
	GetByID(ctx context.Context, orgID int, id uuid.UUID) (*models.InventoryItem, error)
	GetByIDs(ctx context.Context, orgID int, ids []uuid.UUID) ([]models.InventoryItem, error)
}

// UsageEventPublisher emits one event per coupon usage recording attempt.
type UsageEventPublisher interface {
	Publish(ctx context.Context, evt event.CouponUsageEvent) error
}

// SummaryInvalidator drops cached bookkeeping summaries after a write that
// changes the ledger.
type SummaryInvalidator interface {
	InvalidateSummary(ctx context.Context, orgID int)
}

type InvoiceService struct {
	invoices  InvoiceStore
	customers CustomerResolver
	items     ItemResolver
	coupons   *CouponService
	publisher UsageEventPublisher
	cache     SummaryInvalidator
}

// NewInvoiceService wires the invoice service. publisher and cache may be nil
// when RabbitMQ or Redis are unavailable; both are best-effort.
func NewInvoiceService(
	invoices InvoiceStore,
	customers CustomerResolver,
	items ItemResolver,
	coupons *CouponService,
	publisher UsageEventPublisher,
	cache SummaryInvalidator,
) *InvoiceService {
	return &InvoiceService{
		invoices:  invoices,
		customers: customers,
		items:     items,
		coupons:   coupons,
		publisher: publisher,
		cache:     cache,
	}
}

// buildPositions resolves position requests against the catalog. Catalog
// positions snapshot the item's current price unless the request settles one
// explicitly; the snapshot never changes when the catalog does.
func (s *InvoiceService) buildPositions(ctx context.Context, orgID int, reqs []models.PositionRequest) (models.InvoicePositions, error) {
	positions := make(models.InvoicePositions, 0, len(reqs))
	for i, req := range reqs {
		position := models.InvoicePosition{
			PositionID:      req.PositionID,
			Amount:          req.Amount,
			InventoryItemID: req.InventoryItemID,
			CustomItem:      req.CustomItem,
		}
		if position.PositionID <= 0 {
			position.PositionID = i + 1
		}

		if req.InventoryItemID != nil && req.InventoryItemID.ID != uuid.Nil {
			item, err := s.items.GetByID(ctx, orgID, req.InventoryItemID.ID)
			if errors.Is(err, repository.ErrNotFound) {
				return nil, NewValidationError(fmt.Sprintf("inventory item %s not found", req.InventoryItemID.ID))
			}
			if err != nil {
				return nil, fmt.Errorf("failed to resolve position item: %w", err)
			}
			if !item.AllowAmountDecimal && !models.IsIntegralAmount(req.Amount) {
				return nil, NewValidationError(fmt.Sprintf("item %s does not allow fractional amounts", item.Name))
			}
			if req.SettledPrice != nil {
				position.SettledPrice = *req.SettledPrice
			} else {
				position.SettledPrice = item.Price
			}
		} else {
			position.SettledPrice = *req.SettledPrice
		}

		positions = append(positions, position)
	}
	return positions, nil
}

// settleCoupons loads and validates the requested coupons, then settles each
// discount against the invoice subtotal. Discounts are computed independently
// against the original subtotal; they do not compound.
func (s *InvoiceService) settleCoupons(ctx context.Context, orgID int, subtotal float64, reqs []models.AppliedCouponRequest, now time.Time) ([]models.Coupon, models.AppliedCoupons, error) {
	if len(reqs) == 0 {
		return nil, nil, nil
	}

	seen := make(map[uuid.UUID]bool, len(reqs))
	coupons := make([]models.Coupon, 0, len(reqs))
	for _, req := range reqs {
		if seen[req.CouponID] {
			return nil, nil, NewValidationError(fmt.Sprintf("coupon %s is applied more than once", req.CouponID))
		}
		seen[req.CouponID] = true

		coupon, err := s.coupons.GetCoupon(ctx, orgID, req.CouponID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, NewValidationError(fmt.Sprintf("coupon %s not found", req.CouponID))
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve coupon: %w", err)
		}
		coupons = append(coupons, *coupon)
	}

	if len(coupons) > 1 {
		for _, coupon := range coupons {
			if !coupon.Stackable {
				return nil, nil, NewValidationError(fmt.Sprintf("coupon %s cannot be combined with other coupons", coupon.Code))
			}
		}
	}

	for _, coupon := range coupons {
		if err := ValidateForUse(coupon, subtotal, now); err != nil {
			return nil, nil, err
		}
	}

	_, breakdown := pricing.ApplyCoupons(coupons, subtotal)

	applied := make(models.AppliedCoupons, 0, len(breakdown))
	for i, share := range breakdown {
		appliedAt := now
		if reqs[i].AppliedAt != nil {
			appliedAt = *reqs[i].AppliedAt
		}
		applied = append(applied, models.AppliedCoupon{
			CouponID:        share.CouponID,
			AppliedAt:       appliedAt,
			DiscountApplied: share.Discount,
		})
	}
	return coupons, applied, nil
}

// applyPaidTrigger fills payment information when an invoice lands in paid
// status without one. Fields the caller already set are preserved.
func applyPaidTrigger(invoice *models.Invoice, now time.Time) {
	if invoice.Status != models.InvoicePaid {
		return
	}

	info := invoice.PaymentInformation.V
	if info == nil {
		info = &models.PaymentInformation{}
	}
	if info.PaidAt == nil {
		paidAt := now
		info.PaidAt = &paidAt
	}
	if info.PaymentStatus == "" {
		info.PaymentStatus = models.PaymentCompleted
	}
	if info.PaymentMethod == "" {
		info.PaymentMethod = models.PaymentOther
	}
	invoice.PaymentInformation = models.NewDoc(info)
}

func (s *InvoiceService) CreateInvoice(ctx context.Context, orgID int, callerID string, req models.CreateInvoiceRequest) (*models.Invoice, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}

	now := time.Now()

	positions, err := s.buildPositions(ctx, orgID, req.Positions)
	if err != nil {
		return nil, err
	}
	subtotal := pricing.Subtotal(positions)

	coupons, applied, err := s.settleCoupons(ctx, orgID, subtotal, req.AppliedCoupons, now)
	if err != nil {
		return nil, err
	}

	nextID, err := s.invoices.NextInvoiceID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	status := models.InvoiceDraft
	if req.Status != nil {
		status = *req.Status
	}

	invoice := &models.Invoice{
		OrgID:              orgID,
		InvoiceID:          nextID,
		CustomerID:         req.CustomerID,
		Description:        req.Description,
		Text:               req.Text,
		Notes:              req.Notes,
		Positions:          positions,
		AppliedCoupons:     applied,
		PaymentInformation: models.NewDoc(req.PaymentInformation),
		IssuedAt:           req.IssuedAt,
		DueAt:              req.DueAt,
		Status:             status,
		BillingAddress:     models.NewDoc(req.BillingAddress),
		ShippingAddress:    models.NewDoc(req.ShippingAddress),
		CreatedBy:          callerID,
		State:              models.StateActive,
	}
	applyPaidTrigger(invoice, now)

	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}

	s.recordCouponUsage(ctx, orgID, invoice, coupons, applied)
	s.invalidateSummary(ctx, orgID)

	return invoice, nil
}

// recordCouponUsage appends usage to each applied coupon after the invoice
// write. Recording is best-effort: a failure leaves the coupon's log behind
// the invoice, so every attempt is published as an event either way.
func (s *InvoiceService) recordCouponUsage(ctx context.Context, orgID int, invoice *models.Invoice, coupons []models.Coupon, applied models.AppliedCoupons) {
	for i, share := range applied {
		err := s.coupons.RecordUsage(ctx, orgID, coupons[i], invoice.ID, share.DiscountApplied, share.AppliedAt)
		if err != nil {
			slog.Error("failed to record coupon usage",
				"org_id", orgID,
				"coupon_id", share.CouponID,
				"invoice_id", invoice.ID,
				"error", err,
			)
		}

		if s.publisher == nil {
			continue
		}
		evt := event.CouponUsageEvent{
			OrgID:           orgID,
			CouponID:        share.CouponID,
			InvoiceID:       invoice.ID,
			DiscountApplied: share.DiscountApplied,
			Recorded:        err == nil,
			OccurredAt:      time.Now(),
		}
		if err != nil {
			evt.Error = err.Error()
		}
		if pubErr := s.publisher.Publish(ctx, evt); pubErr != nil {
			slog.Error("failed to publish coupon usage event", "coupon_id", share.CouponID, "error", pubErr)
		}
	}
}

func (s *InvoiceService) invalidateSummary(ctx context.Context, orgID int) {
	if s.cache != nil {
		s.cache.InvalidateSummary(ctx, orgID)
	}
}

func (s *InvoiceService) UpdateInvoice(ctx context.Context, orgID int, callerID string, id uuid.UUID, req models.UpdateInvoiceRequest) (*models.Invoice, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}

	invoice, err := s.invoices.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if req.Description != nil {
		invoice.Description = req.Description
	}
	if req.Text != nil {
		invoice.Text = req.Text
	}
	if req.Notes != nil {
		invoice.Notes = req.Notes
	}
	if req.Positions != nil {
		positions, err := s.buildPositions(ctx, orgID, req.Positions)
		if err != nil {
			return nil, err
		}
		invoice.Positions = positions
	}
	if req.PaymentInformation != nil {
		invoice.PaymentInformation = models.NewDoc(req.PaymentInformation)
	}
	if req.IssuedAt != nil {
		invoice.IssuedAt = *req.IssuedAt
	}
	if req.DueAt != nil {
		invoice.DueAt = *req.DueAt
	}
	if req.Status != nil {
		invoice.Status = *req.Status
	}
	if req.BillingAddress != nil {
		invoice.BillingAddress = models.NewDoc(req.BillingAddress)
	}
	if req.ShippingAddress != nil {
		invoice.ShippingAddress = models.NewDoc(req.ShippingAddress)
	}
	if req.State != nil {
		invoice.State = *req.State
	}
	applyPaidTrigger(invoice, now)

	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, err
	}

	s.invalidateSummary(ctx, orgID)

	return invoice, nil
}

func (s *InvoiceService) DeleteInvoice(ctx context.Context, orgID int, callerID string, id uuid.UUID) error {
	if callerID == "" {
		return ErrUnauthorized
	}

	invoice, err := s.invoices.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}

	invoice.State = models.StateDeleted
	if err := s.invoices.Update(ctx, invoice); err != nil {
		return err
	}

	s.invalidateSummary(ctx, orgID)

	return nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, orgID int, id uuid.UUID) (*models.InvoiceView, error) {
	invoice, err := s.invoices.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	views, err := s.expand(ctx, orgID, []models.Invoice{*invoice})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *InvoiceService) ListInvoices(ctx context.Context, orgID int) ([]models.InvoiceView, error) {
	invoices, err := s.invoices.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, orgID, invoices)
}

// expand resolves the records each invoice references so list and get
// responses carry display data instead of bare ids. Missing references are
// left unresolved rather than failing the read.
func (s *InvoiceService) expand(ctx context.Context, orgID int, invoices []models.Invoice) ([]models.InvoiceView, error) {
	customerIDs := make([]uuid.UUID, 0, len(invoices))
	var itemIDs, couponIDs []uuid.UUID
	seenCustomer := make(map[uuid.UUID]bool)
	seenItem := make(map[uuid.UUID]bool)
	seenCoupon := make(map[uuid.UUID]bool)

	for _, invoice := range invoices {
		if !seenCustomer[invoice.CustomerID] {
			seenCustomer[invoice.CustomerID] = true
			customerIDs = append(customerIDs, invoice.CustomerID)
		}
		for _, position := range invoice.Positions {
			if position.InventoryItemID != nil && !seenItem[position.InventoryItemID.ID] {
				seenItem[position.InventoryItemID.ID] = true
				itemIDs = append(itemIDs, position.InventoryItemID.ID)
			}
		}
		for _, applied := range invoice.AppliedCoupons {
			if !seenCoupon[applied.CouponID] {
				seenCoupon[applied.CouponID] = true
				couponIDs = append(couponIDs, applied.CouponID)
			}
		}
	}

	customers, err := s.customers.GetByIDs(ctx, orgID, customerIDs)
	if err != nil {
		return nil, err
	}
	items, err := s.items.GetByIDs(ctx, orgID, itemIDs)
	if err != nil {
		return nil, err
	}
	coupons, err := s.coupons.GetCoupons(ctx, orgID, couponIDs)
	if err != nil {
		return nil, err
	}

	customerByID := make(map[uuid.UUID]*models.Customer, len(customers))
	for i := range customers {
		customerByID[customers[i].ID] = &customers[i]
	}
	itemByID := make(map[uuid.UUID]*models.InventoryItem, len(items))
	for i := range items {
		itemByID[items[i].ID] = &items[i]
	}
	couponByID := make(map[uuid.UUID]*models.Coupon, len(coupons))
	for i := range coupons {
		couponByID[coupons[i].ID] = &coupons[i]
	}

	views := make([]models.InvoiceView, 0, len(invoices))
	for _, invoice := range invoices {
		view := models.InvoiceView{
			Invoice:  invoice,
			Customer: customerByID[invoice.CustomerID],
			Subtotal: invoice.Subtotal(),
			Total:    invoice.Total(),
		}

		view.Positions = make([]models.InvoicePositionView, 0, len(invoice.Positions))
		for _, position := range invoice.Positions {
			positionView := models.InvoicePositionView{InvoicePosition: position}
			if position.InventoryItemID != nil {
				positionView.InventoryItem = itemByID[position.InventoryItemID.ID]
			}
			view.Positions = append(view.Positions, positionView)
		}

		if len(invoice.AppliedCoupons) > 0 {
			view.AppliedCoupons = make([]models.AppliedCouponView, 0, len(invoice.AppliedCoupons))
			for _, applied := range invoice.AppliedCoupons {
				view.AppliedCoupons = append(view.AppliedCoupons, models.AppliedCouponView{
					AppliedCoupon: applied,
					Coupon:        couponByID[applied.CouponID],
				})
			}
		}

		views = append(views, view)
	}
	return views, nil
}
