package models

// ============================================================================
// ENUMS
// ============================================================================

type EntityState string

const (
	StateActive  EntityState = "active"
	StateDeleted EntityState = "deleted"
)

type VATMode string

const (
	VATGross VATMode = "gross"
	VATNet   VATMode = "net"
)

type PriceUnit string

const (
	UnitPiece      PriceUnit = "piece"
	UnitTon        PriceUnit = "t"
	UnitKilogram   PriceUnit = "kg"
	UnitGram       PriceUnit = "g"
	UnitLiter      PriceUnit = "l"
	UnitCentiliter PriceUnit = "cl"
	UnitMilliliter PriceUnit = "ml"
	UnitMeter      PriceUnit = "m"
	UnitCentimeter PriceUnit = "cm"
	UnitMillimeter PriceUnit = "mm"
)

type ItemType string

const (
	ItemProduct ItemType = "product"
	ItemService ItemType = "service"
)

type CouponKind string

const (
	CouponDiscount CouponKind = "discount"
	CouponGiftCard CouponKind = "gift_card"
)

type CouponValueKind string

const (
	ValuePercentage CouponValueKind = "percentage"
	ValueFixed      CouponValueKind = "fixed"
)

type CouponStatus string

const (
	CouponActive   CouponStatus = "active"
	CouponUsed     CouponStatus = "used"
	CouponInactive CouponStatus = "inactive"
)

type InvoiceStatus string

const (
	InvoiceDraft    InvoiceStatus = "draft"
	InvoiceSent     InvoiceStatus = "sent"
	InvoiceViewed   InvoiceStatus = "viewed"
	InvoicePaid     InvoiceStatus = "paid"
	InvoiceOverdue  InvoiceStatus = "overdue"
	InvoiceCanceled InvoiceStatus = "canceled"
)

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentTwint PaymentMethod = "twint"
	PaymentOther PaymentMethod = "other"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type LedgerEntryType string

const (
	LedgerIncome  LedgerEntryType = "income"
	LedgerExpense LedgerEntryType = "expense"
)

func IsValidItemType(t ItemType) bool {
	switch t {
	case ItemProduct, ItemService:
		return true
	default:
		return false
	}
}

func IsValidCouponKind(k CouponKind) bool {
	switch k {
	case CouponDiscount, CouponGiftCard:
		return true
	default:
		return false
	}
}

func IsValidCouponStatus(s CouponStatus) bool {
	switch s {
	case CouponActive, CouponUsed, CouponInactive:
		return true
	default:
		return false
	}
}

func IsValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoiceViewed, InvoicePaid, InvoiceOverdue, InvoiceCanceled:
		return true
	default:
		return false
	}
}

func IsValidPriceUnit(u PriceUnit) bool {
	switch u {
	case UnitPiece, UnitTon, UnitKilogram, UnitGram, UnitLiter, UnitCentiliter,
		UnitMilliliter, UnitMeter, UnitCentimeter, UnitMillimeter:
		return true
	default:
		return false
	}
}
