package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies one of the four append-only record tables.
type Kind string

const (
	KindSpend   Kind = "spend"
	KindLend    Kind = "lend"
	KindBorrow  Kind = "borrow"
	KindDeposit Kind = "deposit"
)

// Kinds lists every record kind in table order.
var Kinds = []Kind{KindSpend, KindLend, KindBorrow, KindDeposit}

// Delta returns the signed balance effect of amount for the kind.
func (k Kind) Delta(amount decimal.Decimal) decimal.Decimal {
	switch k {
	case KindSpend, KindLend:
		return amount.Neg()
	default:
		return amount
	}
}

// SpendRecord is money the user spent. It decreases the balance.
type SpendRecord struct {
	ID        int64           `json:"spend_id"`
	UserID    int64           `json:"-"`
	Amount    decimal.Decimal `json:"amount"`
	ForWhat   string          `json:"for_what"`
	Place     string          `json:"place"`
	SpendDate time.Time       `json:"spend_date"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
}

// LendRecord is money lent out to someone. It decreases the balance.
type LendRecord struct {
	ID         int64           `json:"lend_id"`
	UserID     int64           `json:"-"`
	Amount     decimal.Decimal `json:"amount"`
	ToWhom     string          `json:"to_whom"`
	ReturnDate time.Time       `json:"return_date"`
	CreatedAt  *time.Time      `json:"created_at"`
}

// BorrowRecord is money borrowed from someone. It increases the balance.
type BorrowRecord struct {
	ID         int64           `json:"borrow_id"`
	UserID     int64           `json:"-"`
	Amount     decimal.Decimal `json:"amount"`
	ForWhat    string          `json:"for_what"`
	FromWhom   string          `json:"from_whom"`
	ReturnDate time.Time       `json:"return_date"`
	CreatedAt  *time.Time      `json:"created_at"`
}

// DepositRecord is income added to the balance.
type DepositRecord struct {
	ID          int64           `json:"deposit_id"`
	UserID      int64           `json:"-"`
	Amount      decimal.Decimal `json:"amount"`
	Source      string          `json:"source"`
	DepositDate time.Time       `json:"deposit_date"`
	CreatedAt   *time.Time      `json:"created_at"`
}
