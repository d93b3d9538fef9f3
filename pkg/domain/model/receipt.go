package model

import (
	"time"

	"github.com/spendgraph/spendgraph/pkg/domain/types"
)

// Receipt is the upstream input: OCR-extracted text plus whatever header
// fields and structured items the document processor recovered.
type Receipt struct {
	ID     types.ReceiptID `json:"id"`
	UserID types.UserID    `json:"user_id"`

	MerchantName    string `json:"merchant_name"`
	MerchantAddress string `json:"merchant_address,omitempty"`
	MerchantPhone   string `json:"merchant_phone,omitempty"`
	MerchantTaxID   string `json:"merchant_tax_id,omitempty"`

	Date        time.Time `json:"date"`
	TotalAmount float64   `json:"total_amount"`
	Currency    string    `json:"currency,omitempty"`

	PaymentMethod string `json:"payment_method,omitempty"`
	CardLastFour  string `json:"card_last_four,omitempty"`

	RawText string `json:"raw_text"`

	// Items is the pre-parsed item list; may be empty or incomplete,
	// in which case items are extracted from RawText instead
	Items []ReceiptItem `json:"items,omitempty"`
}

// ReceiptItem is a single structured line item of a receipt
type ReceiptItem struct {
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"total_price"`
	SKU         string  `json:"sku,omitempty"`
	Description string  `json:"description,omitempty"`
}
