package types

import "time"

// Document is the authoritative per-category record of one form submission:
// the declared amount plus the storage keys of any attached evidence.
// Documents are created alongside their form and never mutated afterwards.
type Document struct {
	ID          string      `db:"id" json:"id"`
	FormID      string      `db:"form_id" json:"formId"`
	ResidueType ResidueType `db:"residue_type" json:"residueType"`
	Amount      float64     `db:"amount" json:"amount"`
	VideoKey    *string     `db:"video_key" json:"videoKey"`
	InvoiceKeys []string    `db:"invoice_keys" json:"invoiceKeys"` // jsonb array
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
}
