package types

import "time"

type Form struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"userId"`
	WalletAddress *string   `db:"wallet_address" json:"walletAddress"`
	Authorized    bool      `db:"authorized" json:"authorized"`
	MetadataURL   *string   `db:"metadata_url" json:"metadataUrl"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// FormFilter narrows form listings. Zero value means no filtering.
type FormFilter struct {
	Authorized  *bool        `form:"authorized"`
	ProfileType *ProfileType `form:"profile_type"`
	UserID      string       `form:"-"`
}
