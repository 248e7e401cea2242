package types

import "time"

type ProfileType string

const (
	ProfileTypeRecycler       ProfileType = "RECYCLER"
	ProfileTypeWasteGenerator ProfileType = "WASTE_GENERATOR"
	ProfileTypeHodler         ProfileType = "HODLER"
)

func (p ProfileType) Valid() bool {
	switch p {
	case ProfileTypeRecycler, ProfileTypeWasteGenerator, ProfileTypeHodler:
		return true
	}
	return false
}

// CanUploadEvidence reports whether this profile type may attach video or
// invoice evidence to a form submission. Quantity-only submissions are open
// to every profile type.
func (p ProfileType) CanUploadEvidence() bool {
	return p == ProfileTypeRecycler || p == ProfileTypeWasteGenerator
}

type User struct {
	ID          string      `db:"id"`
	AuthID      string      `db:"auth_id"`
	Email       string      `db:"email"`
	ProfileType ProfileType `db:"profile_type"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}
