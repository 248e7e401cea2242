package seed

import (
	"context"
	"errors"
	"fmt"

	"recyloop/internal/store"
	"recyloop/internal/utils"
	"recyloop/pkg/types"
)

type fakeFormSeed struct {
	ID         string
	OwnerAuth  string
	Wallet     string
	Authorized bool
	Amounts    map[types.ResidueType]float64
}

var fakeForms = []fakeFormSeed{
	{
		ID:         "KfWZ3mTgqYxEJcnB8PiRvH2N0wOdl7uA",
		OwnerAuth:  "seed-auth-recycler-1",
		Wallet:     "0x3f2aD61c7B9e04F1a28cD50e6b7f4c80912e55aA",
		Authorized: true,
		Amounts: map[types.ResidueType]float64{
			types.ResidueGlass:   4.5,
			types.ResiduePlastic: 8,
		},
	},
	{
		ID:        "s9XeLQh5DwFunUT1oGkZItC6pyMJbR4v",
		OwnerAuth: "seed-auth-generator-1",
		Amounts: map[types.ResidueType]float64{
			types.ResidueOrganic: 12.5,
			types.ResiduePaper:   3,
		},
	},
}

// SeedFakeForms inserts demo forms with document rows for the seed users.
// Runs after SeedFakeUsers; forms that already exist are skipped.
func SeedFakeForms(ctx context.Context, formRepo *store.FormRepository) error {
	seeded := 0
	for _, fakeForm := range fakeForms {
		_, err := formRepo.Form(ctx, fakeForm.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, types.ErrFormNotFound) {
			return fmt.Errorf("failed to fetch fake form %s: %w", fakeForm.ID, err)
		}

		ownerID, ok := seedUserIDByAuthID(fakeForm.OwnerAuth)
		if !ok {
			return fmt.Errorf("fake form %s references unknown seed user %s", fakeForm.ID, fakeForm.OwnerAuth)
		}

		form := &types.Form{
			ID:         fakeForm.ID,
			UserID:     ownerID,
			Authorized: fakeForm.Authorized,
		}
		if fakeForm.Wallet != "" {
			form.WalletAddress = utils.StringPtr(fakeForm.Wallet)
		}

		var documents []*types.Document
		for _, residue := range types.ResidueTypes() {
			amount, ok := fakeForm.Amounts[residue]
			if !ok {
				continue
			}
			documents = append(documents, &types.Document{
				ID:          utils.NanoID(),
				ResidueType: residue,
				Amount:      amount,
				InvoiceKeys: []string{},
			})
		}

		if err := formRepo.CreateWithDocuments(ctx, form, documents); err != nil {
			return fmt.Errorf("failed to create fake form %s: %w", fakeForm.ID, err)
		}
		seeded++
	}

	fmt.Printf("Fake forms seeded: %d inserted\n", seeded)
	return nil
}
