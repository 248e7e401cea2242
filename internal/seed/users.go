package seed

import (
	"context"
	"errors"
	"fmt"

	"recyloop/internal/store"
	"recyloop/pkg/types"
)

type fakeUserSeed struct {
	ID          string
	AuthID      string
	Email       string
	ProfileType types.ProfileType
}

// To generate new IDs: `go run ./cmd/recyloop nanoid`
var fakeUsers = []fakeUserSeed{
	{ID: "dGnTyKabP8mVYtQxCZnErW3saM0hJufR", AuthID: "seed-auth-recycler-1", Email: "marta.recycler+seed1@example.com", ProfileType: types.ProfileTypeRecycler},
	{ID: "Xh0LVnAqpJ6FzmEkTbOIwRsCuN41yeDg", AuthID: "seed-auth-recycler-2", Email: "joao.recycler+seed2@example.com", ProfileType: types.ProfileTypeRecycler},
	{ID: "q7WmBKeYLcPjd2UO9ZSagxntEIvDh5f3", AuthID: "seed-auth-generator-1", Email: "ana.generator+seed3@example.com", ProfileType: types.ProfileTypeWasteGenerator},
	{ID: "t4RvJyNXsF8bkQamDWh1PoTzulM6GiCE", AuthID: "seed-auth-generator-2", Email: "pedro.generator+seed4@example.com", ProfileType: types.ProfileTypeWasteGenerator},
	{ID: "Zo2cVfUHrL5wKgYseB7NqpAJdX9ETtmi", AuthID: "seed-auth-hodler-1", Email: "carla.hodler+seed5@example.com", ProfileType: types.ProfileTypeHodler},
}

// SeedFakeUsers inserts the fixed development users if they do not exist.
func SeedFakeUsers(ctx context.Context, userRepo *store.UserRepository) error {
	seeded := 0
	for _, fakeUser := range fakeUsers {
		_, err := userRepo.UserByID(ctx, fakeUser.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, types.ErrUserNotFound) {
			return fmt.Errorf("failed to fetch fake user %s: %w", fakeUser.ID, err)
		}

		newUser := &types.User{
			ID:          fakeUser.ID,
			AuthID:      fakeUser.AuthID,
			Email:       fakeUser.Email,
			ProfileType: fakeUser.ProfileType,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return fmt.Errorf("failed to create fake user %s: %w", fakeUser.ID, err)
		}
		seeded++
	}

	fmt.Printf("Fake users seeded: %d inserted\n", seeded)
	return nil
}

func seedUserIDByAuthID(authID string) (string, bool) {
	for _, fakeUser := range fakeUsers {
		if fakeUser.AuthID == authID {
			return fakeUser.ID, true
		}
	}
	return "", false
}
