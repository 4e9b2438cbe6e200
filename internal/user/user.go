package user

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/user"
	"strconv"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/types"
)

// ActorEnv names the environment variable that overrides the acting user
const ActorEnv = "LANES_ACTOR_ID"

// GetCurrentUsername returns the current system username.
// It tries multiple methods with fallbacks:
// 1. user.Current() - most reliable, gets username from OS
// 2. USER environment variable - fallback for restricted environments
// 3. "unknown" - final fallback to ensure a non-empty value
func GetCurrentUsername() string {
	currentUser, err := user.Current()
	if err != nil {
		username := os.Getenv("USER")
		if username == "" {
			return "unknown"
		}
		return username
	}
	return currentUser.Username
}

// ResolveActorID picks the user recorded as the actor of a move or compaction.
// An explicit flag wins, then LANES_ACTOR_ID, then a user whose name matches
// the system username. A nil result means the change is unattributed.
func ResolveActorID(ctx context.Context, repo database.TenantRepository, flagValue int64) (*types.UserID, error) {
	if flagValue > 0 {
		return types.UserIDPtr(flagValue), nil
	}

	if raw := os.Getenv(ActorEnv); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid %s %q: must be a positive integer", ActorEnv, raw)
		}
		return types.UserIDPtr(id), nil
	}

	u, err := repo.FindUserByName(ctx, GetCurrentUsername())
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u.ID, nil
}
