// Package usecase implements the business logic for platform lookups and seeding.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"watchlist_backend/internal/feature/platforms/domain/entity"
	"watchlist_backend/internal/shared/apperror"
)

// ErrNoPlatformNames is returned by Seed when every given name is blank.
var ErrNoPlatformNames = apperror.Validation("at least one platform name is required")

// PlatformRepository abstracts the persistence layer for platforms.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PlatformRepository interface {
	// List returns all platforms ordered by name.
	List(ctx context.Context) ([]entity.Platform, error)
	// InsertMissing inserts the names that do not exist yet and reports how many were added.
	InsertMissing(ctx context.Context, names []string) (int64, error)
}

// PlatformUsecase provides business logic for platform operations.
type PlatformUsecase struct {
	repo PlatformRepository
}

// NewPlatformUsecase creates a new PlatformUsecase with the given repository.
func NewPlatformUsecase(r PlatformRepository) *PlatformUsecase {
	return &PlatformUsecase{repo: r}
}

// ListPlatforms returns every platform. An empty result is not an error.
func (u *PlatformUsecase) ListPlatforms(ctx context.Context) ([]entity.Platform, error) {
	platforms, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if platforms == nil {
		platforms = []entity.Platform{}
	}
	return platforms, nil
}

// Seed trims and de-duplicates names (case-insensitively) and inserts the ones
// that are missing. Existing platforms are left untouched.
func (u *PlatformUsecase) Seed(ctx context.Context, names []string) (int64, error) {
	seen := make(map[string]struct{}, len(names))
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, n)
	}
	if len(cleaned) == 0 {
		return 0, ErrNoPlatformNames
	}

	inserted, err := u.repo.InsertMissing(ctx, cleaned)
	if err != nil {
		return 0, fmt.Errorf("seed platforms: %w", err)
	}
	return inserted, nil
}

// DefaultPlatforms is the list seeded when no names are given.
var DefaultPlatforms = []string{
	"Apple TV+",
	"Crunchyroll",
	"Disney+",
	"Hulu",
	"Max",
	"Netflix",
	"Paramount+",
	"Peacock",
	"Prime Video",
	"YouTube",
}
