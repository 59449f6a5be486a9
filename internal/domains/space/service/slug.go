package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"spacecatalog-backend/internal/shared/utils"
)

// maxSlugAttempts bounds the numeric suffix probing before falling back to
// a random suffix. 50 collisions on one base name means the numeric space
// is being farmed; randomness ends the race.
const maxSlugAttempts = 50

// ensureUniqueSlug derives a slug from the display name and probes the
// store until a free candidate is found. Every numeric suffix is applied
// to the base slug, never stacked onto a previous candidate. The unique
// constraint on spaces.slug remains the real enforcement; losing that race
// surfaces as a conflict from the write.
func (s *spaceService) ensureUniqueSlug(ctx context.Context, name string) (string, error) {
	base := utils.GenerateSlug(name)
	if base == "" {
		base = "space"
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate := base
		if attempt > 0 {
			candidate = fmt.Sprintf("%s-%d", base, attempt)
		}

		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}

	suffix, err := randomSuffix(4)
	if err != nil {
		return "", fmt.Errorf("generate slug suffix: %w", err)
	}
	return fmt.Sprintf("%s-%s", base, suffix), nil
}

func randomSuffix(bytes int) (string, error) {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
