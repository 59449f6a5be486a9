package taxonomy

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"spacecatalog-backend/internal/shared/apperror"
)

// Reconciler validates the taxonomy references a space mutation wants to
// attach. One batched lookup per kind; a failure names every missing id so
// the client can fix them all at once.
type Reconciler struct {
	repo Repository
}

func NewReconciler(repo Repository) *Reconciler {
	return &Reconciler{repo: repo}
}

// ValidateRefs checks that every id exists for the given kind. Empty input
// is valid and does not touch the store.
func (r *Reconciler) ValidateRefs(ctx context.Context, kind Kind, ids []uuid.UUID) error {
	unique := DedupeIDs(ids)
	if len(unique) == 0 {
		return nil
	}

	existing, err := r.repo.ExistingIDs(ctx, kind, unique)
	if err != nil {
		return err
	}

	var missing []string
	for _, id := range unique {
		if _, ok := existing[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) == 0 {
		return nil
	}

	sort.Strings(missing)
	label := kind.Label()
	if len(missing) > 1 {
		if kind == KindCategory {
			label = "categories"
		} else {
			label += "s"
		}
	}
	return apperror.Newf(apperror.KindNotFound, ErrCodeMissingRefs,
		"%s not found: %s", label, strings.Join(missing, ", "))
}

// DedupeIDs removes repeated ids, keeping first-seen order. Relation id
// lists are sets; callers collapse them before validating or persisting.
func DedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
