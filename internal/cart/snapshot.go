package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"GlowMart/internal/kv"
)

// loadSnapshot reads the collection stored under key. A missing key yields
// nil. A value that does not decode in full is logged and treated as missing,
// so one corrupt entry never locks a shopper out of their session.
func loadSnapshot[T any](ctx context.Context, store kv.Store, key string, log *zap.Logger) ([]T, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}

	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Warn("discarding unreadable snapshot", zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	return out, nil
}

// cleanLines drops lines that break the cart invariants and merges
// duplicates, keeping the first line's position.
func cleanLines(in []Line) []Line {
	out := make([]Line, 0, len(in))
	pos := make(map[string]int, len(in))
	for _, l := range in {
		if l.Product.ID == "" || l.Quantity < 1 {
			continue
		}
		if i, ok := pos[l.Product.ID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		pos[l.Product.ID] = len(out)
		out = append(out, l)
	}
	return out
}

func cleanWishlist(in []WishlistEntry) []WishlistEntry {
	out := make([]WishlistEntry, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, e := range in {
		if e.Product.ID == "" {
			continue
		}
		if _, ok := seen[e.Product.ID]; ok {
			continue
		}
		seen[e.Product.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}

func saveSnapshot(ctx context.Context, store kv.Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrPersist, key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
