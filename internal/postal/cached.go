package postal

import (
	"context"
	"log/slog"

	"github.com/amaralimoveis/vitrine/internal/listing"
)

// JSONCache is the subset of the Redis cache used to memoize lookups.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, dst any) bool
	SetJSON(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}

// Cached serves lookups from Cache when possible and stores every address
// Next resolves. Misses are not cached so a later retry can succeed. A
// cached entry that does not describe the requested code is evicted.
type Cached struct {
	Next  Lookuper
	Cache JSONCache
}

// Lookup implements Lookuper.
func (c *Cached) Lookup(ctx context.Context, cep string) (*Address, bool) {
	digits := listing.OnlyDigits(cep)
	if len(digits) != 8 {
		return nil, false
	}
	key := "cep:" + digits

	var addr Address
	if c.Cache.GetJSON(ctx, key, &addr) {
		if addr.matches(digits) {
			return &addr, true
		}
		slog.Warn("evicting unusable cached postal address", "cep", digits)
		if err := c.Cache.Delete(ctx, key); err != nil {
			slog.Warn("evicting postal address failed", "cep", digits, "error", err)
		}
	}

	found, ok := c.Next.Lookup(ctx, digits)
	if !ok {
		return nil, false
	}
	if err := c.Cache.SetJSON(ctx, key, found); err != nil {
		slog.Warn("caching postal address failed", "cep", digits, "error", err)
	}
	return found, true
}

func (a *Address) matches(digits string) bool {
	return listing.OnlyDigits(a.PostalCode) == digits && a.City != ""
}
