// Package cache wraps read-heavy repositories with a TTL store. Courts and
// profile displays change rarely but sit on every browse and roster read.
package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/courtside/hooprun/internal/domain/court"
	"github.com/courtside/hooprun/internal/domain/product"
	"github.com/courtside/hooprun/internal/domain/profile"
	basecache "github.com/courtside/hooprun/internal/platform/cache"
)

type CourtRepository struct {
	next  court.Repository
	cache *basecache.Store
}

func NewCourtRepository(next court.Repository, cache *basecache.Store) *CourtRepository {
	return &CourtRepository{next: next, cache: cache}
}

func (r *CourtRepository) List(ctx context.Context, city string) ([]court.Court, error) {
	key := "court:list:" + strings.ToLower(city)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, city)
		if err != nil {
			return nil, err
		}
		return append([]court.Court(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]court.Court)
	return append([]court.Court(nil), items...), nil
}

func (r *CourtRepository) GetByID(ctx context.Context, courtID string) (court.Court, bool, error) {
	key := "court:id:" + courtID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, courtID)
		if err != nil {
			return nil, err
		}
		return cachedCourtByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return court.Court{}, false, err
	}

	cached, _ := v.(cachedCourtByID)
	return cached.value, cached.exists, nil
}

// Create writes through and drops the list keys so new courts show up
// without waiting for the TTL.
func (r *CourtRepository) Create(ctx context.Context, c court.Court) error {
	if err := r.next.Create(ctx, c); err != nil {
		return err
	}

	r.cache.Delete(ctx, "court:list:")
	r.cache.Delete(ctx, "court:list:"+strings.ToLower(c.City))

	return nil
}

type cachedCourtByID struct {
	value  court.Court
	exists bool
}

type ProfileRepository struct {
	next  profile.Repository
	cache *basecache.Store
}

func NewProfileRepository(next profile.Repository, cache *basecache.Store) *ProfileRepository {
	return &ProfileRepository{next: next, cache: cache}
}

func (r *ProfileRepository) GetByID(ctx context.Context, profileID string) (profile.Profile, bool, error) {
	key := "profile:id:" + profileID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, profileID)
		if err != nil {
			return nil, err
		}
		return cachedProfileByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return profile.Profile{}, false, err
	}

	cached, _ := v.(cachedProfileByID)
	return cached.value, cached.exists, nil
}

// GetDisplayByIDs caches per id-set. Roster and feed reads repeat the same
// small sets, so the sorted joined key hits often enough to matter.
func (r *ProfileRepository) GetDisplayByIDs(ctx context.Context, profileIDs []string) (map[string]profile.Display, error) {
	sorted := append([]string(nil), profileIDs...)
	sort.Strings(sorted)
	key := "profile:display:" + strings.Join(sorted, ",")

	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return r.next.GetDisplayByIDs(ctx, profileIDs)
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.(map[string]profile.Display)
	out := make(map[string]profile.Display, len(items))
	for k, item := range items {
		out[k] = item
	}

	return out, nil
}

// Upsert writes through and invalidates the single-profile keys. Display-set
// keys age out on their own.
func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) error {
	if err := r.next.Upsert(ctx, p); err != nil {
		return err
	}

	r.cache.Delete(ctx, "profile:id:"+p.ID)

	return nil
}

type cachedProfileByID struct {
	value  profile.Profile
	exists bool
}

type ProductRepository struct {
	next  product.Repository
	cache *basecache.Store
}

func NewProductRepository(next product.Repository, cache *basecache.Store) *ProductRepository {
	return &ProductRepository{next: next, cache: cache}
}

func (r *ProductRepository) List(ctx context.Context, category string) ([]product.Product, error) {
	key := "product:list:" + strings.ToLower(category)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, category)
		if err != nil {
			return nil, err
		}
		return append([]product.Product(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]product.Product)
	return append([]product.Product(nil), items...), nil
}

func (r *ProductRepository) GetByID(ctx context.Context, productID string) (product.Product, bool, error) {
	key := "product:id:" + productID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		return cachedProductByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return product.Product{}, false, err
	}

	cached, _ := v.(cachedProductByID)
	return cached.value, cached.exists, nil
}

type cachedProductByID struct {
	value  product.Product
	exists bool
}
