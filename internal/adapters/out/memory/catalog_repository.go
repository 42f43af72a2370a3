package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	catalogdom "storefront/internal/domain/catalog"
)

func (s *Store) CreateCategory(ctx context.Context, c catalogdom.Category) (string, error) {
	unlock := s.lock(ctx)
	defer unlock()

	c.ID = uuid.NewString()
	c.CreatedAt = s.serverTime()
	s.st.categories.put(c.ID, c)
	return c.ID, nil
}

func (s *Store) ListCategoriesByName(ctx context.Context) ([]catalogdom.Category, error) {
	unlock := s.lock(ctx)
	defer unlock()

	out := s.st.categories.list()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateProduct(ctx context.Context, p catalogdom.Product) (string, error) {
	unlock := s.lock(ctx)
	defer unlock()

	p.ID = uuid.NewString()
	p.CreatedAt = s.serverTime()
	s.st.products.put(p.ID, p)
	return p.ID, nil
}

// ImportProducts は商品をそのまま（createdAt を付与せず）保存します。
// createdAt の無い旧データの再現用。ID が空なら採番する。
func (s *Store) ImportProducts(ps ...catalogdom.Product) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		s.st.products.put(p.ID, p)
		ids = append(ids, p.ID)
	}
	return ids
}

// ListLatestProducts: createdAt を持たない商品は並び替え対象外。
// 対象が 1 件も無ければ ErrLatestOrderingUnavailable。
func (s *Store) ListLatestProducts(ctx context.Context, limit int) ([]catalogdom.Product, error) {
	unlock := s.lock(ctx)
	defer unlock()

	var stamped []catalogdom.Product
	for _, p := range s.st.products.list() {
		if !p.CreatedAt.IsZero() {
			stamped = append(stamped, p)
		}
	}
	if len(stamped) == 0 {
		return nil, catalogdom.ErrLatestOrderingUnavailable
	}

	sort.SliceStable(stamped, func(i, j int) bool {
		return stamped[i].CreatedAt.After(stamped[j].CreatedAt)
	})
	if limit > 0 && len(stamped) > limit {
		stamped = stamped[:limit]
	}
	return stamped, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]catalogdom.Product, error) {
	unlock := s.lock(ctx)
	defer unlock()

	return s.st.products.list(), nil
}

func (s *Store) ListProductsByCategory(ctx context.Context, category string) ([]catalogdom.Product, error) {
	unlock := s.lock(ctx)
	defer unlock()

	out := []catalogdom.Product{}
	for _, p := range s.st.products.list() {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}
