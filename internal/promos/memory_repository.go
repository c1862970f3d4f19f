package promos

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps promos in process memory. It backs STORE_DRIVER=memory and tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]Promo
	byCode map[string]uuid.UUID
}

func NewMemoryRepository(seed ...Promo) *MemoryRepository {
	r := &MemoryRepository{
		byID:   make(map[uuid.UUID]Promo),
		byCode: make(map[string]uuid.UUID),
	}
	for i := range seed {
		_ = r.Create(context.Background(), &seed[i])
	}
	return r
}

func (r *MemoryRepository) Create(_ context.Context, promo *Promo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_ = promo.BeforeSave(nil)
	if _, exists := r.byCode[promo.Code]; exists {
		return ErrDuplicateCode
	}
	now := time.Now().UTC()
	promo.CreatedAt, promo.UpdatedAt = now, now

	r.byID[promo.ID] = clonePromo(*promo)
	r.byCode[promo.Code] = promo.ID
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Promo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, ErrPromoNotFound
	}
	out := clonePromo(p)
	return &out, nil
}

func (r *MemoryRepository) FindByCode(_ context.Context, code string) (*Promo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCode[NormalizeCode(code)]
	if !ok {
		return nil, ErrPromoNotFound
	}
	out := clonePromo(r.byID[id])
	return &out, nil
}

func (r *MemoryRepository) List(_ context.Context, query ListQuery) ([]Promo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Promo, 0, len(r.byID))
	for _, p := range r.byID {
		if query.IsActive != nil && p.IsActive != *query.IsActive {
			continue
		}
		if query.DiscountType != "" && p.DiscountType != query.DiscountType {
			continue
		}
		out = append(out, clonePromo(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, promo *Promo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[promo.ID]
	if !ok {
		return ErrPromoNotFound
	}
	_ = promo.BeforeSave(nil)
	if owner, taken := r.byCode[promo.Code]; taken && owner != promo.ID {
		return ErrDuplicateCode
	}

	delete(r.byCode, current.Code)
	promo.UpdatedAt = time.Now().UTC()
	r.byID[promo.ID] = clonePromo(*promo)
	r.byCode[promo.Code] = promo.ID
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return ErrPromoNotFound
	}
	delete(r.byID, id)
	delete(r.byCode, p.Code)
	return nil
}

func clonePromo(p Promo) Promo {
	if p.ApplicableEvents != nil {
		p.ApplicableEvents = append([]string(nil), p.ApplicableEvents...)
	}
	return p
}

var _ Repository = (*MemoryRepository)(nil)
