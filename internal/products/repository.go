package products

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("product not found")

// Repository is the single owner of the tracker State. Every change goes
// through the reducers while holding the write lock; readers receive slices
// that are never written to afterwards.
type Repository struct {
	mu    sync.RWMutex
	state State
	env   Env
}

func NewRepository(env Env) *Repository {
	return &Repository{env: env}
}

// InsertProduct adds a product for url. Validation failures come back as
// *ValidationError and leave the list unchanged.
func (r *Repository) InsertProduct(ctx context.Context, url string) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(url)
}

// UpsertProduct rechecks the product already tracked under url, or adds it
// when there is none. existed reports which of the two happened.
func (r *Repository) UpsertProduct(ctx context.Context, url string) (p Product, existed bool, err error) {
	if err := ctx.Err(); err != nil {
		return Product{}, false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, known := range r.state.Products {
		if known.URL == url {
			p, err = r.check(known.ID)
			return p, true, err
		}
	}
	p, err = r.insert(url)
	return p, false, err
}

func (r *Repository) insert(url string) (Product, error) {
	next := AddProduct(r.state, url, r.env)
	if next.Error != "" {
		return Product{}, &ValidationError{Message: next.Error}
	}
	r.state = next
	return next.Products[0], nil
}

func (r *Repository) GetProducts(ctx context.Context, c Criteria) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	list := r.state.Products
	r.mu.RUnlock()
	return Filter(list, c), nil
}

func (r *Repository) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.state.Products {
		if r.state.Products[i].ID == id {
			p := r.state.Products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// CheckPrice rechecks one product and returns its updated record.
func (r *Repository) CheckPrice(ctx context.Context, id int64) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.check(id)
}

func (r *Repository) check(id int64) (Product, error) {
	next, ok := CheckPrice(r.state, id, r.env)
	if !ok {
		return Product{}, ErrNotFound
	}
	r.state = next
	for _, p := range next.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// GetPriceHistory returns the samples of one product, oldest first (chart order).
func (r *Repository) GetPriceHistory(ctx context.Context, id int64) ([]PriceHistory, error) {
	p, err := r.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.PriceHistory, nil
}

func (r *Repository) GetAllProductIDs(ctx context.Context) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.state.Products))
	for _, p := range r.state.Products {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// Count is the number of tracked products.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.state.Products)
}
