package catalog

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"pos-service/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateID    = errors.New("id already exists")
	ErrParentNotFound = errors.New("parent category not found")
	ErrCategoryCycle  = errors.New("category parent chain would cycle")
)

// Store holds the product catalog and category taxonomy in memory. Reads
// return copies so callers can never mutate store state through a snapshot.
type Store struct {
	mu         sync.RWMutex
	products   []models.Product
	categories []models.Category
}

// NewStore creates an empty catalog store.
func NewStore() *Store {
	return &Store{}
}

// Products returns a snapshot of all products, newest first.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyProducts(s.products)
}

// ProductsByCategory returns a snapshot of products in the given category.
func (s *Store) ProductsByCategory(category string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, copyProduct(p))
		}
	}
	return out
}

// ProductByID retrieves a product by ID
func (s *Store) ProductByID(id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return copyProduct(p), nil
		}
	}
	return models.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// AddProduct inserts a new product at the head of the catalog.
func (s *Store) AddProduct(p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.products {
		if existing.ID == p.ID {
			return fmt.Errorf("product %s: %w", p.ID, ErrDuplicateID)
		}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	s.products = append([]models.Product{copyProduct(p)}, s.products...)
	return nil
}

// DeleteProduct removes a product by ID.
func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// Categories returns a snapshot of the category taxonomy.
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// AddCategory inserts a new category. A non-empty ParentID must reference an
// existing category.
func (s *Store) AddCategory(c models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.ID == c.ID {
			return fmt.Errorf("category %s: %w", c.ID, ErrDuplicateID)
		}
	}
	if c.ParentID != "" && s.findCategory(c.ParentID) == nil {
		return fmt.Errorf("category %s parent %s: %w", c.ID, c.ParentID, ErrParentNotFound)
	}

	s.categories = append(s.categories, c)
	return nil
}

// UpdateCategory renames and/or re-parents an existing category. Re-parenting
// may not introduce a cycle in the parent chain.
func (s *Store) UpdateCategory(c models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.findCategory(c.ID)
	if target == nil {
		return fmt.Errorf("category %s: %w", c.ID, ErrNotFound)
	}
	if c.ParentID != "" {
		if s.findCategory(c.ParentID) == nil {
			return fmt.Errorf("category %s parent %s: %w", c.ID, c.ParentID, ErrParentNotFound)
		}
		// Walk up from the new parent; hitting the target means a cycle.
		seen := 0
		for cur := c.ParentID; cur != ""; {
			if cur == c.ID {
				return fmt.Errorf("category %s parent %s: %w", c.ID, c.ParentID, ErrCategoryCycle)
			}
			parent := s.findCategory(cur)
			if parent == nil {
				break
			}
			cur = parent.ParentID
			if seen++; seen > len(s.categories) {
				break
			}
		}
	}

	target.Name = c.Name
	target.ParentID = c.ParentID
	return nil
}

func (s *Store) findCategory(id string) *models.Category {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return &s.categories[i]
		}
	}
	return nil
}

func copyProduct(p models.Product) models.Product {
	out := p
	if p.Variants != nil {
		out.Variants = make([]models.Variant, len(p.Variants))
		copy(out.Variants, p.Variants)
	}
	return out
}

func copyProducts(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = copyProduct(p)
	}
	return out
}
