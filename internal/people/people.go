package people

import (
	"errors"
	"fmt"
	"sync"

	"pos-service/internal/models"
)

var ErrDuplicateID = errors.New("id already exists")

// Store holds the customer and supplier directories. Like the rest of the
// register state it is in-memory only; newly added entries are prepended so
// listings read newest-first.
type Store struct {
	mu        sync.RWMutex
	customers []models.Customer
	suppliers []models.Supplier
}

// NewStore creates a people store with the directory entries a demo shop
// ships with.
func NewStore() *Store {
	return &Store{
		customers: []models.Customer{
			{ID: "cust-1", Name: "Budi Santoso", Phone: "0812-3456-7890", Email: "budi.s@gmail.com", Points: 120},
			{ID: "cust-2", Name: "Siti Aminah", Phone: "0813-9876-5432", Points: 45},
			{ID: "cust-3", Name: "Rina Wijaya", Phone: "0817-2233-4455", Email: "rina.w@yahoo.com", Points: 250},
		},
		suppliers: []models.Supplier{
			{ID: "sup-1", Name: "CV Kopi Nusantara", ContactPerson: "Pak Hendra", Phone: "021-7654321", Address: "Jl. Raya Bogor KM 20, Jakarta Timur"},
			{ID: "sup-2", Name: "UD Sayur Segar", ContactPerson: "Bu Lastri", Phone: "0815-6677-8899", Address: "Pasar Induk Kramat Jati, Jakarta Timur"},
		},
	}
}

// Customers returns a snapshot of the customer directory, newest first.
func (s *Store) Customers() []models.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// AddCustomer prepends a customer to the directory.
func (s *Store) AddCustomer(c models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.customers {
		if existing.ID == c.ID {
			return fmt.Errorf("customer %s: %w", c.ID, ErrDuplicateID)
		}
	}
	s.customers = append([]models.Customer{c}, s.customers...)
	return nil
}

// Suppliers returns a snapshot of the supplier directory, newest first.
func (s *Store) Suppliers() []models.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Supplier, len(s.suppliers))
	copy(out, s.suppliers)
	return out
}

// AddSupplier prepends a supplier to the directory.
func (s *Store) AddSupplier(sp models.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.suppliers {
		if existing.ID == sp.ID {
			return fmt.Errorf("supplier %s: %w", sp.ID, ErrDuplicateID)
		}
	}
	s.suppliers = append([]models.Supplier{sp}, s.suppliers...)
	return nil
}
