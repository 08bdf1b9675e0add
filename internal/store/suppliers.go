package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"stockroom/internal/models"

	"github.com/google/uuid"
)

// SupplierStore holds the supplier directory
type SupplierStore struct {
	mu        sync.RWMutex
	suppliers map[string]models.Supplier
}

// NewSupplierStore creates an empty supplier directory
func NewSupplierStore() *SupplierStore {
	return &SupplierStore{suppliers: make(map[string]models.Supplier)}
}

// Add registers a supplier and assigns it an id
func (s *SupplierStore) Add(name, contactPerson, email, phone string) (models.Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Supplier{}, fmt.Errorf("%w: supplier name is required", models.ErrValidation)
	}

	sup := models.Supplier{
		ID:            uuid.New().String(),
		Name:          name,
		ContactPerson: strings.TrimSpace(contactPerson),
		Email:         strings.TrimSpace(email),
		Phone:         strings.TrimSpace(phone),
		CreatedAt:     time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers[sup.ID] = sup

	return sup, nil
}

// List returns suppliers sorted by name
func (s *SupplierStore) List() []models.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Supplier, 0, len(s.suppliers))
	for _, sup := range s.suppliers {
		out = append(out, sup)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Count returns the number of registered suppliers
func (s *SupplierStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.suppliers)
}
