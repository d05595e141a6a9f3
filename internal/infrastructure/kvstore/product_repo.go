package kvstore

import (
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
)

// Asegura que ProductRepo implementa repository.ProductRepository.
var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo adaptador de persistencia para productos sobre el almacén.
type ProductRepo struct {
	store *Store
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, *product)
	return s.persist(KeyProducts, s.products)
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

// Update reemplaza el producto existente con el mismo ID.
func (r *ProductRepo) Update(product *entity.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == product.ID {
			s.products[i] = *product
			return s.persist(KeyProducts, s.products)
		}
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	return s.persist(KeyProducts, s.products)
}

// ListByCompany devuelve los productos del tenant; companyID vacío devuelve todos.
func (r *ProductRepo) ListByCompany(companyID string) ([]*entity.Product, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*entity.Product
	for i := range s.products {
		if companyID == "" || s.products[i].CompanyID == companyID {
			p := s.products[i]
			list = append(list, &p)
		}
	}
	return list, nil
}

// DeleteByCompany elimina todos los productos del tenant (cascada).
func (r *ProductRepo) DeleteByCompany(companyID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.CompanyID != companyID {
			kept = append(kept, p)
		}
	}
	s.products = kept
	return s.persist(KeyProducts, s.products)
}

// ReplaceCompany sustituye solo los productos del tenant indicado.
func (r *ProductRepo) ReplaceCompany(companyID string, products []*entity.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.CompanyID != companyID {
			next = append(next, p)
		}
	}
	for _, p := range products {
		next = append(next, *p)
	}
	s.products = next
	return s.persist(KeyProducts, s.products)
}

// ReplaceAll sustituye la colección completa (restauración global).
func (r *ProductRepo) ReplaceAll(products []*entity.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entity.Product, 0, len(products))
	for _, p := range products {
		next = append(next, *p)
	}
	s.products = next
	return s.persist(KeyProducts, s.products)
}
