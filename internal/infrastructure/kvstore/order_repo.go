package kvstore

import (
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
)

// Asegura que OrderRepo implementa repository.OrderRepository.
var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo adaptador de persistencia para órdenes sobre el almacén.
type OrderRepo struct {
	store *Store
}

// NewOrderRepository construye el adaptador de persistencia para órdenes.
func NewOrderRepository(store *Store) *OrderRepo {
	return &OrderRepo{store: store}
}

// Create persiste una nueva orden.
func (r *OrderRepo) Create(order *entity.Order) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, cloneOrder(*order))
	return s.persist(KeyOrders, s.orders)
}

// GetByID obtiene una orden por ID. Devuelve (nil, nil) si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			o := cloneOrder(s.orders[i])
			return &o, nil
		}
	}
	return nil, nil
}

// Update reemplaza la orden existente con el mismo ID.
func (r *OrderRepo) Update(order *entity.Order) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == order.ID {
			s.orders[i] = cloneOrder(*order)
			return s.persist(KeyOrders, s.orders)
		}
	}
	return nil
}

// Delete borrado duro, sin reversa de inventario ni de caja.
func (r *OrderRepo) Delete(id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.orders[:0]
	for _, o := range s.orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	s.orders = kept
	return s.persist(KeyOrders, s.orders)
}

// ListByCompany devuelve las órdenes del tenant; companyID vacío devuelve todas.
func (r *OrderRepo) ListByCompany(companyID string) ([]*entity.Order, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*entity.Order
	for i := range s.orders {
		if companyID == "" || s.orders[i].CompanyID == companyID {
			o := cloneOrder(s.orders[i])
			list = append(list, &o)
		}
	}
	return list, nil
}

// DeleteByCompany elimina todas las órdenes del tenant (cascada).
func (r *OrderRepo) DeleteByCompany(companyID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.orders[:0]
	for _, o := range s.orders {
		if o.CompanyID != companyID {
			kept = append(kept, o)
		}
	}
	s.orders = kept
	return s.persist(KeyOrders, s.orders)
}

// ReplaceCompany sustituye solo las órdenes del tenant indicado.
func (r *OrderRepo) ReplaceCompany(companyID string, orders []*entity.Order) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entity.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if o.CompanyID != companyID {
			next = append(next, o)
		}
	}
	for _, o := range orders {
		next = append(next, cloneOrder(*o))
	}
	s.orders = next
	return s.persist(KeyOrders, s.orders)
}

// ReplaceAll sustituye la colección completa (restauración global).
func (r *OrderRepo) ReplaceAll(orders []*entity.Order) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		next = append(next, cloneOrder(*o))
	}
	s.orders = next
	return s.persist(KeyOrders, s.orders)
}
