package orders

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Chatarreria-api/internal/application/audit"
	"github.com/jhoicas/Chatarreria-api/internal/application/dto"
	"github.com/jhoicas/Chatarreria-api/internal/domain"
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
	"github.com/jhoicas/Chatarreria-api/pkg/logger"
)

// UseCase administra órdenes de compra y venta de material. El pago es el
// único punto donde una orden toca caja e inventario; crear y cancelar no
// producen efectos colaterales.
type UseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	partners repository.PartnerRepository
	sessions repository.CashSessionRepository
	txs      repository.TransactionRepository
	audit    *audit.Recorder
	log      *logger.Logger
	// allowNegativeStock permite que una venta deje stock negativo
	// (chatarra pesada en patio sin registrar todavía).
	allowNegativeStock bool
	now                func() time.Time
}

// New construye el caso de uso de órdenes.
func New(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	partners repository.PartnerRepository,
	sessions repository.CashSessionRepository,
	txs repository.TransactionRepository,
	rec *audit.Recorder,
	log *logger.Logger,
	allowNegativeStock bool,
) *UseCase {
	return &UseCase{
		orders: orders, products: products, partners: partners,
		sessions: sessions, txs: txs, audit: rec, log: log,
		allowNegativeStock: allowNegativeStock, now: time.Now,
	}
}

// Create registra una orden pendiente. Cada línea copia el nombre del
// producto y congela el precio unitario: si el request no trae precio se
// toma el de compra o venta del producto según el tipo de la orden.
func (uc *UseCase) Create(actorID, companyID string, req dto.CreateOrderRequest) (*entity.Order, error) {
	if companyID == "" || len(req.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if req.Type != entity.OrderBuy && req.Type != entity.OrderSell {
		return nil, domain.ErrInvalidInput
	}
	if req.PartnerID != "" {
		partner, err := uc.partners.GetByID(req.PartnerID)
		if err != nil {
			return nil, err
		}
		if partner == nil || partner.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
	}

	items := make([]entity.OrderItem, 0, len(req.Items))
	total := decimal.Zero
	for _, line := range req.Items {
		if !line.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.products.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		price := line.UnitPrice
		if price.IsZero() {
			if req.Type == entity.OrderBuy {
				price = product.BuyPrice
			} else {
				price = product.SellPrice
			}
		}
		subtotal := line.Quantity.Mul(price)
		items = append(items, entity.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   price,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
	}

	order := &entity.Order{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Type:       req.Type,
		Status:     entity.OrderPending,
		PartnerID:  req.PartnerID,
		Items:      items,
		TotalValue: total,
		CreatedAt:  uc.now(),
	}
	if err := uc.orders.Create(order); err != nil {
		return nil, err
	}
	uc.audit.Record(actorID, "create_order",
		fmt.Sprintf("orden %s de %s creada por %s", order.Type, order.ID, total.StringFixed(2)))
	return order, nil
}

// ProcessPayment paga una orden pendiente: registra el movimiento de caja
// (salida si es compra, entrada si es venta) sobre la sesión abierta y
// ajusta el stock de cada producto. Valida todo antes de aplicar nada para
// que un rechazo no deje efectos a medias.
func (uc *UseCase) ProcessPayment(actorID, companyID, orderID string, req dto.PayOrderRequest) (*entity.Order, error) {
	if !entity.ValidPaymentMethod(req.PaymentMethod) {
		return nil, domain.ErrInvalidMethod
	}
	order, err := uc.getOwned(companyID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderPending {
		return nil, domain.ErrOrderNotPending
	}
	session, err := uc.sessions.GetOpenByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrRegisterClosed
	}

	// Primera pasada: cargar productos y validar stock.
	loaded := make([]*entity.Product, len(order.Items))
	for i, item := range order.Items {
		product, err := uc.products.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		if order.Type == entity.OrderSell && !uc.allowNegativeStock {
			if product.Stock.Sub(item.Quantity).IsNegative() {
				return nil, domain.ErrInsufficientStock
			}
		}
		loaded[i] = product
	}

	txType := entity.TransactionIn
	category := "venta"
	if order.Type == entity.OrderBuy {
		txType = entity.TransactionOut
		category = "compra"
	}
	tx := &entity.Transaction{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		SessionID:     session.ID,
		Type:          txType,
		PaymentMethod: req.PaymentMethod,
		Amount:        order.TotalValue,
		Category:      category,
		Description:   fmt.Sprintf("pago de orden %s", order.ID),
		OrderID:       order.ID,
		CreatedAt:     uc.now(),
	}
	if err := uc.txs.Create(tx); err != nil {
		return nil, err
	}

	now := uc.now()
	for i, item := range order.Items {
		product := loaded[i]
		if order.Type == entity.OrderBuy {
			product.Stock = product.Stock.Add(item.Quantity)
		} else {
			product.Stock = product.Stock.Sub(item.Quantity)
		}
		product.UpdatedAt = now
		if err := uc.products.Update(product); err != nil {
			return nil, fmt.Errorf("ajustar stock de %s: %w", product.ID, err)
		}
	}

	order.Status = entity.OrderPaid
	order.PaymentMethod = req.PaymentMethod
	order.PaidAt = &now
	if err := uc.orders.Update(order); err != nil {
		return nil, err
	}
	uc.audit.Record(actorID, "pay_order",
		fmt.Sprintf("orden %s pagada por %s vía %s", order.ID, order.TotalValue.StringFixed(2), req.PaymentMethod))
	return order, nil
}

// Cancel pasa una orden pendiente a cancelada. No toca caja ni inventario.
func (uc *UseCase) Cancel(actorID, companyID, orderID string) (*entity.Order, error) {
	order, err := uc.getOwned(companyID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderPending {
		return nil, domain.ErrOrderNotPending
	}
	order.Status = entity.OrderCancelled
	if err := uc.orders.Update(order); err != nil {
		return nil, err
	}
	uc.audit.Record(actorID, "cancel_order", fmt.Sprintf("orden %s cancelada", order.ID))
	return order, nil
}

// Delete borra una orden de forma definitiva, en cualquier estado. Los
// efectos de un pago previo (caja, stock) NO se revierten; el movimiento
// de caja conserva la referencia a la orden borrada.
func (uc *UseCase) Delete(actorID, companyID, orderID string) error {
	order, err := uc.getOwned(companyID, orderID)
	if err != nil {
		return err
	}
	if err := uc.orders.Delete(orderID); err != nil {
		return err
	}
	uc.audit.Record(actorID, "delete_order", fmt.Sprintf("orden %s (%s) borrada", order.ID, order.Status))
	return nil
}

// List devuelve las órdenes del tenant.
func (uc *UseCase) List(companyID string) ([]*entity.Order, error) {
	return uc.orders.ListByCompany(companyID)
}

// Get devuelve una orden del tenant.
func (uc *UseCase) Get(companyID, orderID string) (*entity.Order, error) {
	return uc.getOwned(companyID, orderID)
}

func (uc *UseCase) getOwned(companyID, orderID string) (*entity.Order, error) {
	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}
