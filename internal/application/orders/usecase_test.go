package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Chatarreria-api/internal/application/audit"
	"github.com/jhoicas/Chatarreria-api/internal/application/dto"
	"github.com/jhoicas/Chatarreria-api/internal/application/orders"
	"github.com/jhoicas/Chatarreria-api/internal/domain"
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/Chatarreria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type orderFixture struct {
	uc       *orders.UseCase
	products *kvstore.ProductRepo
	sessions *kvstore.CashSessionRepo
	txs      *kvstore.TransactionRepo
}

func newOrderFixture(t *testing.T, allowNegativeStock bool) *orderFixture {
	t.Helper()
	store, err := kvstore.Open(context.Background(), kvstore.NewMemoryBackend(), kvstore.SeedConfig{})
	require.NoError(t, err)

	products := kvstore.NewProductRepository(store)
	partners := kvstore.NewPartnerRepository(store)
	sessions := kvstore.NewCashSessionRepository(store)
	txs := kvstore.NewTransactionRepository(store)
	rec := audit.NewRecorder(kvstore.NewActionLogRepository(store), logger.Nop())

	uc := orders.New(
		kvstore.NewOrderRepository(store),
		products, partners, sessions, txs,
		rec, logger.Nop(), allowNegativeStock,
	)
	f := &orderFixture{uc: uc, products: products, sessions: sessions, txs: txs}

	now := time.Now()
	require.NoError(t, products.Create(&entity.Product{
		ID: "cobre", CompanyID: "c1", Name: "Cobre", Unit: "kg",
		Stock:    decimal.NewFromInt(100),
		BuyPrice: decimal.NewFromInt(20), SellPrice: decimal.NewFromInt(30),
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, partners.Create(&entity.Partner{
		ID: "prov", CompanyID: "c1", Type: entity.PartnerSupplier,
		Name: "Recicladora del Sur", CreatedAt: now, UpdatedAt: now,
	}))
	return f
}

func (f *orderFixture) openRegister(t *testing.T) *entity.CashSession {
	t.Helper()
	session := &entity.CashSession{
		ID: "ses-1", CompanyID: "c1", OpenedBy: "u1",
		Status: entity.SessionOpen, InitialAmount: decimal.NewFromInt(500),
		OpenedAt: time.Now(),
	}
	require.NoError(t, f.sessions.Create(session))
	return session
}

func (f *orderFixture) stock(t *testing.T, productID string) decimal.Decimal {
	t.Helper()
	p, err := f.products.GetByID(productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación: precios congelados, totales calculados
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_TomaElPrecioDelProducto(t *testing.T) {
	f := newOrderFixture(t, true)

	buy, err := f.uc.Create("u1", "c1", dto.CreateOrderRequest{
		Type: entity.OrderBuy, PartnerID: "prov",
		Items: []dto.OrderItemRequest{{ProductID: "cobre", Quantity: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, buy.Status)
	require.Len(t, buy.Items, 1)
	assert.True(t, buy.Items[0].UnitPrice.Equal(decimal.NewFromInt(20)),
		"sin precio explícito, una compra toma el precio de compra")
	assert.True(t, buy.TotalValue.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "Cobre", buy.Items[0].ProductName, "el nombre queda congelado en la línea")

	sell, err := f.uc.Create("u1", "c1", dto.CreateOrderRequest{
		Type:  entity.OrderSell,
		Items: []dto.OrderItemRequest{{ProductID: "cobre", Quantity: decimal.NewFromInt(5)}},
	})
	require.NoError(t, err)
	assert.True(t, sell.TotalValue.Equal(decimal.NewFromInt(150)),
		"una venta toma el precio de venta")

	// Crear no toca el inventario.
	assert.True(t, f.stock(t, "cobre").Equal(decimal.NewFromInt(100)))
}

func TestCreate_PrecioExplicitoGana(t *testing.T) {
	f := newOrderFixture(t, true)
	out, err := f.uc.Create("u1", "c1", dto.CreateOrderRequest{
		Type: entity.OrderBuy,
		Items: []dto.OrderItemRequest{{
			ProductID: "cobre", Quantity: decimal.NewFromInt(10),
			UnitPrice: decimal.NewFromInt(18),
		}},
	})
	require.NoError(t, err)
	assert.True(t, out.TotalValue.Equal(decimal.NewFromInt(180)))
}

func TestCreate_Validaciones(t *testing.T) {
	f := newOrderFixture(t, true)

	_, err := f.uc.Create("u1", "c1", dto.CreateOrderRequest{Type: entity.OrderBuy})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas no hay orden")

	_, err = f.uc.Create("u1", "c1", dto.CreateOrderRequest{
		Type:  "trueque",
		Items: []dto.OrderItemRequest{{ProductID: "cobre", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create("u1", "c1", dto.CreateOrderRequest{
		Type:  entity.OrderBuy,
		Items: []dto.OrderItemRequest{{ProductID: "no-existe", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Producto de otro tenant: invisible.
	_, err = f.uc.Create("u1", "c2", dto.CreateOrderRequest{
		Type:  entity.OrderBuy,
		Items: []dto.OrderItemRequest{{ProductID: "cobre", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pago: caja + inventario en un solo paso
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessPayment_CompraSacaDineroYEntraStock(t *testing.T) {
	f := newOrderFixture(t, true)
	session := f.openRegister(t)

	order, err := f.uc.Create("u1", "c1", dto.CreateOrderRequest{
		Type: entity.OrderBuy, PartnerID: "prov",
		Items: []dto.OrderItemRequest{{ProductID: "cobre", Quantity: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	paid, err := f.uc.ProcessPayment("u1", "c1", order.ID, dto.PayOrderRequest{PaymentMethod: entity.MethodMoney})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPaid, paid.Status)
	assert.Equal(t, entity.MethodMoney, paid.PaymentMethod)
	require.NotNil(t, paid.PaidAt)

	assert.True(t, f.stock(t, "cobre").Equal(decimal.NewFromInt(110)), "la compra suma stock")

	txs, err := f.txs.ListBySession(session.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TransactionOut, txs[0].Type, "comprar chatarra saca dinero de caja")
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, order.ID, txs[0].OrderID)
}

func TestProcessPayment_VentaEntraDineroYSaleStock(t *testing.T) {
	f := newOrderFixture(t, true)
	session := f.openRegister(t)

	order, err := f.uc.Create("u1", "c1", dto.CreateOrderRequest{
		Type:  entity.OrderSell,
		Items: []dto.OrderItemRequest{{ProductID: "cobre", Quantity: decimal.NewFromInt(4)}},
	})
	require.NoError(t, err)

	_, err = f.uc.ProcessPayment("u1", "c1", order.ID, dto.PayOrderRequest{PaymentMethod: entity.MethodPix})
	require.NoError(t, err)

	assert.True(t, f.stock(t, "cobre").Equal(decimal.NewFromInt(96)))

	txs, err := f.txs.ListBySession(session.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TransactionIn, txs[0].Type)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(120)))
}

func TestProcessPayment_RequiereCajaAbierta(t *testing.T) {
	f := newOrderFixture(t, true)
	order, err := f.uc.Create("u1", "c1", dto.CreateOrderRequest{
		Type:  entity.OrderSell,
		Items: []dto.OrderItemRequest{{ProductID: "cobre", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	_, err = f.uc.ProcessPayment("u1", "c1", order.ID, dto.PayOrderRequest{PaymentMethod: entity.MethodMoney})
	assert.ErrorIs(t, err, domain.ErrRegisterClosed)
	assert.True(t, f.stock(t, "cobre").Equal(decimal.NewFromInt(100)), "el rechazo no deja efectos")
}

func TestProcessPayment_SoloOrdenesPendientes(t *testing.T) {
	f := newOrderFixture(t, true)
	f.openRegister(t)

	order, err := f.uc.Create("u1", "c1", dto.CreateOrderRequest{
		Type:  entity.OrderSell,
		Items: []dto.OrderItemRequest{{ProductID: "cobre", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	_, err = f.uc.ProcessPayment("u1", "c1", order.ID, dto.PayOrderRequest{PaymentMethod: entity.MethodMoney})
	require.NoError(t, err)

	// Pagar dos veces no duplica efectos.
	_, err = f.uc.ProcessPayment("u1", "c1", order.ID, dto.PayOrderRequest{PaymentMethod: entity.MethodMoney})
	assert.ErrorIs(t, err, domain.ErrOrderNotPending)
	assert.True(t, f.stock(t, "cobre").Equal(decimal.NewFromInt(99)))
}

func TestProcessPayment_MetodoInvalido(t *testing.T) {
	f := newOrderFixture(t, true)
	f.openRegister(t)
	order, err := f.uc.Create("u1", "c1", dto.CreateOrderRequest{
		Type:  entity.OrderSell,
		Items: []dto.OrderItemRequest{{ProductID: "cobre", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	_, err = f.uc.ProcessPayment("u1", "c1", order.ID, dto.PayOrderRequest{PaymentMethod: "fiado"})
	assert.ErrorIs(t, err, domain.ErrInvalidMethod)
}

// ──────────────────────────────────────────────────────────────────────────────
// Política de stock negativo
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessPayment_StockNegativoPermitido(t *testing.T) {
	f := newOrderFixture(t, true)
	f.openRegister(t)

	order, err := f.uc.Create("u1", "c1", dto.CreateOrderRequest{
		Type:  entity.OrderSell,
		Items: []dto.OrderItemRequest{{ProductID: "cobre", Quantity: decimal.NewFromInt(150)}},
	})
	require.NoError(t, err)

	_, err = f.uc.ProcessPayment("u1", "c1", order.ID, dto.PayOrderRequest{PaymentMethod: entity.MethodMoney})
	require.NoError(t, err, "con la política permisiva la venta pasa")
	assert.True(t, f.stock(t, "cobre").Equal(decimal.NewFromInt(-50)),
		"el stock queda negativo (material en patio sin registrar)")
}

func TestProcessPayment_StockNegativoRechazado(t *testing.T) {
	f := newOrderFixture(t, false)
	session := f.openRegister(t)

	order, err := f.uc.Create("u1", "c1", dto.CreateOrderRequest{
		Type:  entity.OrderSell,
		Items: []dto.OrderItemRequest{{ProductID: "cobre", Quantity: decimal.NewFromInt(150)}},
	})
	require.NoError(t, err)

	_, err = f.uc.ProcessPayment("u1", "c1", order.ID, dto.PayOrderRequest{PaymentMethod: entity.MethodMoney})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Todo o nada: ni stock, ni caja, ni estado de la orden.
	assert.True(t, f.stock(t, "cobre").Equal(decimal.NewFromInt(100)))
	txs, err := f.txs.ListBySession(session.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)
	stored, err := f.uc.Get("c1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, stored.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_SoloPendientesYSinEfectos(t *testing.T) {
	f := newOrderFixture(t, true)
	f.openRegister(t)

	order, err := f.uc.Create("u1", "c1", dto.CreateOrderRequest{
		Type:  entity.OrderSell,
		Items: []dto.OrderItemRequest{{ProductID: "cobre", Quantity: decimal.NewFromInt(5)}},
	})
	require.NoError(t, err)

	cancelled, err := f.uc.Cancel("u1", "c1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, cancelled.Status)
	assert.True(t, f.stock(t, "cobre").Equal(decimal.NewFromInt(100)), "cancelar no toca inventario")

	_, err = f.uc.Cancel("u1", "c1", order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotPending, "cancelled es terminal")
	_, err = f.uc.ProcessPayment("u1", "c1", order.ID, dto.PayOrderRequest{PaymentMethod: entity.MethodMoney})
	assert.ErrorIs(t, err, domain.ErrOrderNotPending)
}

func TestDelete_DuroSinReversa(t *testing.T) {
	f := newOrderFixture(t, true)
	session := f.openRegister(t)

	order, err := f.uc.Create("u1", "c1", dto.CreateOrderRequest{
		Type:  entity.OrderSell,
		Items: []dto.OrderItemRequest{{ProductID: "cobre", Quantity: decimal.NewFromInt(5)}},
	})
	require.NoError(t, err)
	_, err = f.uc.ProcessPayment("u1", "c1", order.ID, dto.PayOrderRequest{PaymentMethod: entity.MethodMoney})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete("u1", "c1", order.ID))

	_, err = f.uc.Get("c1", order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	// El borrado no revierte los efectos del pago.
	assert.True(t, f.stock(t, "cobre").Equal(decimal.NewFromInt(95)))
	txs, err := f.txs.ListBySession(session.ID)
	require.NoError(t, err)
	assert.Len(t, txs, 1, "el movimiento de caja conserva la referencia a la orden borrada")
}
