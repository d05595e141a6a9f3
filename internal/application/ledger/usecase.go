package ledger

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

// UseCase administra la caja del tenant: sesiones (turnos), movimientos
// inmutables y la conciliación por método de pago al cierre.
type UseCase struct {
	sessions repository.CashSessionRepository
	txs      repository.TransactionRepository
	audit    *audit.Recorder
	log      *logger.Logger
	now      func() time.Time
}

// New construye el caso de uso de caja.
func New(sessions repository.CashSessionRepository, txs repository.TransactionRepository, rec *audit.Recorder, log *logger.Logger) *UseCase {
	return &UseCase{sessions: sessions, txs: txs, audit: rec, log: log, now: time.Now}
}

// OpenRegister abre una sesión de caja con el fondo inicial. Si ya hay una
// sesión abierta la devuelve sin crear otra; sin tenant (operador de
// plataforma) no hace nada. Ambos casos son silenciosos a propósito: la
// apertura se dispara también al entrar a la pantalla de caja.
func (uc *UseCase) OpenRegister(actorID, companyID string, initialAmount decimal.Decimal) (*entity.CashSession, error) {
	if companyID == "" {
		return nil, nil
	}
	open, err := uc.sessions.GetOpenByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return open, nil
	}
	if initialAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	session := &entity.CashSession{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		OpenedBy:      actorID,
		Status:        entity.SessionOpen,
		InitialAmount: initialAmount,
		OpenedAt:      uc.now(),
	}
	if err := uc.sessions.Create(session); err != nil {
		return nil, err
	}
	uc.audit.Record(actorID, "open_register", fmt.Sprintf("caja abierta con fondo %s", initialAmount.StringFixed(2)))
	return session, nil
}

// CurrentSession devuelve la sesión abierta del tenant, o nil.
func (uc *UseCase) CurrentSession(companyID string) (*entity.CashSession, error) {
	return uc.sessions.GetOpenByCompany(companyID)
}

// ListSessions devuelve el historial de sesiones del tenant.
func (uc *UseCase) ListSessions(companyID string) ([]*entity.CashSession, error) {
	return uc.sessions.ListByCompany(companyID)
}

// ListTransactions devuelve los movimientos del tenant.
func (uc *UseCase) ListTransactions(companyID string) ([]*entity.Transaction, error) {
	return uc.txs.ListByCompany(companyID)
}

// ListSessionTransactions devuelve los movimientos de una sesión del tenant.
func (uc *UseCase) ListSessionTransactions(companyID, sessionID string) ([]*entity.Transaction, error) {
	session, err := uc.sessions.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return uc.txs.ListBySession(sessionID)
}

// CloseRegister cierra la sesión abierta conciliando cada método de pago:
// esperado = entradas − salidas del método durante la sesión, más el fondo
// inicial solo para efectivo; diferencia = contado − esperado (firmada).
// Los métodos ausentes en counted cuentan como cero. La foto de
// conciliación queda en la sesión de forma permanente.
func (uc *UseCase) CloseRegister(actorID, companyID string, req dto.CloseRegisterRequest) (*entity.CashSession, error) {
	for method := range req.Counted {
		if !entity.ValidPaymentMethod(method) {
			return nil, domain.ErrInvalidMethod
		}
	}
	session, err := uc.sessions.GetOpenByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrRegisterClosed
	}

	txs, err := uc.txs.ListBySession(session.ID)
	if err != nil {
		return nil, err
	}
	expected := make(map[string]decimal.Decimal, len(entity.PaymentMethods))
	for _, tx := range txs {
		switch tx.Type {
		case entity.TransactionIn:
			expected[tx.PaymentMethod] = expected[tx.PaymentMethod].Add(tx.Amount)
		case entity.TransactionOut:
			expected[tx.PaymentMethod] = expected[tx.PaymentMethod].Sub(tx.Amount)
		}
	}
	expected[entity.MethodMoney] = expected[entity.MethodMoney].Add(session.InitialAmount)

	var totalCounted, totalExpected decimal.Decimal
	details := make([]entity.ClosingDetail, 0, len(entity.PaymentMethods))
	for _, method := range entity.PaymentMethods {
		exp := expected[method]
		counted := req.Counted[method]
		details = append(details, entity.ClosingDetail{
			Method:     method,
			Expected:   exp,
			Counted:    counted,
			Difference: counted.Sub(exp),
		})
		totalCounted = totalCounted.Add(counted)
		totalExpected = totalExpected.Add(exp)
	}

	closedAt := uc.now()
	session.Status = entity.SessionClosed
	session.FinalAmount = totalCounted
	session.CalculatedAmount = totalExpected
	session.ClosingDetails = details
	session.ClosedAt = &closedAt
	if err := uc.sessions.Update(session); err != nil {
		return nil, err
	}
	uc.audit.Record(actorID, "close_register",
		fmt.Sprintf("caja cerrada: contado %s, esperado %s", totalCounted.StringFixed(2), totalExpected.StringFixed(2)))
	return session, nil
}

// AddManualTransaction registra un movimiento manual de caja sobre la
// sesión abierta. Requiere autorización reforzada en la capa HTTP.
func (uc *UseCase) AddManualTransaction(actorID, companyID string, req dto.ManualTransactionRequest) (*entity.Transaction, error) {
	if req.Type != entity.TransactionIn && req.Type != entity.TransactionOut {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidPaymentMethod(req.PaymentMethod) {
		return nil, domain.ErrInvalidMethod
	}
	if !req.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	session, err := uc.sessions.GetOpenByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrRegisterClosed
	}
	tx := &entity.Transaction{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		SessionID:     session.ID,
		Type:          req.Type,
		PaymentMethod: req.PaymentMethod,
		Amount:        req.Amount,
		Category:      req.Category,
		Description:   req.Description,
		CreatedAt:     uc.now(),
	}
	if err := uc.txs.Create(tx); err != nil {
		return nil, err
	}
	uc.audit.Record(actorID, "manual_transaction",
		fmt.Sprintf("movimiento manual %s de %s por %s", req.Type, req.Amount.StringFixed(2), req.PaymentMethod))
	return tx, nil
}
