package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Chatarreria-api/internal/application/audit"
	"github.com/jhoicas/Chatarreria-api/internal/application/dto"
	"github.com/jhoicas/Chatarreria-api/internal/domain"
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
	"github.com/jhoicas/Chatarreria-api/pkg/logger"
)

// ProductUseCase administra el catálogo de materiales del tenant.
type ProductUseCase struct {
	products repository.ProductRepository
	audit    *audit.Recorder
	log      *logger.Logger
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(products repository.ProductRepository, rec *audit.Recorder, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{products: products, audit: rec, log: log, now: time.Now}
}

// Create da de alta un material del inventario.
func (uc *ProductUseCase) Create(actorID, companyID string, req dto.CreateProductRequest) (*entity.Product, error) {
	if companyID == "" || req.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	unit := req.Unit
	if unit == "" {
		unit = "kg"
	}
	now := uc.now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      req.Name,
		Unit:      unit,
		Stock:     req.Stock,
		MinStock:  req.MinStock,
		MaxStock:  req.MaxStock,
		BuyPrice:  req.BuyPrice,
		SellPrice: req.SellPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	uc.audit.Record(actorID, "create_product", fmt.Sprintf("material %s creado", product.Name))
	return product, nil
}

// Update edita un material del tenant.
func (uc *ProductUseCase) Update(actorID, companyID, productID string, req dto.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.getOwned(companyID, productID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}
	if req.MaxStock != nil {
		product.MaxStock = *req.MaxStock
	}
	if req.BuyPrice != nil {
		product.BuyPrice = *req.BuyPrice
	}
	if req.SellPrice != nil {
		product.SellPrice = *req.SellPrice
	}
	product.UpdatedAt = uc.now()
	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	uc.audit.Record(actorID, "update_product", fmt.Sprintf("material %s actualizado", product.Name))
	return product, nil
}

// Delete elimina un material del tenant.
func (uc *ProductUseCase) Delete(actorID, companyID, productID string) error {
	product, err := uc.getOwned(companyID, productID)
	if err != nil {
		return err
	}
	if err := uc.products.Delete(productID); err != nil {
		return err
	}
	uc.audit.Record(actorID, "delete_product", fmt.Sprintf("material %s eliminado", product.Name))
	return nil
}

// List devuelve los materiales del tenant.
func (uc *ProductUseCase) List(companyID string) ([]*entity.Product, error) {
	return uc.products.ListByCompany(companyID)
}

// Get devuelve un material del tenant.
func (uc *ProductUseCase) Get(companyID, productID string) (*entity.Product, error) {
	return uc.getOwned(companyID, productID)
}

func (uc *ProductUseCase) getOwned(companyID, productID string) (*entity.Product, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return product, nil
}
