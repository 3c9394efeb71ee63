package dto

import (
	"github.com/shopspring/decimal"

	"manufacturing-system/internal/database/models"
)

// Create and update share one request shape: updates replace the whole
// record, so optional fields left out are cleared.

// --- Plant ---

type PlantRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
	Capacity *int32  `json:"capacity"`
}

func (r PlantRequest) ToModel() models.Plant {
	return models.Plant{Name: r.Name, Location: r.Location, Capacity: r.Capacity}
}

type PlantResponse struct {
	ID int64 `json:"id"`
	PlantRequest
}

func NewPlantResponse(m models.Plant) PlantResponse {
	return PlantResponse{
		ID:           m.ID,
		PlantRequest: PlantRequest{Name: m.Name, Location: m.Location, Capacity: m.Capacity},
	}
}

// --- Product ---

type ProductRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description *string             `json:"description"`
	Category    *string             `json:"category"`
	Price       decimal.NullDecimal `json:"price" binding:"numeric10_2"`
}

func (r ProductRequest) ToModel() models.Product {
	return models.Product{Name: r.Name, Description: r.Description, Category: r.Category, Price: r.Price}
}

type ProductResponse struct {
	ID int64 `json:"id"`
	ProductRequest
}

func NewProductResponse(m models.Product) ProductResponse {
	return ProductResponse{
		ID: m.ID,
		ProductRequest: ProductRequest{
			Name:        m.Name,
			Description: m.Description,
			Category:    m.Category,
			Price:       m.Price,
		},
	}
}

// --- Material ---

type MaterialRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description *string             `json:"description"`
	Unit        *string             `json:"unit"`
	Cost        decimal.NullDecimal `json:"cost" binding:"numeric10_2"`
}

func (r MaterialRequest) ToModel() models.Material {
	return models.Material{Name: r.Name, Description: r.Description, Unit: r.Unit, Cost: r.Cost}
}

type MaterialResponse struct {
	ID int64 `json:"id"`
	MaterialRequest
}

func NewMaterialResponse(m models.Material) MaterialResponse {
	return MaterialResponse{
		ID: m.ID,
		MaterialRequest: MaterialRequest{
			Name:        m.Name,
			Description: m.Description,
			Unit:        m.Unit,
			Cost:        m.Cost,
		},
	}
}

// --- Order ---

type OrderRequest struct {
	OrderDate    string    `json:"order_date" binding:"required,timestamp"`
	Status       string    `json:"status" binding:"required"`
	CustomerName *string   `json:"customer_name"`
}

func (r OrderRequest) ToModel() models.Order {
	// OrderDate has passed the timestamp rule by the time a model is built.
	date, _ := ParseTimestamp(r.OrderDate)
	return models.Order{OrderDate: date, Status: r.Status, CustomerName: r.CustomerName}
}

type OrderResponse struct {
	ID int64 `json:"id"`
	OrderRequest
}

func NewOrderResponse(m models.Order) OrderResponse {
	return OrderResponse{
		ID:           m.ID,
		OrderRequest: OrderRequest{OrderDate: FormatTimestamp(m.OrderDate), Status: m.Status, CustomerName: m.CustomerName},
	}
}

// --- PlantProduct ---

type PlantProductRequest struct {
	PlantID   int64  `json:"plant_id" binding:"required"`
	ProductID int64  `json:"product_id" binding:"required"`
	Quantity  *int32 `json:"quantity"`
}

func (r PlantProductRequest) ToModel() models.PlantProduct {
	return models.PlantProduct{PlantID: r.PlantID, ProductID: r.ProductID, Quantity: r.Quantity}
}

type PlantProductResponse struct {
	ID int64 `json:"id"`
	PlantProductRequest
}

func NewPlantProductResponse(m models.PlantProduct) PlantProductResponse {
	return PlantProductResponse{
		ID:                  m.ID,
		PlantProductRequest: PlantProductRequest{PlantID: m.PlantID, ProductID: m.ProductID, Quantity: m.Quantity},
	}
}

// --- PlantMaterial ---

type PlantMaterialRequest struct {
	PlantID    int64               `json:"plant_id" binding:"required"`
	MaterialID int64               `json:"material_id" binding:"required"`
	Quantity   decimal.NullDecimal `json:"quantity" binding:"numeric10_2"`
}

func (r PlantMaterialRequest) ToModel() models.PlantMaterial {
	return models.PlantMaterial{PlantID: r.PlantID, MaterialID: r.MaterialID, Quantity: r.Quantity}
}

type PlantMaterialResponse struct {
	ID int64 `json:"id"`
	PlantMaterialRequest
}

func NewPlantMaterialResponse(m models.PlantMaterial) PlantMaterialResponse {
	return PlantMaterialResponse{
		ID:                   m.ID,
		PlantMaterialRequest: PlantMaterialRequest{PlantID: m.PlantID, MaterialID: m.MaterialID, Quantity: m.Quantity},
	}
}

// --- ProductMaterial ---

type ProductMaterialRequest struct {
	ProductID  int64  `json:"product_id" binding:"required"`
	MaterialID int64  `json:"material_id" binding:"required"`
	Quantity   *int32 `json:"quantity" binding:"required"`
}

func (r ProductMaterialRequest) ToModel() models.ProductMaterial {
	return models.ProductMaterial{ProductID: r.ProductID, MaterialID: r.MaterialID, Quantity: deref(r.Quantity)}
}

type ProductMaterialResponse struct {
	ID int64 `json:"id"`
	ProductMaterialRequest
}

func NewProductMaterialResponse(m models.ProductMaterial) ProductMaterialResponse {
	return ProductMaterialResponse{
		ID: m.ID,
		ProductMaterialRequest: ProductMaterialRequest{
			ProductID:  m.ProductID,
			MaterialID: m.MaterialID,
			Quantity:   &m.Quantity,
		},
	}
}

// --- OrderProduct ---

type OrderProductRequest struct {
	OrderID   int64  `json:"order_id" binding:"required"`
	ProductID int64  `json:"product_id" binding:"required"`
	Quantity  *int32 `json:"quantity" binding:"required"`
}

func (r OrderProductRequest) ToModel() models.OrderProduct {
	return models.OrderProduct{OrderID: r.OrderID, ProductID: r.ProductID, Quantity: deref(r.Quantity)}
}

type OrderProductResponse struct {
	ID int64 `json:"id"`
	OrderProductRequest
}

func NewOrderProductResponse(m models.OrderProduct) OrderProductResponse {
	return OrderProductResponse{
		ID:                  m.ID,
		OrderProductRequest: OrderProductRequest{OrderID: m.OrderID, ProductID: m.ProductID, Quantity: &m.Quantity},
	}
}

// --- Storage ---

type StorageProductRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Quantity  *int32 `json:"quantity" binding:"required"`
}

func (r StorageProductRequest) ToModel() models.StorageProduct {
	return models.StorageProduct{ProductID: r.ProductID, Quantity: deref(r.Quantity)}
}

type StorageProductResponse struct {
	ID int64 `json:"id"`
	StorageProductRequest
}

func NewStorageProductResponse(m models.StorageProduct) StorageProductResponse {
	return StorageProductResponse{
		ID:                    m.ID,
		StorageProductRequest: StorageProductRequest{ProductID: m.ProductID, Quantity: &m.Quantity},
	}
}

type StorageMaterialRequest struct {
	MaterialID int64  `json:"material_id" binding:"required"`
	Quantity   *int32 `json:"quantity" binding:"required"`
}

func (r StorageMaterialRequest) ToModel() models.StorageMaterial {
	return models.StorageMaterial{MaterialID: r.MaterialID, Quantity: deref(r.Quantity)}
}

type StorageMaterialResponse struct {
	ID int64 `json:"id"`
	StorageMaterialRequest
}

func NewStorageMaterialResponse(m models.StorageMaterial) StorageMaterialResponse {
	return StorageMaterialResponse{
		ID:                     m.ID,
		StorageMaterialRequest: StorageMaterialRequest{MaterialID: m.MaterialID, Quantity: &m.Quantity},
	}
}

func deref(i *int32) int32 {
	if i == nil {
		return 0
	}
	return *i
}
