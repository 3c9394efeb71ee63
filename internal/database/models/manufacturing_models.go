package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Plant struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	Name      string  `gorm:"size:255;uniqueIndex;not null"`
	Location  *string `gorm:"size:255"`
	Capacity  *int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Plant) TableName() string { return "plant" }

type Product struct {
	ID          int64               `gorm:"primaryKey;autoIncrement"`
	Name        string              `gorm:"size:255;uniqueIndex;not null"`
	Description *string             `gorm:"type:text"`
	Category    *string             `gorm:"size:100"`
	Price       decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Product) TableName() string { return "product" }

type Material struct {
	ID          int64               `gorm:"primaryKey;autoIncrement"`
	Name        string              `gorm:"size:255;uniqueIndex;not null"`
	Description *string             `gorm:"type:text"`
	Unit        *string             `gorm:"size:50"`
	Cost        decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Material) TableName() string { return "material" }

// Order.Status is free text; no transition rules are enforced.
type Order struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	OrderDate    time.Time `gorm:"not null"`
	Status       string    `gorm:"size:50;not null"`
	CustomerName *string   `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Order) TableName() string { return "order" }

// --- Associations ---
// Every foreign key cascades on delete so removing a parent never leaves
// dangling association or storage rows behind.

type PlantProduct struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	PlantID   int64 `gorm:"index;not null"`
	ProductID int64 `gorm:"index;not null"`
	Quantity  *int32
	CreatedAt time.Time
	UpdatedAt time.Time

	Plant   *Plant   `gorm:"foreignKey:PlantID;constraint:OnDelete:CASCADE"`
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (PlantProduct) TableName() string { return "plant_product" }

type PlantMaterial struct {
	ID         int64               `gorm:"primaryKey;autoIncrement"`
	PlantID    int64               `gorm:"index;not null"`
	MaterialID int64               `gorm:"index;not null"`
	Quantity   decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Plant    *Plant    `gorm:"foreignKey:PlantID;constraint:OnDelete:CASCADE"`
	Material *Material `gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE"`
}

func (PlantMaterial) TableName() string { return "plant_material" }

// ProductMaterial is the bill of materials: Quantity units of Material per Product.
type ProductMaterial struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	ProductID  int64 `gorm:"index;not null"`
	MaterialID int64 `gorm:"index;not null"`
	Quantity   int32 `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Product  *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Material *Material `gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE"`
}

func (ProductMaterial) TableName() string { return "product_material" }

type OrderProduct struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	OrderID   int64 `gorm:"index;not null"`
	ProductID int64 `gorm:"index;not null"`
	Quantity  int32 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Order   *Order   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (OrderProduct) TableName() string { return "order_product" }

// --- Storage ---

type StorageProduct struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	ProductID int64 `gorm:"index;not null"`
	Quantity  int32 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (StorageProduct) TableName() string { return "storage_product" }

type StorageMaterial struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	MaterialID int64 `gorm:"index;not null"`
	Quantity   int32 `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Material *Material `gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE"`
}

func (StorageMaterial) TableName() string { return "storage_material" }

// All lists every model in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Plant{},
		&Product{},
		&Material{},
		&Order{},
		&PlantProduct{},
		&PlantMaterial{},
		&ProductMaterial{},
		&OrderProduct{},
		&StorageProduct{},
		&StorageMaterial{},
	}
}
