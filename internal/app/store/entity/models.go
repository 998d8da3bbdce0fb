package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User представляет учетную запись для входа в систему
// Может быть привязана к сотруднику (Employee.UserID)
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:150" json:"username"`
	Email        string    `gorm:"size:254" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Employee представляет сотрудника магазина
// Необязательная связь с User для входа в систему
type Employee struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`
	User       *User      `gorm:"foreignKey:UserID" json:"-"`
	Name       string     `gorm:"size:100" json:"name"`
	Position   string     `gorm:"size:100" json:"position"`
	Phone      string     `gorm:"size:20" json:"phone"`
	Email      string     `gorm:"size:254" json:"email"`
	DateJoined time.Time  `json:"date_joined"` // Устанавливается один раз при создании
}

// Category представляет категорию товаров
type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:100" json:"name"`
}

// Product представляет товар
// StockQuantity изменяется только через StockRepository (запись/отмена
// продаж и поступлений), но не напрямую из отчетов и форм
type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string          `gorm:"size:100" json:"name"`
	CategoryID    uuid.UUID       `gorm:"type:uuid" json:"category_id"`
	Category      *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Size          *string         `gorm:"size:20" json:"size,omitempty"`
	Color         *string         `gorm:"size:50" json:"color,omitempty"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Supplier представляет поставщика товаров
type Supplier struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"size:100" json:"name"`
	ContactPerson string    `gorm:"size:100" json:"contact_person"`
	Phone         string    `gorm:"size:20" json:"phone"`
	Email         string    `gorm:"size:254" json:"email"`
	Address       string    `json:"address"`
}

// Inventory представляет поступление товара от поставщика
// Создание увеличивает остаток товара на Quantity, удаление уменьшает обратно
type Inventory struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID    uuid.UUID       `gorm:"type:uuid" json:"product_id"`
	Product      *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	SupplierID   uuid.UUID       `gorm:"type:uuid" json:"supplier_id"`
	Supplier     *Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(10,2)" json:"unit_price"`
	DateReceived time.Time       `json:"date_received"` // Устанавливается один раз при создании
}

// TableName задает имя таблицы для Inventory
func (Inventory) TableName() string {
	return "inventories"
}

// Sale представляет продажу товара
// Создание уменьшает остаток товара на Quantity, удаление увеличивает обратно
type Sale struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID  uuid.UUID       `gorm:"type:uuid" json:"product_id"`
	Product    *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	EmployeeID uuid.UUID       `gorm:"type:uuid" json:"employee_id"`
	Employee   *Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	DateTime   time.Time       `gorm:"column:date_time" json:"date_time"` // Устанавливается один раз при создании
}
