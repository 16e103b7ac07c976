package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// prices go over the wire as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"            json:"id"`
	Name      string    `gorm:"not null"                        json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null"            json:"slug"`
	CreatedAt time.Time `                                       json:"createdAt"`
	UpdatedAt time.Time `                                       json:"updatedAt"`
}

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"                json:"id"`
	Title       string          `gorm:"not null;index"                      json:"title"`
	Description string          `gorm:"not null"                            json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"         json:"price"`
	ImageURL    string          `gorm:"not null"                            json:"imageUrl"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"            json:"categoryId"`
	Category    *Category       `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category,omitempty"`
	CreatedAt   time.Time       `gorm:"index"                               json:"createdAt"`
	UpdatedAt   time.Time       `                                           json:"updatedAt"`
}

type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"                          json:"id"`
	UserID    string     `gorm:"uniqueIndex;not null"                          json:"userId"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `                                                     json:"createdAt"`
	UpdatedAt time.Time  `                                                     json:"updatedAt"`
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                               json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null"    json:"cartId"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null"    json:"productId"`
	Quantity  uint      `gorm:"not null;default:1;check:quantity > 0"              json:"quantity"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE;"  json:"product,omitempty"`
	CreatedAt time.Time `                                                          json:"createdAt"`
	UpdatedAt time.Time `                                                          json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

// All lists every table in migration order.
func All() []any {
	return []any{&Category{}, &Product{}, &Cart{}, &CartItem{}}
}
