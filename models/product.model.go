package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/cart"
)

// Product represents an item in the catalog
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DocumentID     string             `bson:"document_id" json:"documentId"`
	Name           string             `bson:"name" json:"name"`
	Slug           string             `bson:"slug" json:"slug"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Price          float64            `bson:"price" json:"price"`
	Category       string             `bson:"category" json:"category"`
	Rarity         string             `bson:"rarity,omitempty" json:"rarity,omitempty"`
	RarityColor    string             `bson:"rarity_color,omitempty" json:"rarityColor,omitempty"`
	BreathingStyle string             `bson:"breathing_style,omitempty" json:"breathingStyle,omitempty"`
	WeaponType     string             `bson:"weapon_type,omitempty" json:"weaponType,omitempty"`
	InStock        bool               `bson:"in_stock" json:"inStock"`
	Featured       bool               `bson:"featured" json:"featured"`
	StockCount     int                `bson:"stock_count,omitempty" json:"stockCount,omitempty"`
	ImageURL       string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	ImageAlt       string             `bson:"image_alt,omitempty" json:"imageAlt,omitempty"`

	// Equipment stats
	Sharpness    int     `bson:"sharpness,omitempty" json:"sharpness,omitempty"`
	Durability   int     `bson:"durability,omitempty" json:"durability,omitempty"`
	Speed        int     `bson:"speed,omitempty" json:"speed,omitempty"`
	Power        int     `bson:"power,omitempty" json:"power,omitempty"`
	Defense      int     `bson:"defense,omitempty" json:"defense,omitempty"`
	Weight       float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Material     string  `bson:"material,omitempty" json:"material,omitempty"`
	Manufacturer string  `bson:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	AIFeature    string  `bson:"ai_feature,omitempty" json:"aiFeature,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// CartProduct returns the part of the product the cart keeps.
func (p Product) CartProduct() cart.Product {
	return cart.Product{
		Key:   p.DocumentID,
		Name:  p.Name,
		Price: decimal.NewFromFloat(p.Price),
	}
}

// StockLimit is the most units a single cart may hold. Products without a
// stock count fall back to def.
func (p Product) StockLimit(def int) int {
	if !p.InStock {
		return 0
	}
	if p.StockCount > 0 {
		return p.StockCount
	}
	return def
}
