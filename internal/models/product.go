package models

import (
	"github.com/vegvendor-client/internal/constants"
)

// SizeOption 商品规格选项（规格标签与对应单价）
type SizeOption struct {
	Size  string `json:"size"`
	Price Money  `json:"price"`
}

// ProductAttributes 按分类区分的商品属性
// 每个分类只会填充其中一组字段（重量/容量/数量 + 对应单价）
type ProductAttributes struct {
	Weight        string `json:"weight,omitempty"`
	Volume        string `json:"volume,omitempty"`
	Quantity      string `json:"quantity,omitempty"`
	PricePerKg    *Money `json:"pricePerKg,omitempty"`
	PricePer100g  *Money `json:"pricePer100g,omitempty"`
	PricePerPiece *Money `json:"pricePerPiece,omitempty"`
	Price         *Money `json:"price,omitempty"`
}

// UnitLabel 返回属性中的计量描述（重量/容量/数量，取先填充者）
func (a *ProductAttributes) UnitLabel() string {
	if a == nil {
		return ""
	}
	switch {
	case a.Weight != "":
		return a.Weight
	case a.Volume != "":
		return a.Volume
	case a.Quantity != "":
		return a.Quantity
	}
	return ""
}

// Product 商品
type Product struct {
	ID          string             `json:"id"`
	ProductName string             `json:"productName"`
	Category    string             `json:"category"`
	ImageURL    string             `json:"imageUrl"`
	Sizes       []SizeOption       `json:"sizes,omitempty"`
	Attributes  *ProductAttributes `json:"attributes,omitempty"`
}

// SizeBased 该商品是否按规格选购
func (p *Product) SizeBased() bool {
	return len(p.Sizes) > 0
}

// SizePrice 查找规格对应的单价，未找到时 ok 为 false
func (p *Product) SizePrice(size string) (Money, bool) {
	for _, s := range p.Sizes {
		if s.Size == size {
			return s.Price, true
		}
	}
	return Money{}, false
}

// UnitPrice 按分类解析非规格商品的单价
func (p *Product) UnitPrice() (Money, bool) {
	if p.Attributes == nil {
		return Money{}, false
	}
	var price *Money
	switch p.Category {
	case constants.CategoryCakes:
		price = p.Attributes.PricePerPiece
	case constants.CategoryBeverages:
		price = p.Attributes.Price
	case constants.CategorySpices, constants.CategoryDryFruits:
		price = p.Attributes.PricePer100g
	default:
		price = p.Attributes.PricePerKg
	}
	if price == nil {
		return Money{}, false
	}
	return *price, true
}
