package views

import (
	"context"
	"errors"
	"strings"

	"github.com/vegvendor-client/internal/constants"
	"github.com/vegvendor-client/internal/models"

	"github.com/shopspring/decimal"
)

// ErrProductFieldsRequired 商品名或分类未填写
var ErrProductFieldsRequired = errors.New("Please fill in product name and category.")

// ErrSizeFieldsRequired 规格行存在未填写的规格或价格
var ErrSizeFieldsRequired = errors.New("Please fill in all size and price fields.")

// ErrUnknownCategory 不存在的商品分类
var ErrUnknownCategory = errors.New("unknown product category")

// ErrSizePriceInvalid 规格价格不是合法数字
var ErrSizePriceInvalid = errors.New("size price must be a valid number")

// SizeField 商品表单中的单条规格
type SizeField struct {
	Size  string
	Price string
}

// ProductForm 商品创建表单
type ProductForm struct {
	Category    string
	ProductName string
	ImageURL    string
	Sizes       []SizeField
}

// ProductFormGateway 商品创建依赖的后端能力
type ProductFormGateway interface {
	CreateProduct(ctx context.Context, product models.Product) error
}

// ProductAdmin 商品创建（管理端）
type ProductAdmin struct {
	gw ProductFormGateway
}

// NewProductAdmin 创建商品管理入口
func NewProductAdmin(gw ProductFormGateway) *ProductAdmin {
	return &ProductAdmin{gw: gw}
}

// Create 校验表单并提交商品，校验失败在任何网络调用之前返回
func (p *ProductAdmin) Create(ctx context.Context, form ProductForm) error {
	product, err := parseProductForm(form)
	if err != nil {
		return err
	}
	return p.gw.CreateProduct(ctx, product)
}

func parseProductForm(form ProductForm) (models.Product, error) {
	name := strings.TrimSpace(form.ProductName)
	category := strings.TrimSpace(form.Category)
	if name == "" || category == "" {
		return models.Product{}, ErrProductFieldsRequired
	}
	if _, ok := constants.CategoryUnits[category]; !ok {
		return models.Product{}, ErrUnknownCategory
	}
	if len(form.Sizes) == 0 {
		return models.Product{}, ErrSizeFieldsRequired
	}

	sizes := make([]models.SizeOption, 0, len(form.Sizes))
	for _, field := range form.Sizes {
		size := strings.TrimSpace(field.Size)
		price := strings.TrimSpace(field.Price)
		if size == "" || price == "" {
			return models.Product{}, ErrSizeFieldsRequired
		}
		parsed, err := decimal.NewFromString(price)
		if err != nil || parsed.IsNegative() {
			return models.Product{}, ErrSizePriceInvalid
		}
		sizes = append(sizes, models.SizeOption{
			Size:  size,
			Price: models.NewMoneyFromDecimal(parsed),
		})
	}

	return models.Product{
		ProductName: name,
		Category:    category,
		ImageURL:    strings.TrimSpace(form.ImageURL),
		Sizes:       sizes,
	}, nil
}
