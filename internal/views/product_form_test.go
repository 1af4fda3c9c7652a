package views

import (
	"context"
	"errors"
	"testing"

	"github.com/vegvendor-client/internal/constants"
	"github.com/vegvendor-client/internal/models"
)

type fakeProductGateway struct {
	created []models.Product
}

func (g *fakeProductGateway) CreateProduct(ctx context.Context, product models.Product) error {
	g.created = append(g.created, product)
	return nil
}

func validProductForm() ProductForm {
	return ProductForm{
		Category:    constants.CategoryCakes,
		ProductName: "Chocolate Cake",
		Sizes: []SizeField{
			{Size: "500g", Price: "250"},
			{Size: "1kg", Price: "450"},
		},
	}
}

func TestCreateProductRequiresNameAndCategory(t *testing.T) {
	gw := &fakeProductGateway{}
	admin := NewProductAdmin(gw)

	form := validProductForm()
	form.ProductName = "  "
	if err := admin.Create(context.Background(), form); !errors.Is(err, ErrProductFieldsRequired) {
		t.Fatalf("expected ErrProductFieldsRequired, got %v", err)
	}

	form = validProductForm()
	form.Category = ""
	if err := admin.Create(context.Background(), form); !errors.Is(err, ErrProductFieldsRequired) {
		t.Fatalf("expected ErrProductFieldsRequired, got %v", err)
	}
	if len(gw.created) != 0 {
		t.Fatalf("expected no network call, got %d", len(gw.created))
	}
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	gw := &fakeProductGateway{}
	admin := NewProductAdmin(gw)

	form := validProductForm()
	form.Category = "electronics"
	if err := admin.Create(context.Background(), form); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestCreateProductValidatesSizeRows(t *testing.T) {
	gw := &fakeProductGateway{}
	admin := NewProductAdmin(gw)

	form := validProductForm()
	form.Sizes[1].Price = ""
	if err := admin.Create(context.Background(), form); !errors.Is(err, ErrSizeFieldsRequired) {
		t.Fatalf("expected ErrSizeFieldsRequired, got %v", err)
	}

	form = validProductForm()
	form.Sizes = nil
	if err := admin.Create(context.Background(), form); !errors.Is(err, ErrSizeFieldsRequired) {
		t.Fatalf("expected ErrSizeFieldsRequired, got %v", err)
	}

	form = validProductForm()
	form.Sizes[0].Price = "cheap"
	if err := admin.Create(context.Background(), form); !errors.Is(err, ErrSizePriceInvalid) {
		t.Fatalf("expected ErrSizePriceInvalid, got %v", err)
	}
	if len(gw.created) != 0 {
		t.Fatalf("expected no network call, got %d", len(gw.created))
	}
}

func TestCreateProductSubmitsParsedSizes(t *testing.T) {
	gw := &fakeProductGateway{}
	admin := NewProductAdmin(gw)

	if err := admin.Create(context.Background(), validProductForm()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(gw.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(gw.created))
	}
	product := gw.created[0]
	if product.ProductName != "Chocolate Cake" || product.Category != constants.CategoryCakes {
		t.Fatalf("unexpected product: %+v", product)
	}
	if len(product.Sizes) != 2 || product.Sizes[1].Price.String() != "450.00" {
		t.Fatalf("unexpected sizes: %+v", product.Sizes)
	}
}
