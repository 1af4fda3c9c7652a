package views

import (
	"context"
	"errors"
	"testing"

	"github.com/vegvendor-client/internal/models"
)

type fakeOffersGateway struct {
	offers  []models.Offer
	created []models.Offer
	updated []models.Offer
	deleted []string
}

func (g *fakeOffersGateway) ListOffers(ctx context.Context) ([]models.Offer, error) {
	return g.offers, nil
}

func (g *fakeOffersGateway) CreateOffer(ctx context.Context, offer models.Offer) error {
	g.created = append(g.created, offer)
	return nil
}

func (g *fakeOffersGateway) UpdateOffer(ctx context.Context, offer models.Offer) error {
	g.updated = append(g.updated, offer)
	return nil
}

func (g *fakeOffersGateway) DeleteOffer(ctx context.Context, offerID string) error {
	g.deleted = append(g.deleted, offerID)
	return nil
}

func validOfferForm() OfferForm {
	return OfferForm{
		ProductName: "Basmati Rice",
		Description: "10% off above 150",
		MinPurchase: "150",
		Discount:    "10",
	}
}

func TestCreateOfferRequiresAllFields(t *testing.T) {
	gw := &fakeOffersGateway{}
	page := NewOffersPage(gw)

	form := validOfferForm()
	form.Description = "  "
	if err := page.Create(context.Background(), form); !errors.Is(err, ErrOfferFieldsRequired) {
		t.Fatalf("expected ErrOfferFieldsRequired, got %v", err)
	}
	if len(gw.created) != 0 {
		t.Fatalf("expected no network call, got %d", len(gw.created))
	}
}

func TestCreateOfferValidatesNumbers(t *testing.T) {
	gw := &fakeOffersGateway{}
	page := NewOffersPage(gw)

	for _, tc := range []struct{ minPurchase, discount string }{
		{"abc", "10"},
		{"150", "ten"},
		{"-1", "10"},
		{"150", "-5"},
	} {
		form := validOfferForm()
		form.MinPurchase = tc.minPurchase
		form.Discount = tc.discount
		if err := page.Create(context.Background(), form); !errors.Is(err, ErrOfferNumbersInvalid) {
			t.Fatalf("form (%q, %q): expected ErrOfferNumbersInvalid, got %v",
				tc.minPurchase, tc.discount, err)
		}
	}
	if len(gw.created) != 0 {
		t.Fatalf("expected no network call, got %d", len(gw.created))
	}
}

func TestCreateOfferSubmitsParsedValues(t *testing.T) {
	gw := &fakeOffersGateway{}
	page := NewOffersPage(gw)

	if err := page.Create(context.Background(), validOfferForm()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(gw.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(gw.created))
	}
	offer := gw.created[0]
	if offer.ProductName != "Basmati Rice" || offer.MinPurchase.String() != "150.00" || offer.Discount.String() != "10" {
		t.Fatalf("unexpected offer: %+v", offer)
	}
}

func TestUpdateAndDeleteOffer(t *testing.T) {
	gw := &fakeOffersGateway{}
	page := NewOffersPage(gw)

	form := validOfferForm()
	form.ID = "o1"
	if err := page.Update(context.Background(), form); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(gw.updated) != 1 || gw.updated[0].ID != "o1" {
		t.Fatalf("unexpected updates: %+v", gw.updated)
	}

	if err := page.Delete(context.Background(), "o1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(gw.deleted) != 1 || gw.deleted[0] != "o1" {
		t.Fatalf("unexpected deletes: %v", gw.deleted)
	}
}
