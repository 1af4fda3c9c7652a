package offers

import (
	"context"
	"errors"
	"testing"

	"github.com/vegvendor-client/internal/models"
	"github.com/vegvendor-client/internal/storage"

	"github.com/shopspring/decimal"
)

type fakeOfferGateway struct {
	offers []models.Offer
	err    error
}

func (g *fakeOfferGateway) ListActiveOffers(ctx context.Context) ([]models.Offer, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.offers, nil
}

func testOffer(id, productName, minPurchase string, discount int64) models.Offer {
	return models.Offer{
		ID:          id,
		ProductName: productName,
		Description: discountLabel(discount) + " off " + productName,
		MinPurchase: models.NewMoneyFromString(minPurchase),
		Discount:    decimal.NewFromInt(discount),
	}
}

func discountLabel(discount int64) string {
	return decimal.NewFromInt(discount).String() + "%"
}

func cartLine(productID, name, price string, quantity int) models.CartLine {
	return models.CartLine{
		ID:          "line-" + productID,
		ProductID:   productID,
		ProductName: name,
		Price:       models.NewMoneyFromString(price),
		Quantity:    quantity,
	}
}

func newTestCalculator(gw *fakeOfferGateway, store storage.Store) *Calculator {
	return NewCalculator(Options{Gateway: gw, Store: store})
}

func TestEligibilityMatchesNameAndThreshold(t *testing.T) {
	calc := newTestCalculator(&fakeOfferGateway{}, storage.NewMemStore())
	offer := testOffer("o1", "Basmati Rice", "150", 10)

	lines := []models.CartLine{cartLine("p1", "basmati rice", "100", 2)}
	if !calc.Eligible(offer, lines) {
		t.Fatalf("expected eligible: name matches case-insensitively and 200 >= 150")
	}

	below := []models.CartLine{cartLine("p1", "Basmati Rice", "100", 1)}
	if calc.Eligible(offer, below) {
		t.Fatalf("expected not eligible: 100 < 150")
	}

	other := []models.CartLine{cartLine("p2", "Toor Daal", "300", 1)}
	if calc.Eligible(offer, other) {
		t.Fatalf("expected not eligible: product name mismatch")
	}
}

func TestApplyComputesScenarioDiscount(t *testing.T) {
	store := storage.NewMemStore()
	offer := testOffer("o1", "Basmati Rice", "150", 10)
	calc := newTestCalculator(&fakeOfferGateway{offers: []models.Offer{offer}}, store)
	lines := []models.CartLine{cartLine("p1", "Basmati Rice", "100", 2)}

	if err := calc.Apply(offer, lines); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	discount := calc.Discount(lines)
	if discount.String() != "20.00" {
		t.Fatalf("expected discount 20.00, got %s", discount.String())
	}
}

func TestApplyIsIdempotentPerOfferID(t *testing.T) {
	store := storage.NewMemStore()
	offer := testOffer("o1", "Basmati Rice", "150", 10)
	calc := newTestCalculator(&fakeOfferGateway{}, store)
	lines := []models.CartLine{cartLine("p1", "Basmati Rice", "100", 2)}

	if err := calc.Apply(offer, lines); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	first := calc.Discount(lines)
	if err := calc.Apply(offer, lines); err != nil {
		t.Fatalf("second apply should be a no-op, got %v", err)
	}
	second := calc.Discount(lines)
	if first.String() != second.String() {
		t.Fatalf("reapplying changed discount: %s -> %s", first, second)
	}
	if len(calc.Applied()) != 1 {
		t.Fatalf("expected single applied offer, got %d", len(calc.Applied()))
	}
}

func TestApplyRejectsIneligibleOffer(t *testing.T) {
	calc := newTestCalculator(&fakeOfferGateway{}, storage.NewMemStore())
	offer := testOffer("o1", "Basmati Rice", "500", 10)
	lines := []models.CartLine{cartLine("p1", "Basmati Rice", "100", 2)}

	if err := calc.Apply(offer, lines); !errors.Is(err, ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible, got %v", err)
	}
	if len(calc.Applied()) != 0 {
		t.Fatalf("expected no applied offer")
	}
}

func TestDiscountStacksAdditivelyAcrossOffersAndLines(t *testing.T) {
	calc := newTestCalculator(&fakeOfferGateway{}, storage.NewMemStore())
	riceOffer := testOffer("o1", "Basmati Rice", "50", 10)
	daalOffer := testOffer("o2", "Toor Daal", "50", 20)
	lines := []models.CartLine{
		cartLine("p1", "Basmati Rice", "100", 2), // 200 × 10% = 20
		cartLine("p2", "Toor Daal", "90", 1),     // 90 × 20% = 18
	}

	if err := calc.Apply(riceOffer, lines); err != nil {
		t.Fatalf("apply rice offer failed: %v", err)
	}
	afterFirst := calc.Discount(lines)
	if err := calc.Apply(daalOffer, lines); err != nil {
		t.Fatalf("apply daal offer failed: %v", err)
	}
	afterSecond := calc.Discount(lines)

	if afterSecond.Decimal.LessThan(afterFirst.Decimal) {
		t.Fatalf("discount decreased after applying another offer: %s -> %s", afterFirst, afterSecond)
	}
	if afterSecond.String() != "38.00" {
		t.Fatalf("expected stacked discount 38.00, got %s", afterSecond)
	}

	subtotal := models.CartSubtotal(lines)
	if afterSecond.Decimal.GreaterThan(subtotal) {
		t.Fatalf("discount %s exceeds subtotal %s", afterSecond, subtotal)
	}
}

func TestDiscountSkipsLinesBelowThreshold(t *testing.T) {
	calc := newTestCalculator(&fakeOfferGateway{}, storage.NewMemStore())
	// 同名商品两行：一行达门槛，一行不达
	offer := testOffer("o1", "Basmati Rice", "150", 10)
	lines := []models.CartLine{
		cartLine("p1", "Basmati Rice", "100", 2), // 200 ≥ 150
		{ID: "line-p1b", ProductID: "p1", ProductName: "Basmati Rice", Size: "500g",
			Price: models.NewMoneyFromString("60"), Quantity: 1}, // 60 < 150
	}
	if err := calc.Apply(offer, lines); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if got := calc.Discount(lines).String(); got != "20.00" {
		t.Fatalf("expected 20.00 (only qualifying line discounted), got %s", got)
	}
}

func TestAppliedOfferDisabledAcrossSessions(t *testing.T) {
	store := storage.NewMemStore()
	offer := testOffer("o1", "Basmati Rice", "50", 10)
	gw := &fakeOfferGateway{offers: []models.Offer{offer, testOffer("o2", "Toor Daal", "50", 5)}}
	calc := newTestCalculator(gw, store)
	lines := []models.CartLine{cartLine("p1", "Basmati Rice", "100", 2)}

	if err := calc.Apply(offer, lines); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	// 新会话：禁用集合从存储恢复，已用优惠不再出现
	fresh := newTestCalculator(gw, store)
	visible, err := fresh.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(visible) != 1 || visible[0].ID != "o2" {
		t.Fatalf("expected applied offer hidden, got %+v", visible)
	}
}

func TestResetClearsDisabledSet(t *testing.T) {
	store := storage.NewMemStore()
	offer := testOffer("o1", "Basmati Rice", "50", 10)
	gw := &fakeOfferGateway{offers: []models.Offer{offer}}
	calc := newTestCalculator(gw, store)
	lines := []models.CartLine{cartLine("p1", "Basmati Rice", "100", 2)}

	if err := calc.Apply(offer, lines); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	calc.Reset()

	if len(calc.Applied()) != 0 {
		t.Fatalf("expected applied offers cleared")
	}
	visible, err := calc.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(visible) != 1 {
		t.Fatalf("expected offer visible again after reset, got %d", len(visible))
	}

	fresh := newTestCalculator(gw, store)
	visible, err = fresh.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(visible) != 1 {
		t.Fatalf("expected cleared disabled set to persist, got %d", len(visible))
	}
}
