package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/vegvendor-client/internal/gateway"
	"github.com/vegvendor-client/internal/models"

	"github.com/shopspring/decimal"
)

type fakeCart struct {
	lines   []models.CartLine
	pending int
	syncing bool
}

func (c *fakeCart) Snapshot() []models.CartLine { return c.lines }
func (c *fakeCart) Pending() int                { return c.pending }
func (c *fakeCart) Syncing() bool               { return c.syncing }

type fakeOffers struct {
	applied  []models.AppliedOffer
	discount models.Money
	resets   int
}

func (o *fakeOffers) AppliedSummaries() []models.AppliedOffer { return o.applied }

func (o *fakeOffers) Discount(lines []models.CartLine) models.Money { return o.discount }

func (o *fakeOffers) Reset() { o.resets++ }

type fakeOrderGateway struct {
	calls int
	input gateway.CreateOrderInput
	order *models.Order
	err   error
}

func (g *fakeOrderGateway) CreateOrder(ctx context.Context, input gateway.CreateOrderInput) (*models.Order, error) {
	g.calls++
	g.input = input
	if g.err != nil {
		return nil, g.err
	}
	return g.order, nil
}

func checkoutLine(productID, name, price string, quantity int) models.CartLine {
	return models.CartLine{
		ID:          "line-" + productID,
		ProductID:   productID,
		ProductName: name,
		Price:       models.NewMoneyFromString(price),
		Quantity:    quantity,
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	gw := &fakeOrderGateway{}
	placer := NewPlacer(Options{Gateway: gw, Cart: &fakeCart{}, Offers: &fakeOffers{}})

	_, err := placer.PlaceOrder(context.Background())
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
	if gw.calls != 0 {
		t.Fatalf("expected no network call, got %d", gw.calls)
	}
	if placer.State() != StateIdle {
		t.Fatalf("expected state back to idle, got %s", placer.State())
	}
}

func TestPlaceOrderRejectsWhileCartSyncing(t *testing.T) {
	gw := &fakeOrderGateway{}
	cart := &fakeCart{
		lines:   []models.CartLine{checkoutLine("p1", "Basmati Rice", "100", 2)},
		pending: 1,
	}
	placer := NewPlacer(Options{Gateway: gw, Cart: cart, Offers: &fakeOffers{}})

	_, err := placer.PlaceOrder(context.Background())
	if !errors.Is(err, ErrCartSyncing) {
		t.Fatalf("expected ErrCartSyncing, got %v", err)
	}
	if gw.calls != 0 {
		t.Fatalf("expected order not submitted, got %d calls", gw.calls)
	}
}

func TestPlaceOrderSubmitsSnapshotAndResetsOffers(t *testing.T) {
	gw := &fakeOrderGateway{order: &models.Order{ID: "ord-1", Status: "Processing"}}
	cart := &fakeCart{
		lines: []models.CartLine{checkoutLine("p1", "Basmati Rice", "100", 2)},
	}
	offers := &fakeOffers{
		applied: []models.AppliedOffer{{
			ID:          "o1",
			ProductName: "Basmati Rice",
			Discount:    decimal.NewFromInt(10),
		}},
		discount: models.NewMoneyFromString("20"),
	}
	placer := NewPlacer(Options{Gateway: gw, Cart: cart, Offers: offers})

	order, err := placer.PlaceOrder(context.Background())
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order == nil || order.ID != "ord-1" {
		t.Fatalf("unexpected order: %+v", order)
	}
	if placer.State() != StateSucceeded {
		t.Fatalf("expected succeeded state, got %s", placer.State())
	}
	if offers.resets != 1 {
		t.Fatalf("expected offer state reset once, got %d", offers.resets)
	}

	if len(gw.input.Items) != 1 || gw.input.Items[0].ProductID != "p1" || gw.input.Items[0].Quantity != 2 {
		t.Fatalf("unexpected submitted items: %+v", gw.input.Items)
	}
	if len(gw.input.AppliedOffers) != 1 || gw.input.AppliedOffers[0].ID != "o1" {
		t.Fatalf("unexpected applied offers: %+v", gw.input.AppliedOffers)
	}
	if gw.input.TotalDiscount.String() != "20.00" {
		t.Fatalf("unexpected discount: %s", gw.input.TotalDiscount.String())
	}
	// 下单成功只重置优惠状态，购物车本身不动
	if len(cart.Snapshot()) != 1 {
		t.Fatalf("expected cart untouched after placement, got %d lines", len(cart.Snapshot()))
	}
}

func TestPlaceOrderFailureSurfacesServerMessage(t *testing.T) {
	serverErr := &gateway.APIError{StatusCode: 400, Message: "insufficient stock"}
	gw := &fakeOrderGateway{err: serverErr}
	cart := &fakeCart{
		lines: []models.CartLine{checkoutLine("p1", "Basmati Rice", "100", 2)},
	}
	offers := &fakeOffers{}
	placer := NewPlacer(Options{Gateway: gw, Cart: cart, Offers: offers})

	_, err := placer.PlaceOrder(context.Background())
	apiErr, ok := gateway.AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "insufficient stock" {
		t.Fatalf("expected server message surfaced verbatim, got %q", apiErr.Message)
	}
	if offers.resets != 0 {
		t.Fatalf("offer state must not be reset on failure")
	}
	if placer.State() != StateIdle {
		t.Fatalf("expected state back to idle, got %s", placer.State())
	}
	if !errors.Is(placer.LastErr(), err) {
		t.Fatalf("expected last error recorded")
	}
}
