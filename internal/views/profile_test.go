package views

import (
	"context"
	"errors"
	"testing"

	"github.com/vegvendor-client/internal/gateway"
	"github.com/vegvendor-client/internal/models"
)

type fakeProfileGateway struct {
	user      *models.User
	meErr     error
	updateErr error
	updated   []models.User
}

func (g *fakeProfileGateway) Me(ctx context.Context) (*models.User, error) {
	if g.meErr != nil {
		return nil, g.meErr
	}
	return g.user, nil
}

func (g *fakeProfileGateway) UpdateMe(ctx context.Context, user models.User) error {
	if g.updateErr != nil {
		return g.updateErr
	}
	g.updated = append(g.updated, user)
	return nil
}

type fakeLogoutSession struct {
	logouts int
}

func (s *fakeLogoutSession) Logout() error {
	s.logouts++
	return nil
}

func TestProfileLoadAndUpdate(t *testing.T) {
	gw := &fakeProfileGateway{user: &models.User{Name: "Asha", Email: "asha@example.com"}}
	session := &fakeLogoutSession{}
	page := NewProfilePage(gw, session)

	if err := page.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if page.User() == nil || page.User().Name != "Asha" {
		t.Fatalf("unexpected user: %+v", page.User())
	}

	updated := models.User{Name: "Asha", Email: "asha@example.com", Address: "12 Market Road"}
	gw.user = &updated
	if err := page.Update(context.Background(), updated); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(gw.updated) != 1 || gw.updated[0].Address != "12 Market Road" {
		t.Fatalf("unexpected update payload: %+v", gw.updated)
	}
	if page.User().Address != "12 Market Road" {
		t.Fatalf("expected profile reloaded, got %+v", page.User())
	}
}

func TestProfileUnauthorizedClearsSessionAndRedirects(t *testing.T) {
	gw := &fakeProfileGateway{meErr: gateway.ErrUnauthorized}
	session := &fakeLogoutSession{}
	page := NewProfilePage(gw, session)

	err := page.Load(context.Background())
	if !errors.Is(err, ErrRedirectLogin) {
		t.Fatalf("expected ErrRedirectLogin, got %v", err)
	}
	if session.logouts != 1 {
		t.Fatalf("expected logout once, got %d", session.logouts)
	}
}

func TestProfileOtherErrorsPassThrough(t *testing.T) {
	apiErr := &gateway.APIError{StatusCode: 500, Message: "server error"}
	gw := &fakeProfileGateway{meErr: apiErr}
	session := &fakeLogoutSession{}
	page := NewProfilePage(gw, session)

	err := page.Load(context.Background())
	if _, ok := gateway.AsAPIError(err); !ok {
		t.Fatalf("expected APIError pass-through, got %v", err)
	}
	if session.logouts != 0 {
		t.Fatalf("expected no logout, got %d", session.logouts)
	}
}
