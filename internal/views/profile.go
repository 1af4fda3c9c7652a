package views

import (
	"context"
	"errors"
	"io"

	"github.com/vegvendor-client/internal/gateway"
	"github.com/vegvendor-client/internal/models"
)

// ErrRedirectLogin 登录态失效，调用方应跳转登录页
var ErrRedirectLogin = errors.New("session expired, please login again")

// ProfileGateway 个人资料页依赖的后端能力
type ProfileGateway interface {
	Me(ctx context.Context) (*models.User, error)
	UpdateMe(ctx context.Context, user models.User) error
}

// ProfileSession 个人资料页依赖的会话能力
type ProfileSession interface {
	Logout() error
}

// ProfilePage 个人资料页：查看与更新
//
// 后端返回未授权时清除本地登录态并发出跳转登录信号
type ProfilePage struct {
	gw      ProfileGateway
	session ProfileSession
	user    *models.User
}

// NewProfilePage 创建个人资料页
func NewProfilePage(gw ProfileGateway, session ProfileSession) *ProfilePage {
	return &ProfilePage{gw: gw, session: session}
}

// Load 拉取当前用户资料
func (p *ProfilePage) Load(ctx context.Context) error {
	user, err := p.gw.Me(ctx)
	if err != nil {
		return p.mapAuthError(err)
	}
	p.user = user
	return nil
}

// User 已加载的用户资料
func (p *ProfilePage) User() *models.User {
	return p.user
}

// Render 渲染用户资料
func (p *ProfilePage) Render(w io.Writer) {
	if p.user == nil {
		printf(w, "Profile not loaded\n")
		return
	}
	printf(w, "Name: %s\n", p.user.Name)
	printf(w, "Email: %s\n", p.user.Email)
	printf(w, "Number: %s\n", p.user.Number)
	printf(w, "Address: %s\n", p.user.Address)
}

// Update 更新用户资料并重新拉取
func (p *ProfilePage) Update(ctx context.Context, user models.User) error {
	if err := p.gw.UpdateMe(ctx, user); err != nil {
		return p.mapAuthError(err)
	}
	return p.Load(ctx)
}

// mapAuthError 未授权错误转为清理登录态后的跳转信号
func (p *ProfilePage) mapAuthError(err error) error {
	if errors.Is(err, gateway.ErrUnauthorized) {
		if logoutErr := p.session.Logout(); logoutErr != nil {
			return logoutErr
		}
		return ErrRedirectLogin
	}
	return err
}
