package views

import (
	"context"
	"io"

	"github.com/vegvendor-client/internal/gateway"
)

// LoginSession 登录页依赖的会话能力
type LoginSession interface {
	Login(ctx context.Context, email, password string) (*gateway.AuthResponse, error)
	Register(ctx context.Context, input gateway.RegisterInput) (*gateway.AuthResponse, error)
	Role() string
}

// LoginPage 登录/注册页
//
// 字段校验由会话层完成，页面只负责提交与结果呈现
type LoginPage struct {
	session LoginSession
}

// NewLoginPage 创建登录页
func NewLoginPage(session LoginSession) *LoginPage {
	return &LoginPage{session: session}
}

// Submit 提交登录
func (p *LoginPage) Submit(ctx context.Context, w io.Writer, email, password string) error {
	resp, err := p.session.Login(ctx, email, password)
	if err != nil {
		return err
	}
	printf(w, "Logged in as %s\n", p.session.Role())
	if resp.Message != "" {
		printf(w, "%s\n", resp.Message)
	}
	return nil
}

// SubmitRegister 提交注册
func (p *LoginPage) SubmitRegister(ctx context.Context, w io.Writer, input gateway.RegisterInput) error {
	resp, err := p.session.Register(ctx, input)
	if err != nil {
		return err
	}
	printf(w, "Registered %s\n", input.Email)
	if resp.Message != "" {
		printf(w, "%s\n", resp.Message)
	}
	return nil
}
