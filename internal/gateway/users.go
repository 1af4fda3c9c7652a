package gateway

import (
	"context"
	"net/http"

	"github.com/vegvendor-client/internal/models"
)

// LoginInput 登录请求
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput 注册请求
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Number   string `json:"number"`
	Address  string `json:"address"`
}

// AuthResponse 登录/注册响应
type AuthResponse struct {
	Token   string `json:"token"`
	Role    string `json:"role,omitempty"`
	Message string `json:"message,omitempty"`
}

// Login 登录
func (c *Client) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", "", input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register 注册
func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/users/register", "", input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me 获取当前用户资料
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/me", userToken(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// UpdateMe 更新当前用户资料
func (c *Client) UpdateMe(ctx context.Context, user models.User) error {
	return c.do(ctx, http.MethodPut, "/users/me", userToken(), user, nil)
}
