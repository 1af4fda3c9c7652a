package session

import (
	"context"
	"errors"
	"strings"

	"github.com/vegvendor-client/internal/constants"
	"github.com/vegvendor-client/internal/gateway"
	"github.com/vegvendor-client/internal/logger"
	"github.com/vegvendor-client/internal/storage"

	"go.uber.org/zap"
)

// ErrMissingCredentials 登录缺少邮箱或密码
var ErrMissingCredentials = errors.New("Email and password required")

// ErrMissingFields 注册存在未填写字段
var ErrMissingFields = errors.New("All fields required")

// Gateway 会话依赖的认证后端能力
type Gateway interface {
	Login(ctx context.Context, input gateway.LoginInput) (*gateway.AuthResponse, error)
	Register(ctx context.Context, input gateway.RegisterInput) (*gateway.AuthResponse, error)
}

// Options 会话配置
type Options struct {
	Gateway Gateway
	Store   storage.Store
	Logger  *zap.SugaredLogger
}

// Manager 登录态管理
//
// 按角色将 token 写入不同键：管理员写 admintoken，
// 员工同时写 stafftoken 与 token（员工可走普通用户接口），
// 其余角色只写 token。
type Manager struct {
	gw    Gateway
	store storage.Store
	log   *zap.SugaredLogger
}

// NewManager 创建会话管理器
func NewManager(opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	return &Manager{gw: opts.Gateway, store: opts.Store, log: opts.Logger}
}

// Login 登录并按角色持久化 token
func (m *Manager) Login(ctx context.Context, email, password string) (*gateway.AuthResponse, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, ErrMissingCredentials
	}
	resp, err := m.gw.Login(ctx, gateway.LoginInput{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := m.storeToken(resp.Role, resp.Token); err != nil {
		return nil, err
	}
	m.log.Infow("session_login", "role", resp.Role)
	return resp, nil
}

// Register 注册并持久化 token
func (m *Manager) Register(ctx context.Context, input gateway.RegisterInput) (*gateway.AuthResponse, error) {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.Password) == "" ||
		strings.TrimSpace(input.Number) == "" ||
		strings.TrimSpace(input.Address) == "" {
		return nil, ErrMissingFields
	}
	resp, err := m.gw.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := m.storeToken(resp.Role, resp.Token); err != nil {
		return nil, err
	}
	m.log.Infow("session_register", "role", resp.Role)
	return resp, nil
}

// Logout 清除全部登录态
func (m *Manager) Logout() error {
	for _, key := range []string{
		constants.StorageKeyToken,
		constants.StorageKeyAdminToken,
		constants.StorageKeyStaffToken,
	} {
		if err := m.store.Delete(key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}
	m.log.Infow("session_logout")
	return nil
}

// LoggedIn 是否存在普通用户登录态
func (m *Manager) LoggedIn() bool {
	token, err := m.store.Get(constants.StorageKeyToken)
	return err == nil && token != ""
}

// Role 当前登录角色，未登录返回空字符串
func (m *Manager) Role() string {
	if token, err := m.store.Get(constants.StorageKeyAdminToken); err == nil && token != "" {
		return constants.RoleAdmin
	}
	if token, err := m.store.Get(constants.StorageKeyStaffToken); err == nil && token != "" {
		return constants.RoleStaff
	}
	if m.LoggedIn() {
		return constants.RoleCustomer
	}
	return ""
}

func (m *Manager) storeToken(role, token string) error {
	switch role {
	case constants.RoleAdmin:
		return m.store.Set(constants.StorageKeyAdminToken, token)
	case constants.RoleStaff:
		if err := m.store.Set(constants.StorageKeyStaffToken, token); err != nil {
			return err
		}
		return m.store.Set(constants.StorageKeyToken, token)
	default:
		return m.store.Set(constants.StorageKeyToken, token)
	}
}
