package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vegvendor-client/internal/constants"
	"github.com/vegvendor-client/internal/logger"
	"github.com/vegvendor-client/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client 后端 API 网关：薄封装的认证 HTTP 调用，无重试无缓存
type Client struct {
	baseURL string
	httpc   *http.Client
	store   storage.Store
	log     *zap.SugaredLogger
}

// Options 网关配置
type Options struct {
	BaseURL string
	Timeout time.Duration
	Store   storage.Store
	Logger  *zap.SugaredLogger
}

// NewClient 创建网关客户端
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		httpc:   &http.Client{Timeout: opts.Timeout},
		store:   opts.Store,
		log:     opts.Logger,
	}
}

// token 读取并校验本地 token；过期或缺失返回 ErrUnauthorized
func (c *Client) token(key string) (string, error) {
	value, err := c.store.Get(key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", err
	}
	if value == "" {
		return "", ErrUnauthorized
	}
	if tokenExpired(value) {
		return "", ErrUnauthorized
	}
	return value, nil
}

// tokenExpired 本地解析 token 的过期声明（不校验签名，签名由服务端校验）
func tokenExpired(tokenString string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		// 非 JWT 格式的 token 交由服务端判定
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// do 执行一次 API 请求；tokenKey 为空表示匿名请求
func (c *Client) do(ctx context.Context, method, path, tokenKey string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request failed: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if tokenKey != "" {
		token, err := c.token(tokenKey)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warnw("api_request_failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debugw("api_request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"elapsed", time.Since(started),
	)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(resp.Body),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response failed: %w", err)
	}
	return nil
}

func decodeErrorMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}

// userToken 普通用户 token 键
func userToken() string { return constants.StorageKeyToken }

// adminToken 管理员 token 键
func adminToken() string { return constants.StorageKeyAdminToken }
