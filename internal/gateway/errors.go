package gateway

import (
	"errors"
	"fmt"
)

// ErrUnauthorized 缺少 token、token 过期或服务端拒绝认证
var ErrUnauthorized = errors.New("unauthorized: please log in")

// APIError 服务端拒绝的请求（非 2xx 且带消息体）
type APIError struct {
	StatusCode int
	Message    string
}

// Error 实现 error 接口
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// AsAPIError 提取服务端错误，便于视图层透出原始消息
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
