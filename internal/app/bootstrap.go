package app

import (
	"errors"

	"github.com/vegvendor-client/internal/provider"
)

// BuildRunner 构建服务运行器
//
// 客户端唯一的长驻服务是实时事件订阅
func BuildRunner(container *provider.Container) (*Runner, error) {
	if container == nil {
		return nil, errors.New("container is nil")
	}
	if container.Notifier == nil {
		return nil, errors.New("notifier not initialized")
	}
	return NewRunner(container.Notifier), nil
}

// Run 长驻模式入口：保持事件订阅直到收到退出信号
func Run(container *provider.Container, opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(container)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "socket_url", opts.Config.Socket.URL)
	return RunWithOptions(runner, opts)
}
