package inits

import (
	"fmt"
	"go.uber.org/zap"
)

// Logger 开发模式下输出可读日志，生产模式下输出 JSON ，每条日志都带上服务名
func Logger(debugMode bool, service string) (l *zap.Logger, err error) {
	if debugMode {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return l.With(zap.String("service", service)), nil
}
