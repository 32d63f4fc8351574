package logger

import (
	"go.uber.org/zap"
)

var log *zap.Logger = zap.NewNop()

// Init 初始化全局日志（debug 模式用开发配置，带彩色级别输出）
func Init(mode string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if mode == "debug" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	log = l
	return l, nil
}

// Sync 退出前刷盘
func Sync() {
	_ = log.Sync()
}
