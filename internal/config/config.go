package config

import (
	"strings"

	"github.com/spf13/viper"
)

// ==================== 配置结构 ====================

// Config 全局配置（启动时加载一次，之后只读）
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	API      APIConfig      `mapstructure:"api"`
	Files    FilesConfig    `mapstructure:"files"`
	FCM      FCMConfig      `mapstructure:"fcm"`
	Store    StoreConfig    `mapstructure:"store"`

	// 状态目录：原系统把状态序列化存在 config 表里，
	// 这里改为启动时从配置读入一次，按值传递
	OrderStatuses   []OrderStatusDef   `mapstructure:"order_statuses"`
	ProductStatuses []ProductStatusDef `mapstructure:"product_statuses"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// APIConfig API 元信息
type APIConfig struct {
	Version string `mapstructure:"version"`
}

// FilesConfig 文件 URL 拼接配置（文件存储本身不归本服务管）
type FilesConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// FCMConfig 推送网关配置
type FCMConfig struct {
	URL       string `mapstructure:"url"`
	ServerKey string `mapstructure:"server_key"`
}

// StoreConfig 商店级设置
type StoreConfig struct {
	Currency string `mapstructure:"currency"`
	SiteURL  string `mapstructure:"site_url"`
	// 支付方式 id -> 展示名，未配置的原样返回 id
	PaymentMethods map[string]string `mapstructure:"payment_methods"`
}

// OrderStatusDef 订单状态定义
type OrderStatusDef struct {
	ID         string `mapstructure:"id"`
	Name       string `mapstructure:"name"`
	LanguageID string `mapstructure:"language_id"`
	State      string `mapstructure:"state"` // in_checkout / pending / processing / completed / canceled
}

// ProductStatusDef 商品状态定义
type ProductStatusDef struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

// FileURL 把存储 URI (public://xxx.jpg) 拼成对外可访问的 URL
func (f FilesConfig) FileURL(uri string) string {
	if uri == "" {
		return ""
	}
	path := strings.TrimPrefix(uri, "public://")
	return strings.TrimRight(f.BaseURL, "/") + "/" + path
}

// ==================== 加载 ====================

// Load 读取 config.yaml 并应用环境变量覆盖
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("UCMOB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// 配置文件可选，没有就全走默认值 + 环境变量
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.dsn",
		"host=localhost user=ucmob password=ucmob dbname=storefront port=5432 sslmode=disable")
	v.SetDefault("api.version", "2.0.1")
	v.SetDefault("files.base_url", "http://localhost/sites/default/files")
	v.SetDefault("fcm.url", "https://fcm.googleapis.com/fcm/send")
	v.SetDefault("fcm.server_key", "")
	v.SetDefault("store.currency", "USD")
	v.SetDefault("store.site_url", "http://localhost")
	v.SetDefault("store.payment_methods", map[string]string{
		"cod":   "Cash on delivery",
		"check": "Check / Money order",
		"other": "Other",
	})

	// Ubercart 默认状态集，可被 config.yaml 覆盖
	v.SetDefault("order_statuses", []map[string]interface{}{
		{"id": "in_checkout", "name": "In checkout", "language_id": "en", "state": "in_checkout"},
		{"id": "pending", "name": "Pending", "language_id": "en", "state": "pending"},
		{"id": "processing", "name": "Processing", "language_id": "en", "state": "processing"},
		{"id": "payment_received", "name": "Payment received", "language_id": "en", "state": "payment_received"},
		{"id": "completed", "name": "Completed", "language_id": "en", "state": "completed"},
		{"id": "canceled", "name": "Canceled", "language_id": "en", "state": "canceled"},
	})
	v.SetDefault("product_statuses", []map[string]interface{}{
		{"id": "1", "name": "Published"},
		{"id": "0", "name": "Unpublished"},
	})
}
