package utils

import (
	"fmt"
	"sync"
	"time"
)

// 渲染缓存。原系统把商品页/文件的渲染结果缓存在 cache_entity 表里，
// 图片顺序变化后需要按 key 清理，这里用进程内 sync.Map 实现同样的语义
var (
	entityCache sync.Map
)

// cacheItem 内部结构，包含值和过期时间
type cacheItem struct {
	value      string
	expiration int64
}

const defaultTTL = 10 * time.Minute

// productKey / fileKey 缓存 key 规则
func productKey(productID int64) string { return fmt.Sprintf("node:%d", productID) }
func fileKey(fileID int64) string       { return fmt.Sprintf("file:%d", fileID) }

// SetProductCache 缓存商品页渲染结果
func SetProductCache(productID int64, value string) {
	setCache(productKey(productID), value)
}

// GetProductCache 读取商品页缓存
func GetProductCache(productID int64) (string, bool) {
	return getCache(productKey(productID))
}

// SetFileCache 缓存文件条目渲染结果
func SetFileCache(fileID int64, value string) {
	setCache(fileKey(fileID), value)
}

// GetFileCache 读取文件条目缓存
func GetFileCache(fileID int64) (string, bool) {
	return getCache(fileKey(fileID))
}

// InvalidateProduct 图片顺序变化后清掉商品页缓存
func InvalidateProduct(productID int64) {
	entityCache.Delete(productKey(productID))
}

// InvalidateFile 删除图片后清掉文件条目缓存
func InvalidateFile(fileID int64) {
	entityCache.Delete(fileKey(fileID))
}

func setCache(key, value string) {
	entityCache.Store(key, cacheItem{
		value:      value,
		expiration: time.Now().Add(defaultTTL).Unix(),
	})
}

func getCache(key string) (string, bool) {
	val, ok := entityCache.Load(key)
	if !ok {
		return "", false
	}

	item := val.(cacheItem)

	// 懒删除
	if time.Now().Unix() > item.expiration {
		entityCache.Delete(key)
		return "", false
	}

	return item.value, true
}
