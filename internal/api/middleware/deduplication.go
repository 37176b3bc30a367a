package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"
)

// 請求指紋快取，用於去重
var requestCache = struct {
	sync.Mutex
	requests map[string]time.Time
}{
	requests: make(map[string]time.Time),
}

var cleanupOnce sync.Once

// startDeduplicationCleanup 啟動過期指紋的定期清理（只啟動一次）
func startDeduplicationCleanup(window time.Duration) {
	cleanupOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				now := time.Now()
				requestCache.Lock()
				for k, t := range requestCache.requests {
					if now.Sub(t) > 10*window {
						delete(requestCache.requests, k)
					}
				}
				requestCache.Unlock()
			}
		}()
	})
}

// Deduplication 請求去重中間件：
// 同一 IP 在去重窗口內送出一模一樣的 POST 視為誤觸連點，直接擋掉
func Deduplication(cfg *config.Config) gin.HandlerFunc {
	window := 1 * time.Second
	if cfg != nil && cfg.DedupWindow > 0 {
		window = cfg.DedupWindow
	}
	startDeduplicationCleanup(window)

	return func(c *gin.Context) {
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		bodyHash := ""
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogError("讀取請求體失敗", zap.Error(err))
				c.Next()
				return
			}
			hash := sha256.Sum256(body)
			bodyHash = hex.EncodeToString(hash[:])

			// 讀完要放回去，後面的 handler 還要用
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		fingerprint := c.ClientIP() + ":" + c.Request.Method + ":" + c.Request.URL.Path
		if bodyHash != "" {
			fingerprint += ":" + bodyHash
		}

		now := time.Now()
		requestCache.Lock()
		lastTime, exists := requestCache.requests[fingerprint]
		if exists && now.Sub(lastTime) <= window {
			requestCache.Unlock()
			c.JSON(429, gin.H{
				"error": "Request too frequent",
				"code":  common.ErrCodeTooManyRequests,
			})
			c.Abort()
			return
		}
		requestCache.requests[fingerprint] = now
		requestCache.Unlock()

		c.Next()
	}
}
