package middleware

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xiebiao/library-console/pkg/metrics"
)

// Logger 请求日志中间件
//
// 每个请求生成唯一的请求ID并回写到响应头，排障时前后端日志
// 可以用它对上。耗时和状态码同时进日志和Prometheus指标。
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)

		var errMsg string
		if len(c.Errors) > 0 {
			errMsg = c.Errors.String()
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		log.Printf("[HTTP] %s | %3d | %13v | %-7s %s %s",
			requestID[:8], status, latency, c.Request.Method, path, errMsg)

		if metrics.HTTPRequestsTotal != nil {
			metrics.HTTPRequestsTotal.WithLabelValues(
				c.Request.Method, path, strconv.Itoa(status)).Inc()
		}
		if metrics.HTTPRequestDuration != nil {
			metrics.HTTPRequestDuration.WithLabelValues(
				c.Request.Method, path).Observe(latency.Seconds())
		}

		// 慢请求单独提醒：后端单次调用超时10秒，控制台接口超过
		// 3秒多半是后端出问题了
		if latency > 3*time.Second {
			log.Printf("[HTTP] 慢请求警告 %s %s 耗时%v", c.Request.Method, path, latency)
		}
	}
}
