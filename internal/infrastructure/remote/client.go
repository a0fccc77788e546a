package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xiebiao/library-console/internal/infrastructure/config"
	"github.com/xiebiao/library-console/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/library-console/pkg/errors"
	"github.com/xiebiao/library-console/pkg/metrics"
)

// Client 远端借阅后端的HTTP客户端封装
//
// 设计说明:
// 1. 封装HTTP细节，仓储实现只关心路径、参数和DTO
// 2. 统一超时控制（每次调用都带Context超时，后端约定10秒）
// 3. 错误处理转换（HTTP状态码 → 业务错误），调用方拿到的
//    永远是pkg/errors定义的错误，不会看到裸的HTTP状态码
// 4. 熔断保护：后端宕机时快速失败，避免页面整体卡死
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	breaker *circuitbreaker.CircuitBreaker
}

// NewClient 创建后端客户端
func NewClient(cfg config.BackendConfig) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{},
		timeout: cfg.RequestTimeout,
	}

	if cfg.Breaker.Enabled {
		c.breaker = circuitbreaker.New("backend", circuitbreaker.Config{
			MaxRequests:      cfg.Breaker.MaxRequests,
			Interval:         cfg.Breaker.Interval,
			Timeout:          cfg.Breaker.Timeout,
			FailureThreshold: cfg.Breaker.FailureThreshold,
		})
		c.breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
			log.Printf("[breaker] %s状态变化: %s → %s", name, from, to)
			metrics.SetCircuitBreakerState(name, float64(to))
		})
	}

	return c
}

// get 发起GET请求
// resource/operation用于监控指标分类（如"book"/"searchByTitle"）
func (c *Client) get(ctx context.Context, resource, operation, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, resource, operation, http.MethodGet, path, query, nil)
}

// send 发起带JSON请求体的请求（POST/PUT/DELETE）
func (c *Client) send(ctx context.Context, resource, operation, method, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, resource, operation, method, path, nil, body)
}

func (c *Client) do(ctx context.Context, resource, operation, method, path string, query url.Values, body interface{}) ([]byte, error) {
	var raw []byte
	var callErr error

	call := func() error {
		raw, callErr = c.roundTrip(ctx, method, path, query, body)
		if callErr == nil {
			return nil
		}
		// 业务类错误（4xx映射的冲突、未找到等）不计入熔断失败，
		// 只有网络错误和后端5xx才说明依赖不健康
		if appErr := apperrors.GetAppError(callErr); appErr != nil && appErr.Code < 50000 {
			return nil
		}
		return callErr
	}

	start := time.Now()
	if c.breaker != nil {
		if err := c.breaker.Execute(call); errors.Is(err, circuitbreaker.ErrOpenState) {
			callErr = apperrors.ErrCircuitOpen
		}
	} else {
		_ = call()
	}
	elapsed := time.Since(start)

	if metrics.BackendRequestDuration != nil {
		metrics.BackendRequestDuration.WithLabelValues(resource, operation).Observe(elapsed.Seconds())
	}
	if metrics.BackendRequestsTotal != nil {
		result := "ok"
		if callErr != nil {
			result = "error"
		}
		metrics.BackendRequestsTotal.WithLabelValues(resource, operation, result).Inc()
	}

	if callErr != nil {
		return nil, callErr
	}
	return raw, nil
}

// roundTrip 执行一次HTTP往返并映射状态码
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fullURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "序列化请求体失败")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "构造请求失败")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// 超时、连接拒绝等网络层错误
		return nil, apperrors.Wrap(err, apperrors.ErrCodeTransport, "请求后端失败")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeTransport, "读取后端响应失败")
	}

	if err := mapStatus(resp.StatusCode, method, path); err != nil {
		return nil, err
	}
	return raw, nil
}

// mapStatus HTTP状态码 → 业务错误
func mapStatus(status int, method, path string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return apperrors.ErrUnauthorized
	case status == http.StatusForbidden:
		return apperrors.ErrForbidden
	case status == http.StatusNotFound:
		return apperrors.ErrNotFound
	case status == http.StatusConflict:
		return apperrors.ErrConflict
	case status >= 400 && status < 500:
		return apperrors.New(apperrors.ErrCodeBusinessError,
			fmt.Sprintf("后端拒绝了请求(%d)", status))
	default:
		return apperrors.New(apperrors.ErrCodeUnavailable,
			fmt.Sprintf("后端服务异常(%d): %s %s", status, method, path))
	}
}
