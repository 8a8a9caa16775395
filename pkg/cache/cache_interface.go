package cache

import (
	"context"
	"time"
)

// Counter là fixed-window counter dùng cho rate limiting
// Cho phép swap implementation (Redis, in-memory)
type Counter interface {
	// Hit tăng counter của key và trả về giá trị mới.
	// Window bắt đầu ở lần hit đầu tiên và key tự hết hạn sau window.
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)

	// Ping kiểm tra connection
	Ping(ctx context.Context) error
}
