package coalesce

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
)

// SetJSON encodes v and queues it under key.
func SetJSON(c *Coalescer, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return c.SetItem(key, string(data))
}

// GetJSON decodes the value under key into v. It reports false when the key
// is absent.
func GetJSON(ctx context.Context, c *Coalescer, key string, v any) (bool, error) {
	raw, ok, err := c.GetItem(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}
