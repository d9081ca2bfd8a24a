package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DayKey is the hash holding a monitor's current day. Fields are minute
// timestamps, values are JSON records.
func DayKey(tag string) string {
	return fmt.Sprintf("monitor:day:%s", tag)
}

func (c *Client) PutMinute(ctx context.Context, key string, ts int64, record []byte) error {
	return retry(ctx, 2, func() error {
		return c.rdb.HSet(ctx, key, strconv.FormatInt(ts, 10), record).Err()
	})
}

func (c *Client) GetDay(ctx context.Context, key string) (map[string]string, error) {
	res, err := c.rdb.HGetAll(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return map[string]string{}, nil
	}
	return res, err
}

// ArchiveDay moves key to archiveKey. A missing key is not an error: the
// monitor simply had no records that day.
func (c *Client) ArchiveDay(ctx context.Context, key, archiveKey string) error {
	err := c.rdb.Rename(ctx, key, archiveKey).Err()
	if isNoSuchKey(err) {
		return nil
	}
	return err
}

// isNoSuchKey reports a RENAME on a missing key. Redis has no error code for
// it, only the server reply text, so only typed server replies are checked.
func isNoSuchKey(err error) bool {
	var reply redis.Error
	if !errors.As(err, &reply) {
		return false
	}
	return strings.HasPrefix(strings.ToLower(reply.Error()), "err no such key")
}
