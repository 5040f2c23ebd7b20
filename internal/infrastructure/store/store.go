package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mikiasgoitom/Edulearn/internal/domain/contract"
	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
	"github.com/mikiasgoitom/Edulearn/internal/infrastructure/metrics"
)

const courseListPattern = "courses:list:*"

// CourseCacheStore is a Redis-backed read-through cache for course reads.
type CourseCacheStore struct {
	rdb       redis.Cmdable
	detailTTL time.Duration
	listTTL   time.Duration
}

var _ contract.ICourseCache = (*CourseCacheStore)(nil)

func NewCourseCacheStore(rdb redis.Cmdable) *CourseCacheStore {
	return &CourseCacheStore{
		rdb:       rdb,
		detailTTL: 10 * time.Minute,
		listTTL:   2 * time.Minute,
	}
}

func courseDetailKey(id string) string { return fmt.Sprintf("courses:detail:%s", id) }

func (c *CourseCacheStore) GetCourse(ctx context.Context, id string) (*entity.Course, bool, error) {
	var course entity.Course
	found, err := c.getJSON(ctx, courseDetailKey(id), &course)
	record("detail", found, err)
	if !found || err != nil {
		return nil, false, err
	}
	return &course, true, nil
}

func (c *CourseCacheStore) SetCourse(ctx context.Context, course *entity.Course) error {
	return c.setJSON(ctx, courseDetailKey(course.ID), course, c.detailTTL)
}

func (c *CourseCacheStore) GetCoursesPage(ctx context.Context, key string) (*entity.CoursePage, bool, error) {
	var page entity.CoursePage
	found, err := c.getJSON(ctx, key, &page)
	record("list", found, err)
	if !found || err != nil {
		return nil, false, err
	}
	return &page, true, nil
}

func (c *CourseCacheStore) SetCoursesPage(ctx context.Context, key string, page *entity.CoursePage) error {
	return c.setJSON(ctx, key, page, c.listTTL)
}

// InvalidateCourseLists drops every cached list page.
func (c *CourseCacheStore) InvalidateCourseLists(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, courseListPattern, 1000).Iterator()
	pipe := c.rdb.Pipeline()
	n := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		n++
		if n%200 == 0 {
			if _, err := pipe.Exec(ctx); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if n%200 != 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// getJSON reports found=false for a missing key or an undecodable payload.
func (c *CourseCacheStore) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *CourseCacheStore) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, ttl).Err()
}

func record(kind string, found bool, err error) {
	result := "miss"
	switch {
	case err != nil:
		result = "error"
	case found:
		result = "hit"
	}
	metrics.CourseCacheRequests.WithLabelValues(kind, result).Inc()
}
