package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"spiritualgifts/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const descriptionsKey = "gifts:descriptions"

// DescriptionLookup resolves gift category names to their narrative text.
type DescriptionLookup interface {
	Lookup(ctx context.Context) (map[string]string, error)
}

// DescriptionCache reads gift descriptions from the database and, when a
// redis client is configured, keeps them in a hash:
//
//	HSET gifts:descriptions {category} {description}
//
// Descriptions only change when seeding, which calls Invalidate.
type DescriptionCache struct {
	db     *gorm.DB
	client *redis.Client
	ttl    time.Duration
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewDescriptionCache(db *gorm.DB, client *redis.Client, ttl time.Duration) *DescriptionCache {
	return &DescriptionCache{
		db:     db,
		client: client,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *DescriptionCache) Lookup(ctx context.Context) (map[string]string, error) {
	if c.client != nil {
		cached, err := c.client.HGetAll(ctx, descriptionsKey).Result()
		if err == nil && len(cached) > 0 {
			return cached, nil
		}
		if err != nil {
			log.Printf("description cache read failed, falling back to database: %v", err)
		}
	}

	// The fill is shared by all waiters and ignores the caller's cancellation.
	fillCtx := context.WithoutCancel(ctx)
	result, err, _ := c.sf.Do(descriptionsKey, func() (interface{}, error) {
		rows, err := c.List(fillCtx)
		if err != nil {
			return nil, err
		}
		descriptions := make(map[string]string, len(rows))
		for _, row := range rows {
			descriptions[row.GiftCategory] = row.Description
		}
		c.store(fillCtx, descriptions)
		return descriptions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(map[string]string), nil
}

// List returns every description ordered by category, always from the database.
func (c *DescriptionCache) List(ctx context.Context) ([]models.GiftDescription, error) {
	var rows []models.GiftDescription
	if err := c.db.WithContext(ctx).Order("gift_category").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load gift descriptions: %w", err)
	}
	return rows, nil
}

func (c *DescriptionCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, descriptionsKey).Err(); err != nil {
		log.Printf("failed to invalidate description cache: %v", err)
	}
}

func (c *DescriptionCache) store(ctx context.Context, descriptions map[string]string) {
	if c.client == nil || len(descriptions) == 0 {
		return
	}
	values := make([]interface{}, 0, len(descriptions)*2)
	for category, text := range descriptions {
		values = append(values, category, text)
	}
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, descriptionsKey)
	pipe.HSet(ctx, descriptionsKey, values...)
	if ttl := c.ttlWithJitter(); ttl > 0 {
		pipe.Expire(ctx, descriptionsKey, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("failed to cache gift descriptions: %v", err)
	}
}

func (c *DescriptionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter so instances do not all reload at once
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
