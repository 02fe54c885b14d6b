package lib

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

// SetSessionToken stores the issued JWT in the allow-list so tokens can be
// revoked server-side before they expire.
func SetSessionToken(userID uint, token string, ttl time.Duration) {
	rd := GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Set(context.Background(), fmt.Sprintf("%d:token", userID), token, ttl).Err(); err != nil {
		log.Printf("[redis] Failed to store session token for user [%d]: %s\n", userID, err.Error())
	}
}

func CacheJSON(key string, payload string, ttl time.Duration) {
	rd := GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Set(context.Background(), key, payload, ttl).Err(); err != nil {
		log.Printf("[redis] Failed to cache %s: %s\n", key, err.Error())
	}
}

func GetCachedJSON(key string) string {
	rd := GetRedisClient()
	if rd == nil {
		return ""
	}
	val, err := rd.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return ""
	} else if err != nil {
		log.Printf("[redis] Error retrieving value for %s: %s\n", key, err.Error())
		return ""
	}
	return val
}
