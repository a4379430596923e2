package lib

import (
	"context"
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
	if redisHost == "" {
		return nil
	}
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

const amadeusTokenKey = "amadeus:token"

// CacheGDSToken stores the GDS access token with the TTL the token
// endpoint reported. A nil redis client is a no-op.
func CacheGDSToken(token string, ttl time.Duration) {
	rd := GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Set(context.Background(), amadeusTokenKey, token, ttl).Err(); err != nil {
		log.Printf("[redis] Failed to cache GDS token: %s\n", err.Error())
	}
}

func GetCachedGDSToken() string {
	rd := GetRedisClient()
	if rd == nil {
		return ""
	}
	val, err := rd.Get(context.Background(), amadeusTokenKey).Result()
	if err == redis.Nil {
		return ""
	} else if err != nil {
		log.Printf("[redis] Error retrieving GDS token: %s\n", err.Error())
		return ""
	}
	return val
}

// CacheOfferQuote keeps the latest authoritative re-quote for an offer
// id around for a short window so dashboards can show the verified
// price without another GDS round trip.
func CacheOfferQuote(offerId string, body string) {
	rd := GetRedisClient()
	if rd == nil || offerId == "" {
		return
	}
	key := "quote:" + offerId
	if err := rd.Set(context.Background(), key, body, 10*time.Minute).Err(); err != nil {
		log.Printf("[redis] Failed to cache quote for offer %s: %s\n", offerId, err.Error())
	}
}
