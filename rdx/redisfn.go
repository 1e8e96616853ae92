package rdx

import (
	"os"

	"greenzest/globals"

	"github.com/redis/go-redis/v9"
)

var Conn = redis.NewClient(&redis.Options{
	Addr: redisAddr(),
})

func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// Active-session token store. Login writes the issued token here, logout
// removes it, and Authenticate checks the presented token against it, so a
// dropped entry revokes the session before the JWT expires.

const sessionHash = "sessions"

func StoreSessionToken(userID, token string) error {
	return Conn.HSet(globals.Ctx, sessionHash, userID, token).Err()
}

func GetSessionToken(userID string) (string, error) {
	return Conn.HGet(globals.Ctx, sessionHash, userID).Result()
}

func DropSessionToken(userID string) error {
	return Conn.HDel(globals.Ctx, sessionHash, userID).Err()
}
