package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// Optional single-session store. When redis is not configured every check
// passes and tokens are validated by signature alone.

var (
	ErrTokenNotFound = errors.New("session token not found")
	ErrTokenMismatch = errors.New("session token mismatch")
)

const (
	tokenKeyPrefix = "loreweave:session"
	tokenTTL       = 30 * time.Minute
)

var client *redis.Client

func Enabled() bool {
	return client != nil
}

func NewClient() error {
	addr := viper.GetString("redis.addr")
	if len(addr) == 0 {
		return nil
	}

	client = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err()
}

func tokenKey(accountID uint) string {
	return fmt.Sprintf("%s:%d", tokenKeyPrefix, accountID)
}

func RecordToken(ctx context.Context, accountID uint, token string) error {
	if !Enabled() {
		return nil
	}
	return client.Set(ctx, tokenKey(accountID), token, tokenTTL).Err()
}

// VerifyToken checks the presented access token is the one recorded at login
// and slides its expiry.
func VerifyToken(ctx context.Context, accountID uint, token string) error {
	if !Enabled() {
		return nil
	}

	recorded, err := client.Get(ctx, tokenKey(accountID)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrTokenNotFound
	} else if err != nil {
		return err
	}

	if recorded != token {
		return ErrTokenMismatch
	}

	return client.Expire(ctx, tokenKey(accountID), tokenTTL).Err()
}

func DropToken(ctx context.Context, accountID uint) error {
	if !Enabled() {
		return nil
	}
	return client.Del(ctx, tokenKey(accountID)).Err()
}
