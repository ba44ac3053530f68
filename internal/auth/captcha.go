package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const captchaCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCaptcha returns a 6-character challenge string.
func GenerateCaptcha() (string, error) {
	out := make([]byte, 6)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(captchaCharset))))
		if err != nil {
			return "", err
		}
		out[i] = captchaCharset[n.Int64()]
	}
	return string(out), nil
}

// GenerateOtp returns a 6-digit numeric code.
func GenerateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// CaptchaStore holds issued challenges until they are consumed or expire.
type CaptchaStore interface {
	Save(ctx context.Context, token, value string) error
	// Consume returns the stored value and invalidates the token; a missing
	// or expired token yields "".
	Consume(ctx context.Context, token string) (string, error)
}

// RedisCaptchaStore keeps challenges in Redis under a TTL, so an abandoned
// login attempt cleans itself up.
type RedisCaptchaStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCaptchaStore(client *redis.Client, ttl time.Duration) *RedisCaptchaStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisCaptchaStore{client: client, ttl: ttl}
}

func (s *RedisCaptchaStore) Save(ctx context.Context, token, value string) error {
	return s.client.Set(ctx, s.key(token), value, s.ttl).Err()
}

func (s *RedisCaptchaStore) Consume(ctx context.Context, token string) (string, error) {
	value, err := s.client.GetDel(ctx, s.key(token)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("captcha lookup: %w", err)
	}
	return value, nil
}

func (s *RedisCaptchaStore) key(token string) string {
	return "captcha:" + token
}

// NewChallengeToken mints the opaque handle a client uses to tie its CAPTCHA
// answer back to the issued challenge.
func NewChallengeToken() string {
	return uuid.NewString()
}
