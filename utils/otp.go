package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	otpCooldown  = 60 * time.Second
	verifiedTTL  = 30 * time.Minute
	otpKeyPrefix = "otp:cooldown:"
	verifiedKey  = "otp:verified:"
)

// MarkOTPRequested records an OTP send for the given email and enforces a
// cooldown between sends. Returns an error while the cooldown is active.
func MarkOTPRequested(email string) error {
	ctx := context.Background()
	client := GetOTPCacheClient()
	if client == nil {
		return fmt.Errorf("OTP cache client not initialized")
	}

	key := otpKeyPrefix + email
	ok, err := client.SetNX(ctx, key, time.Now().Unix(), otpCooldown).Result()
	if err != nil {
		GetLogger().Error("Failed to record OTP cooldown", zap.Error(err))
		return fmt.Errorf("failed to record OTP request: %w", err)
	}
	if !ok {
		return fmt.Errorf("an OTP was sent recently; wait before requesting another")
	}
	return nil
}

// MarkEmailVerified records a successful OTP verification so a recreated
// session within the TTL does not force the user through verification again.
func MarkEmailVerified(email string) error {
	ctx := context.Background()
	client := GetOTPCacheClient()
	if client == nil {
		return fmt.Errorf("OTP cache client not initialized")
	}
	if err := client.Set(ctx, verifiedKey+email, "1", verifiedTTL).Err(); err != nil {
		GetLogger().Error("Failed to cache verified email", zap.Error(err))
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	return nil
}

// IsEmailVerified reports whether the email was verified recently.
func IsEmailVerified(email string) bool {
	ctx := context.Background()
	client := GetOTPCacheClient()
	if client == nil {
		return false
	}
	_, err := client.Get(ctx, verifiedKey+email).Result()
	if err != nil {
		if err != redis.Nil {
			GetLogger().Error("Failed to read verified email marker", zap.Error(err))
		}
		return false
	}
	return true
}

// ClearEmailVerification drops the verified marker, used when the user edits
// the email field after verifying it.
func ClearEmailVerification(email string) {
	ctx := context.Background()
	client := GetOTPCacheClient()
	if client == nil {
		return
	}
	if err := client.Del(ctx, verifiedKey+email).Err(); err != nil {
		GetLogger().Error("Failed to clear verified email marker", zap.Error(err))
	}
}
