package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"dvsubmit-backend/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Photo slots accepted by the upload endpoint. Child slots carry the child
// row id, e.g. "child:6f1c...".
const (
	SlotApplicant = "applicant"
	SlotSpouse    = "spouse"
	childPrefix   = "child:"
)

const signedURLTTL = 10 * time.Minute

// ValidSlot reports whether the slot names a photo position on the entry.
func ValidSlot(slot string) bool {
	return slot == SlotApplicant || slot == SlotSpouse || strings.HasPrefix(slot, childPrefix)
}

// ChildID extracts the child row id from a child slot, "" otherwise.
func ChildID(slot string) string {
	return strings.TrimPrefix(slot, childPrefix)
}

// StorageKey builds the storage path for a photo. Slots are normalized so a
// re-upload overwrites the previous file.
func StorageKey(applicationID, slot string) string {
	return fmt.Sprintf("photos/%s/%s.jpg", applicationID, strings.ReplaceAll(slot, ":", "-"))
}

// SignedURLService hands out short-lived single-use download tokens so
// photo files are never served off a guessable path.
type SignedURLService struct {
	redisClient *redis.Client
	ctx         context.Context
}

func NewSignedURLService(redisClient *redis.Client, ctx context.Context) *SignedURLService {
	return &SignedURLService{redisClient: redisClient, ctx: ctx}
}

func (s *SignedURLService) Issue(storageKey string) (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(raw)

	if err := s.redisClient.Set(s.ctx, "photo_url:"+token, storageKey, signedURLTTL).Err(); err != nil {
		config.Logger.Error("Failed to store signed URL token", zap.Error(err))
		return "", err
	}
	return token, nil
}

// Redeem resolves a token to its storage key and burns it.
func (s *SignedURLService) Redeem(token string) (string, error) {
	redisKey := "photo_url:" + token
	storageKey, err := s.redisClient.Get(s.ctx, redisKey).Result()
	if err != nil || storageKey == "" {
		return "", fmt.Errorf("token expired or unknown")
	}
	if err := s.redisClient.Del(s.ctx, redisKey).Err(); err != nil {
		config.Logger.Warn("Failed to burn signed URL token", zap.Error(err))
	}
	return storageKey, nil
}
