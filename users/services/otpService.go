package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"dvsubmit-backend/config"
	"dvsubmit-backend/db/models"
	"dvsubmit-backend/users/repositories"

	"github.com/pquerna/otp/totp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// OtpService manages the authenticator-based second factor for admin
// accounts. Confirmed secrets live on the user row; secrets awaiting
// confirmation and login challenges are short-lived Redis entries.
type OtpService interface {
	GenerateTOTPSecret(user *models.User) (*TOTPSetup, error)
	EnableTOTP(user *models.User, code string) error
	DisableTOTP(user *models.User) error
	ValidateTOTPCode(user *models.User, code string) bool

	CreateLoginChallenge(userID string) (string, error)
	ConsumeLoginChallenge(userID, preToken string) bool
}

type TOTPSetup struct {
	Secret    string `json:"secret"`
	QRCodeURL string `json:"qr_code_url"`
}

type otpService struct {
	redisClient *redis.Client
	userRepo    repositories.UserRepository
	ctx         context.Context
}

func NewOtpService(redisClient *redis.Client, userRepo repositories.UserRepository, ctx context.Context) OtpService {
	return &otpService{redisClient: redisClient, userRepo: userRepo, ctx: ctx}
}

const (
	totpSetupTTL      = 10 * time.Minute
	loginChallengeTTL = 5 * time.Minute
)

func (os *otpService) GenerateTOTPSecret(user *models.User) (*TOTPSetup, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      config.GetEnvOrDefault("TOTP_ISSUER", "DVSubmit"),
		AccountName: user.Email,
		SecretSize:  32,
	})
	if err != nil {
		config.Logger.Error("Failed to generate TOTP secret", zap.Error(err))
		return nil, err
	}

	redisKey := "totp_setup:" + user.ID.String()
	if err := os.redisClient.Set(os.ctx, redisKey, key.Secret(), totpSetupTTL).Err(); err != nil {
		config.Logger.Error("Failed to store pending TOTP secret", zap.Error(err))
		return nil, err
	}

	return &TOTPSetup{Secret: key.Secret(), QRCodeURL: key.URL()}, nil
}

func (os *otpService) EnableTOTP(user *models.User, code string) error {
	redisKey := "totp_setup:" + user.ID.String()
	secret, err := os.redisClient.Get(os.ctx, redisKey).Result()
	if err != nil || secret == "" {
		return fmt.Errorf("no pending authenticator setup, request a new secret first")
	}

	if !totp.Validate(code, secret) {
		return fmt.Errorf("invalid authenticator code")
	}

	user.TOTPSecret = secret
	user.TOTPEnabled = true
	if _, err := os.userRepo.UpdateUser(user); err != nil {
		return err
	}

	if err := os.redisClient.Del(os.ctx, redisKey).Err(); err != nil {
		config.Logger.Warn("Failed to clear pending TOTP secret", zap.Error(err))
	}

	config.Logger.Info("Authenticator second factor enabled", zap.String("user_id", user.ID.String()))
	return nil
}

func (os *otpService) DisableTOTP(user *models.User) error {
	user.TOTPSecret = ""
	user.TOTPEnabled = false
	_, err := os.userRepo.UpdateUser(user)
	return err
}

func (os *otpService) ValidateTOTPCode(user *models.User, code string) bool {
	if !user.TOTPEnabled || user.TOTPSecret == "" {
		return false
	}
	valid := totp.Validate(code, user.TOTPSecret)
	if !valid {
		config.Logger.Warn("Invalid authenticator code", zap.String("user_id", user.ID.String()))
	}
	return valid
}

// CreateLoginChallenge issues an opaque token tying the password step of a
// login to the authenticator step that must follow it.
func (os *otpService) CreateLoginChallenge(userID string) (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		config.Logger.Error("Failed to generate login challenge", zap.Error(err))
		return "", err
	}
	preToken := base64.URLEncoding.EncodeToString(raw)

	redisKey := "login_challenge:" + userID
	if err := os.redisClient.Set(os.ctx, redisKey, preToken, loginChallengeTTL).Err(); err != nil {
		config.Logger.Error("Failed to store login challenge", zap.Error(err))
		return "", err
	}
	return preToken, nil
}

// ConsumeLoginChallenge validates and invalidates a challenge in one step.
func (os *otpService) ConsumeLoginChallenge(userID, preToken string) bool {
	redisKey := "login_challenge:" + userID
	stored, err := os.redisClient.Get(os.ctx, redisKey).Result()
	if err != nil || stored == "" || stored != preToken {
		return false
	}
	if err := os.redisClient.Del(os.ctx, redisKey).Err(); err != nil {
		config.Logger.Warn("Failed to invalidate login challenge", zap.Error(err))
	}
	return true
}
