package providers

import (
	"github.com/samber/do/v2"

	"github.com/editdropapp/editdrop-server/internal/auth"
	"github.com/editdropapp/editdrop-server/internal/config"
	"github.com/editdropapp/editdrop-server/internal/logger"
)

// AuthKey is the hex-encoded PASETO symmetric key.
type AuthKey string

// ProvideAuthKey loads the configured key or generates and persists one.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Auth.TokenKeyHex != "" {
		return AuthKey(cfg.Auth.TokenKeyHex), nil
	}

	keyHex, err := auth.LoadOrGenerateKey(cfg.Storage.BasePath)
	if err != nil {
		return "", err
	}

	log.Info("Authentication key loaded", "token_duration", cfg.Auth.TokenDuration)

	return AuthKey(keyHex), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService(string(authKey), cfg.Auth.TokenDuration)
}
