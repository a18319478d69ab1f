package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/studytrack/studytrack-server/internal/auth"
	"github.com/studytrack/studytrack-server/internal/config"
	"github.com/studytrack/studytrack-server/internal/logger"
	"github.com/studytrack/studytrack-server/internal/service"
)

// ProvideTokenService provides the PASETO token service. The key comes from
// AUTH_KEY, or from the key file in the data path.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	keyHex, err := auth.ResolveKey(cfg.Auth.KeyHex, cfg.Storage.DataPath)
	if err != nil {
		return nil, err
	}

	log.Info("Authentication key loaded",
		"access_token_duration", cfg.Auth.AccessTokenDuration,
		"from_env", cfg.Auth.KeyHex != "",
	)

	return auth.NewTokenService(keyHex, cfg.Auth.AccessTokenDuration)
}

// Bootstrap marks that the configured admins were granted their role.
type Bootstrap struct {
	Admins []string
}

// ProvideBootstrap grants the admin role to the identities named in config.
func ProvideBootstrap(i do.Injector) (*Bootstrap, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	roles := do.MustInvoke[*service.RoleService](i)

	if err := roles.Bootstrap(context.Background(), cfg.Auth.BootstrapAdmins); err != nil {
		return nil, err
	}

	if len(cfg.Auth.BootstrapAdmins) == 0 {
		log.Warn("No bootstrap admins configured; roles can only be assigned by an existing admin")
	}

	return &Bootstrap{Admins: cfg.Auth.BootstrapAdmins}, nil
}
