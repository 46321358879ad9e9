package homgar

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/anicoll/homgar-integration/internal/pkg/model"
	"github.com/anicoll/homgar-integration/pkg/hasher"
)

// tokenRefreshMargin forces a fresh login when the cached token expires
// within the hour, so a poll cycle never runs with a token about to lapse.
const tokenRefreshMargin = time.Hour

// Login authenticates against the HomGar cloud and stores the resulting
// token in the credential cache.
func (s *service) Login(ctx context.Context, email, password string) error {
	deviceID, err := hasher.DeviceID()
	if err != nil {
		return err
	}

	var res model.LoginResponse
	if err := s.requestJSON(ctx, http.MethodPost, "/auth/basic/app/login", nil, model.LoginRequest{
		AreaCode:     s.cfg.AreaCode,
		PhoneOrEmail: email,
		Password:     hasher.PasswordDigest(password),
		DeviceID:     deviceID,
	}, false, &res); err != nil {
		return err
	}

	s.cache.Email = email
	s.cache.Token = res.Token
	s.cache.TokenExpires = time.Now().Add(time.Duration(res.TokenExpired) * time.Second)
	s.cache.RefreshToken = res.RefreshToken
	s.logger.Info("logged in", zap.Time("token_expires", s.cache.TokenExpires))

	return s.cache.Save()
}

// EnsureLoggedIn logs in when the cached token belongs to a different
// account or is within the refresh margin of expiring.
func (s *service) EnsureLoggedIn(ctx context.Context, email, password string) error {
	if s.cache.Email == email && time.Until(s.cache.TokenExpires) >= tokenRefreshMargin {
		return nil
	}
	return s.Login(ctx, email, password)
}
