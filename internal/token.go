package internal

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jesuisfatih/eagledtfprint-sub004/internal/config"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal/constants"
	inErrors "github.com/jesuisfatih/eagledtfprint-sub004/internal/errors"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal/log"
)

// VerifyToken parses the merchant-dashboard JWT. The subject claim carries
// the merchant id.
func VerifyToken(c context.Context, token string) (*jwt.Token, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VerifyToken").
		Logger()

	cfg := config.Get(c, constants.AppCartService)

	logger = logger.With().Str(log.KeyProcess, "parsing claims").Logger()
	logger.Trace().Msg("parsing claims")
	jwtToken, err := jwt.ParseWithClaims(token,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.SecretKey), nil
		},
		jwt.WithAudience(constants.AudienceMerchant),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing claims with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if !jwtToken.Valid {
		logger.Error().Err(inErrors.ErrTokenInvalid).Msg(inErrors.ErrTokenInvalid.Error())
		return nil, inErrors.ErrTokenInvalid
	}
	logger.Trace().Msg("parsed claims")

	return jwtToken, nil
}

type jwtToken struct{}

func AttachJwtToken(c context.Context, token *jwt.Token) context.Context {
	return context.WithValue(c, jwtToken{}, token)
}

func JwtTokenFromContext(c context.Context) (*jwt.Token, bool) {
	token, ok := c.Value(jwtToken{}).(*jwt.Token)
	return token, ok
}

// MerchantIdFromJwtToken reads the merchant id from the token subject.
func MerchantIdFromJwtToken(c context.Context) (uuid.UUID, error) {
	token, ok := JwtTokenFromContext(c)
	if !ok {
		return uuid.Nil, inErrors.ErrEmptyAuth
	}
	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed getting subject with error=%w", err)
	}
	if subject == "" {
		return uuid.Nil, inErrors.ErrEmptySubject
	}
	merchantId, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed parsing merchantId=%s with error=%w", subject, err)
	}
	return merchantId, nil
}
