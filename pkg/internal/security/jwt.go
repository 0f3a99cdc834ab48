package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrRefreshExpired = errors.New("refresh token expired")
	ErrRefreshInvalid = errors.New("refresh token invalid")
)

const (
	AccessTokenTTL  = 30 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	tokenSubjectAccess  = "access"
	tokenSubjectRefresh = "refresh"
)

type Claims struct {
	AccountID uint `json:"account_id"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func accessSecret() []byte {
	return []byte(viper.GetString("security.access_secret"))
}

func refreshSecret() []byte {
	return []byte(viper.GetString("security.refresh_secret"))
}

func IssuePair(accountID uint) (TokenPair, error) {
	var pair TokenPair
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
			Subject:   tokenSubjectAccess,
		},
	})
	accessToken, err := access.SignedString(accessSecret())
	if err != nil {
		return pair, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(RefreshTokenTTL)),
			Subject:   tokenSubjectRefresh,
		},
	})
	refreshToken, err := refresh.SignedString(refreshSecret())
	if err != nil {
		return pair, err
	}

	pair.AccessToken = accessToken
	pair.RefreshToken = refreshToken
	return pair, nil
}

func parse(tokenStr string, secret []byte, subject string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject != subject {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func ParseAccess(tokenStr string) (*Claims, error) {
	return parse(tokenStr, accessSecret(), tokenSubjectAccess)
}

// RefreshPair exchanges a still-valid refresh token for a new pair.
func RefreshPair(refreshToken string) (TokenPair, error) {
	claims, err := parse(refreshToken, refreshSecret(), tokenSubjectRefresh)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return TokenPair{}, ErrRefreshExpired
		}
		return TokenPair{}, ErrRefreshInvalid
	}
	return IssuePair(claims.AccountID)
}
