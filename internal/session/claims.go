package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")
	ErrNoUserID       = errors.New("token has no user id")
)

// Claims — то, что портал берёт из токена бэкенда.
type Claims struct {
	UserID    string
	ExpiresAt time.Time
}

// ClaimsVerifier достаёт claims из bearer-токена.
type ClaimsVerifier interface {
	Verify(token string) (*Claims, error)
}

// JWTVerifier разбирает JWT бэкенда.
//
// С секретом — проверка подписи HS256, leeway и (если задан) issuer.
// Без секрета — разбор payload без проверки подписи и ручная проверка exp.
type JWTVerifier struct {
	secret []byte
	issuer string
	leeway time.Duration
	now    func() time.Time
}

func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(secret),
		issuer: issuer,
		leeway: 5 * time.Second,
		now:    time.Now,
	}
}

// Verify возвращает claims или одну из ошибок ErrMalformedToken, ErrTokenExpired, ErrNoUserID.
func (v *JWTVerifier) Verify(token string) (*Claims, error) {
	const op = "session/claims/Verify"

	mc := jwt.MapClaims{}

	if len(v.secret) > 0 {
		opts := []jwt.ParserOption{
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithLeeway(v.leeway),
			jwt.WithTimeFunc(v.now),
		}
		if v.issuer != "" {
			opts = append(opts, jwt.WithIssuer(v.issuer))
		}

		_, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
			return v.secret, nil
		}, opts...)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
			}

			return nil, fmt.Errorf("%s: %w: %v", op, ErrMalformedToken, err)
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", op, ErrMalformedToken, err)
		}
	}

	exp, err := mc.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrMalformedToken, err)
	}

	c := &Claims{UserID: userID(mc)}
	if exp != nil {
		c.ExpiresAt = exp.Time
		if !v.now().Before(exp.Time.Add(v.leeway)) {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}
	}

	if c.UserID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoUserID)
	}

	return c, nil
}

// userID: id → userId → sub.
func userID(mc jwt.MapClaims) string {
	for _, k := range []string{"id", "userId", "sub"} {
		switch v := mc[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}

	return ""
}

var _ ClaimsVerifier = (*JWTVerifier)(nil)
