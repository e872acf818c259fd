package auth

import (
	"context"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type Claims struct {
	Profile struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"profile"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

const RoleAdmin = "admin"

var JWTKey = func() []byte {
	if key := os.Getenv("JWT_KEY"); key != "" {
		return []byte(key)
	}
	return []byte("smartlib-dev-key")
}()

const TokenTTL = 24 * time.Hour

// NewToken signs an HS256 token for an authorized admin.
func NewToken(username, email string, now time.Time) (string, int, error) {
	expiresAt := now.Add(TokenTTL)
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	claims.Profile.Username = username
	claims.Profile.Role = RoleAdmin

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(JWTKey)
	if err != nil {
		return "", 0, err
	}
	return signed, int(expiresAt.Unix()), nil
}

type ctxKey struct{}

type authInfo struct {
	Username string
	Role     string
}

func SetAuthContext(ctx context.Context, username, role string) context.Context {
	return context.WithValue(ctx, ctxKey{}, authInfo{Username: username, Role: role})
}

func Username(ctx context.Context) (string, bool) {
	info, ok := ctx.Value(ctxKey{}).(authInfo)
	return info.Username, ok
}
