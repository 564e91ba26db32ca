// File: internal/service/authentication.go
package service

import (
	"errors"
	"fmt"
	"time"

	"task-manager/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired 簽章正確但已過期
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid 格式錯誤、簽章錯誤、演算法不符或缺少 exp
	ErrTokenInvalid = errors.New("invalid token")
)

var parseWithClaims = jwt.ParseWithClaims

// CustomClaims 定義 JWT 負載內容
type CustomClaims struct {
	UserID uuid.UUID  `json:"userId"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService 以 HS256 發行與驗證存取令牌
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService secret 不可為空，ttl 必須為正
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret not set")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("JWT ttl must be positive, got %s", ttl)
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL 回傳令牌有效期間
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue 依據使用者資訊產生 JWT，並回傳到期時間
func (s *TokenService) Issue(user model.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := CustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("Issue: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify 驗證並解析 JWT；錯誤只會是 ErrTokenExpired 或 ErrTokenInvalid
func (s *TokenService) Verify(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := parseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if token == nil || !token.Valid || claims.UserID == uuid.Nil || !claims.Role.Valid() {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
