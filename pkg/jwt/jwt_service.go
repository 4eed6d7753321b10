package jwt

import (
	"Hostel-Food-Ordering/domain"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gofiber/fiber/v2/log"
)

const tokenLifetime = 120 * time.Minute

type (
	JWTService interface {
		GenerateTokenUser(userID string, role string, universityID string) string
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetClaimsByToken(token string) (*UserClaims, error)
	}

	UserClaims struct {
		UserID       string `json:"user_id"`
		Role         string `json:"role"`
		UniversityID string `json:"university_id,omitempty"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		now       func() time.Time
	}
)

func NewJWTService(secretKey string) JWTService {
	if secretKey == "" {
		log.Warn("JWT_SECRET is empty, tokens are signed with an empty key")
	}
	return &jwtService{
		secretKey: secretKey,
		issuer:    "HOSTEL-FOOD",
		now:       time.Now,
	}
}

func (j *jwtService) GenerateTokenUser(userID string, role string, universityID string) string {
	now := j.now()
	claims := UserClaims{
		userID,
		role,
		universityID,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Error(err)
	}
	return tx
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &UserClaims{}, j.parseToken)
}

func (j *jwtService) GetClaimsByToken(token string) (*UserClaims, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*UserClaims)
	if !ok || claims.UserID == "" {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Issuer != j.issuer {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
