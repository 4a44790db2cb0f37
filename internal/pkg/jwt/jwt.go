package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/tokenstore"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// ErrNoSession is returned when the request carries no usable access token.
var ErrNoSession = errors.New("no active session")

// AccessClaims is the identity carried by an access token.
type AccessClaims struct {
	UserID     string
	Username   string
	EmployeeID string
	EmployeeNo string
	FirstName  string
	LastName   string
	Role       user.Role
}

func (c AccessClaims) FullName() string {
	return c.FirstName + " " + c.LastName
}

func (c AccessClaims) IsAdmin() bool {
	return c.Role == user.RoleAdmin
}

type Service interface {
	GenerateAccessToken(claims AccessClaims) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(ctx context.Context, token string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	revoked                   tokenstore.Store
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, revoked tokenstore.Store) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revoked:                   revoked,
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(c AccessClaims) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":     c.UserID,
		"username":    c.Username,
		"employee_id": c.EmployeeID,
		"employee_no": c.EmployeeNo,
		"first_name":  c.FirstName,
		"last_name":   c.LastName,
		"role":        string(c.Role),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) RevokeToken(ctx context.Context, token string, expiresAt time.Time) error {
	if err := j.revoked.Revoke(ctx, token, expiresAt.Sub(j.now())); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (j *JWTService) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	return j.revoked.IsRevoked(ctx, token)
}

// ClaimsFromContext reads the access claims placed on ctx by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (AccessClaims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil || claims == nil {
		return AccessClaims{}, ErrNoSession
	}

	employeeNo, ok := claims["employee_no"].(string)
	if !ok || employeeNo == "" {
		return AccessClaims{}, ErrNoSession
	}

	c := AccessClaims{EmployeeNo: employeeNo}
	c.UserID, _ = claims["user_id"].(string)
	c.Username, _ = claims["username"].(string)
	c.EmployeeID, _ = claims["employee_id"].(string)
	c.FirstName, _ = claims["first_name"].(string)
	c.LastName, _ = claims["last_name"].(string)
	if role, ok := claims["role"].(string); ok {
		c.Role = user.Role(role)
	}
	return c, nil
}

// ContextWithClaims issues a token for c and returns ctx carrying it the way
// jwtauth.Verifier would. Used by background jobs and tests.
func ContextWithClaims(ctx context.Context, svc Service, c AccessClaims) (context.Context, error) {
	tokenString, _, err := svc.GenerateAccessToken(c)
	if err != nil {
		return nil, err
	}
	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	if err != nil {
		return nil, err
	}
	return jwtauth.NewContext(ctx, token, nil), nil
}
