package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"aqualeaf/internal/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Session principal roles.
const (
	RoleFarm  = "farm"
	RoleAdmin = "admin"
)

// Claims represents the identity assertion carried by a session cookie.
// Claims carry stable identity fields only; account status is deliberately
// excluded, so an already-issued session outlives a later suspension until
// its natural expiry.
type Claims struct {
	Role     string `json:"role"`
	FarmID   uint   `json:"farm_id,omitempty"`
	FarmName string `json:"farm_name,omitempty"`
	AdminID  uint   `json:"admin_id,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Manager encapsulates session token generation and validation.
type Manager struct {
	secret []byte
	issuer string
	expiry time.Duration
}

// NewManager creates a new session manager.
func NewManager(secret, issuer string, expiry time.Duration) (*Manager, error) {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if expiry <= 0 {
		expiry = time.Hour
	}
	if strings.TrimSpace(issuer) == "" {
		issuer = "aqualeaf"
	}
	return &Manager{
		secret: []byte(trimmed),
		issuer: issuer,
		expiry: expiry,
	}, nil
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	if m == nil {
		return 0
	}
	return m.expiry
}

// GenerateFarmToken issues a signed session token for a farm account.
func (m *Manager) GenerateFarmToken(farm *entity.FarmAccount) (string, time.Time, error) {
	if farm == nil || farm.FarmID == 0 {
		return "", time.Time{}, errors.New("invalid farm account for token generation")
	}
	return m.sign(Claims{
		Role:     RoleFarm,
		FarmID:   farm.FarmID,
		FarmName: farm.FarmName,
	}, fmt.Sprintf("%d", farm.FarmID))
}

// GenerateAdminToken issues a signed session token for an administrator.
func (m *Manager) GenerateAdminToken(admin *entity.Administrator) (string, time.Time, error) {
	if admin == nil || admin.AdminID == 0 {
		return "", time.Time{}, errors.New("invalid administrator for token generation")
	}
	return m.sign(Claims{
		Role:     RoleAdmin,
		AdminID:  admin.AdminID,
		Email:    admin.Email,
		Username: admin.Username,
	}, fmt.Sprintf("%d", admin.AdminID))
}

func (m *Manager) sign(claims Claims, subject string) (string, time.Time, error) {
	if m == nil {
		return "", time.Time{}, errors.New("session manager is nil")
	}
	now := time.Now().UTC()
	expiry := now.Add(m.expiry)

	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    m.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiry),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiry, nil
}

// ParseToken validates the token and returns its claims. Malformed,
// mis-signed and expired tokens all fail the same way.
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	if m == nil {
		return nil, errors.New("session manager is nil")
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
