package auth

import (
	"errors"
	"time"

	"nagarsetu-backend/internal/config"
	"nagarsetu-backend/internal/models"
	"nagarsetu-backend/internal/timeutil"

	"github.com/golang-jwt/jwt/v5"
)

type JWTManager struct {
	cfg *config.Config
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{cfg: cfg}
}

// AdminClaims represents JWT claims for admin authentication.
type AdminClaims struct {
	AdminID int    `json:"admin_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"is_admin"`
	// Temp marks a short-lived token issued between password verification
	// and the two-factor code check. It grants no API access.
	Temp bool `json:"temp,omitempty"`
	jwt.RegisteredClaims
}

// CitizenClaims represents JWT claims for citizen sessions issued after OTP
// verification.
type CitizenClaims struct {
	UserID    int    `json:"user_id"`
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	IsCitizen bool   `json:"is_citizen"`
	jwt.RegisteredClaims
}

// GenerateAdminToken creates a session token for an admin.
func (j *JWTManager) GenerateAdminToken(admin *models.Admin) (string, error) {
	now := timeutil.Now()
	claims := &AdminClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		Role:    admin.Role,
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(j.cfg.JWT.ExpirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.JWT.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.JWT.Secret))
}

// GenerateTempToken creates a 5-minute token carried between the password
// step and the two-factor code step of an admin login.
func (j *JWTManager) GenerateTempToken(admin *models.Admin) (string, error) {
	now := timeutil.Now()
	claims := &AdminClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		Role:    admin.Role,
		Temp:    true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(5 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.JWT.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.JWT.Secret))
}

// ValidateAdminToken verifies an admin JWT and returns the claims. Temp
// tokens are rejected unless allowTemp is set.
func (j *JWTManager) ValidateAdminToken(tokenString string, allowTemp bool) (*AdminClaims, error) {
	claims := &AdminClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(j.cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Temp {
		if !allowTemp {
			return nil, errors.New("two-factor verification incomplete")
		}
		return claims, nil
	}
	if !claims.IsAdmin {
		return nil, errors.New("not an admin token")
	}
	return claims, nil
}

// GenerateCitizenToken creates a session token for a citizen.
func (j *JWTManager) GenerateCitizenToken(user *models.User) (string, error) {
	now := timeutil.Now()
	claims := &CitizenClaims{
		UserID:    user.ID,
		Phone:     user.Phone,
		Name:      user.Name,
		IsCitizen: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(j.cfg.JWT.ExpirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.JWT.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.JWT.Secret))
}

// ValidateCitizenToken verifies a citizen JWT and returns the claims.
func (j *JWTManager) ValidateCitizenToken(tokenString string) (*CitizenClaims, error) {
	claims := &CitizenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(j.cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if !claims.IsCitizen {
		return nil, errors.New("not a citizen token")
	}
	return claims, nil
}
