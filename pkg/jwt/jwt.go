package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims refleja los claims que emite la API remota: estándar JWT más el rol del usuario.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id,omitempty"`
	Role   string `json:"role,omitempty"`
}

// Info datos legibles de un token sin verificar su firma.
type Info struct {
	Subject   string
	UserID    string
	Role      string
	ExpiresAt time.Time // cero si el token no trae exp
}

// Expired indica si el token ya venció respecto de now. Sin exp nunca vence localmente.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Inspect decodifica el token emitido por la API remota sin validar la firma.
// La estación no conoce el secreto; solo se usa para anticipar el vencimiento.
// La API remota sigue siendo quien decide si el token es válido.
func Inspect(tokenString string) (Info, error) {
	if tokenString == "" {
		return Info{}, fmt.Errorf("jwt: token vacío")
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return Info{}, fmt.Errorf("jwt: token ilegible: %w", err)
	}
	info := Info{
		Subject: claims.Subject,
		UserID:  claims.UserID,
		Role:    claims.Role,
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// Generate genera un token HS256 con el formato de la API remota.
// Se usa en tests y en entornos de desarrollo sin API real.
func Generate(secret, userID, role, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Role:   role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
