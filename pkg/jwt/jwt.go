package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrMalformedToken el token no se puede decodificar (estructura, algoritmo o claims ilegibles).
	ErrMalformedToken = errors.New("jwt: token malformado")
	// ErrExpiredToken el token es legible pero su exp ya pasó.
	ErrExpiredToken = errors.New("jwt: token expirado")
)

// Claims incluye los claims estándar JWT más los roles del usuario.
// Los roles viajan en el token para que el middleware arme las autoridades sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// Service emite y valida tokens HS256. La clave se carga una sola vez al arrancar.
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option configura el Service.
type Option func(*Service)

// WithClock reemplaza el reloj (tests de expiración).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService construye el servicio de tokens. secret vacío o ttl <= 0 es un error de configuración.
func NewService(secret, issuer string, ttl time.Duration, opts ...Option) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt: ttl debe ser positivo")
	}
	s := &Service{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL vida útil fija de los tokens emitidos.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue genera un token firmado con subject, roles, iat y exp = iat + ttl.
func (s *Service) Issue(subject string, roles []string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("jwt: subject vacío")
	}
	// NumericDate trabaja en segundos; truncar aquí mantiene exp - iat == ttl exacto.
	issuedAt := s.now().Truncate(time.Second)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
		Roles: append([]string(nil), roles...),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseSubject decodifica el token y devuelve el subject.
// Devuelve ErrMalformedToken si no se puede decodificar y ErrExpiredToken si ya expiró.
// No verifica la firma: eso lo hace Validate.
func (s *Service) ParseSubject(tokenString string) (string, error) {
	claims := &Claims{}
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if token.Method != jwt.SigningMethodHS256 {
		return "", fmt.Errorf("%w: algoritmo %v", ErrMalformedToken, token.Header["alg"])
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return "", fmt.Errorf("%w: faltan sub o exp", ErrMalformedToken)
	}
	if s.expired(claims) {
		return "", ErrExpiredToken
	}
	return claims.Subject, nil
}

// Validate verifica firma, emisor y subject. Devuelve ErrExpiredToken si now > exp;
// firma o subject distintos devuelven false sin error.
func (s *Service) Validate(tokenString, expectedSubject string) (bool, error) {
	claims, err := s.verify(tokenString)
	if err != nil {
		return false, nil
	}
	if claims.ExpiresAt == nil {
		return false, nil
	}
	if s.expired(claims) {
		return false, ErrExpiredToken
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return false, nil
	}
	return claims.Subject == expectedSubject, nil
}

// ExtractRoles lee el claim de roles de un token con firma válida.
func (s *Service) ExtractRoles(tokenString string) ([]string, error) {
	claims, err := s.verify(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return append([]string(nil), claims.Roles...), nil
}

// verify parsea con verificación de firma pero sin validar tiempos;
// la expiración se evalúa con el reloj propio del servicio.
func (s *Service) verify(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

func (s *Service) expired(c *Claims) bool {
	return s.now().After(c.ExpiresAt.Time)
}
