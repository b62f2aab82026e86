package auth

import (
	"errors"

	"github.com/dmitrijs2005/photoshare/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims wraps the session id handed to clients. Tokens carry no expiry:
// a session lives until logout, and the session row decides validity.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

func SignSession(sessionID string, secretKey []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{SessionID: sessionID})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// SessionIDFromToken verifies the signature and returns the session id.
// Any malformed, foreign or tampered token yields common.ErrInvalidToken.
func SessionIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", errors.Join(common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.SessionID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.SessionID, nil
}
