package services

import (
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/goccy/go-json"

	"roomrent/errors"
)

// GetUserIDFromToken reads the user id from the payload of a session token
// issued by the identity service. The signature is checked upstream.
func GetUserIDFromToken(tokenString string) (uint, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return 0, errors.Unauthorized("malformed token")
	}

	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return 0, errors.NewAppError(errors.ErrCodeUnauthorized, "cannot decode token", err)
	}

	claimsMap := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claimsMap); err != nil {
		return 0, errors.NewAppError(errors.ErrCodeUnauthorized, "cannot parse token", err)
	}
	if err := claimsMap.Valid(); err != nil {
		return 0, errors.NewAppError(errors.ErrCodeUnauthorized, "token expired", err)
	}

	userInfo, ok := claimsMap["userinfo"].(map[string]interface{})
	if !ok {
		return 0, errors.Unauthorized("token has no user info")
	}
	userID, ok := userInfo["userid"].(float64)
	if !ok || userID < 1 {
		return 0, errors.Unauthorized("token has no user id")
	}
	return uint(userID), nil
}
