package util

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// tokenFromHeader extracts the credential from the Authorization header and
// checks that its scheme matches the expected one (case-insensitive).
func tokenFromHeader(ctx *gin.Context, scheme string) (string, error) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return "", errors.New("missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("malformed authorization header")
	}

	if !strings.EqualFold(parts[0], scheme) {
		return "", errors.New("unexpected authorization scheme; want " + scheme)
	}

	return parts[1], nil
}

// ReadBearerToken returns the access token carried as "Authorization: Bearer <token>".
func ReadBearerToken(ctx *gin.Context) (string, error) {
	return tokenFromHeader(ctx, "Bearer")
}

// ReadRefreshToken returns the refresh token carried as "Authorization: Refresh <token>".
func ReadRefreshToken(ctx *gin.Context) (string, error) {
	return tokenFromHeader(ctx, "Refresh")
}
