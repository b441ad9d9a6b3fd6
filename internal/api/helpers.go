package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/editdropapp/editdrop-server/internal/auth"
	domainerrors "github.com/editdropapp/editdrop-server/internal/errors"
)

// authenticateRequest validates the Authorization header and returns the
// token claims.
func (s *Server) authenticateRequest(authHeader string) (*auth.AccessClaims, error) {
	if authHeader == "" {
		return nil, huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, huma.Error401Unauthorized("Invalid authorization header format")
	}

	claims, err := s.services.Auth.VerifyToken(parts[1])
	if err != nil {
		return nil, huma.Error401Unauthorized("Invalid or expired token")
	}

	return claims, nil
}

// authenticateAndRequireAdmin validates the token and requires the admin role.
func (s *Server) authenticateAndRequireAdmin(authHeader string) (*auth.AccessClaims, error) {
	claims, err := s.authenticateRequest(authHeader)
	if err != nil {
		return nil, err
	}
	if !claims.IsAdmin() {
		return nil, domainerrors.Forbidden("Admin access required")
	}
	return claims, nil
}
