package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/scms/internal/config"
)

// Principal is the caller identified by a Casdoor token
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type"`
}

// CasdoorAuthMiddleware provides authentication using Casdoor SDK
type CasdoorAuthMiddleware struct {
	client *casdoorsdk.Client
	config config.CasdoorConfig

	// parseToken defaults to the client's JWT verification
	parseToken func(token string) (*casdoorsdk.Claims, error)
}

// NewCasdoorAuthMiddleware creates a new Casdoor authentication middleware
func NewCasdoorAuthMiddleware(cfg config.CasdoorConfig) *CasdoorAuthMiddleware {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)

	return &CasdoorAuthMiddleware{
		client:     client,
		config:     cfg,
		parseToken: client.ParseJwtToken,
	}
}

// AuthMiddleware rejects requests without a valid bearer token
func (cam *CasdoorAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": err.Error(),
			})
			return
		}

		claims, err := cam.parseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": fmt.Sprintf("invalid token: %v", err),
			})
			return
		}

		principal, err := principalFromClaims(claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": err.Error(),
			})
			return
		}

		c.Set("principal", principal)
		c.Set("user_id", principal.ID)
		c.Next()
	}
}

// OptionalAuthMiddleware records the caller when a valid token is present
func (cam *CasdoorAuthMiddleware) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.Next()
			return
		}

		if claims, err := cam.parseToken(token); err == nil {
			if principal, err := principalFromClaims(claims); err == nil {
				c.Set("principal", principal)
				c.Set("user_id", principal.ID)
			}
		}

		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("authorization header missing")
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", fmt.Errorf("invalid authorization header format")
	}
	return parts[1], nil
}

func principalFromClaims(claims *casdoorsdk.Claims) (*Principal, error) {
	id := claims.User.Id
	if id == "" {
		id = claims.User.Name
	}
	if id == "" {
		return nil, fmt.Errorf("invalid user ID in token")
	}

	return &Principal{
		ID:    id,
		Name:  claims.User.DisplayName,
		Email: claims.User.Email,
		Type:  claims.User.Type,
	}, nil
}

// GetPrincipalFromContext returns the authenticated caller
func GetPrincipalFromContext(c *gin.Context) (*Principal, error) {
	value, exists := c.Get("principal")
	if !exists {
		return nil, fmt.Errorf("principal not found in context")
	}

	principal, ok := value.(*Principal)
	if !ok {
		return nil, fmt.Errorf("invalid principal type in context")
	}
	return principal, nil
}
