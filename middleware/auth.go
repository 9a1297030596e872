// middleware/auth.go
package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "collegeconnect-secret-change-in-production"
	}
	return []byte(secret)
}

func adminJWTSecret() []byte {
	// Admin tokens are signed with their own secret so a leaked user secret
	// cannot mint console credentials. Falls back to JWT_SECRET when unset.
	secret := os.Getenv("ADMIN_JWT_SECRET")
	if secret == "" {
		return jwtSecret()
	}
	return []byte(secret)
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	// Fall back to cookie for browser clients
	return c.Cookies("access_token")
}

func parseClaims(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(401, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(401, "Invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, fiber.NewError(401, "Token expired")
	}

	return claims, nil
}

// AuthMiddleware requires a valid user bearer token and attaches the
// caller's identity to the request context.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Missing authorization header"})
	}

	claims, err := parseClaims(tokenString, jwtSecret())
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid or expired token"})
	}

	c.Locals("userId", claims["user_id"])
	c.Locals("username", claims["username"])
	c.Locals("role", claims["role"])

	return c.Next()
}

// OptionalAuthMiddleware attaches the caller's identity when a valid token
// is presented and continues anonymously otherwise. Group listing uses it to
// show all groups to authenticated callers and public-only to anonymous ones.
func OptionalAuthMiddleware(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return c.Next()
	}

	claims, err := parseClaims(tokenString, jwtSecret())
	if err != nil {
		return c.Next()
	}

	c.Locals("userId", claims["user_id"])
	c.Locals("username", claims["username"])
	c.Locals("role", claims["role"])

	return c.Next()
}

// AdminAuthMiddleware requires a console token carrying the admin claim.
func AdminAuthMiddleware(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Missing authorization header"})
	}

	claims, err := parseClaims(tokenString, adminJWTSecret())
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid or expired token"})
	}

	isAdmin, ok := claims["is_admin"].(bool)
	if !ok || !isAdmin {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Access denied. Admin privileges required."})
	}

	c.Locals("userId", claims["user_id"])
	c.Locals("username", claims["username"])
	c.Locals("isAdmin", true)

	return c.Next()
}

// GetUserID extracts the authenticated user ID from the request context.
func GetUserID(c *fiber.Ctx) (uint, error) {
	userID := c.Locals("userId")
	if userID == nil {
		return 0, fiber.NewError(401, "User not authenticated")
	}

	switch id := userID.(type) {
	case float64:
		return uint(id), nil
	case uint:
		return id, nil
	}

	return 0, fiber.NewError(401, "Invalid user ID format")
}

// OptionalUserID returns (id, true) when the request carries an identity and
// (0, false) for anonymous callers.
func OptionalUserID(c *fiber.Ctx) (uint, bool) {
	id, err := GetUserID(c)
	if err != nil {
		return 0, false
	}
	return id, true
}

// GetUserRole returns the caller's global role claim ("user" when absent).
func GetUserRole(c *fiber.Ctx) string {
	role := c.Locals("role")
	if role == nil {
		return "user"
	}
	if r, ok := role.(string); ok && r != "" {
		return r
	}
	return "user"
}
