package auth

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"acadattend_backend/internals/configs"
	"acadattend_backend/internals/constants"
	helper "acadattend_backend/internals/helpers"
)

// AuthMiddleware verifies the JWT and stores the caller identity
// {id, role, department, status} into Locals. Resolution and ledger
// code never reads the token itself.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing access token")
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token expired")
		}

		if status := stringClaim(claims, "status"); status != "" && status != constants.UserStatusActive {
			return fiber.NewError(fiber.StatusForbidden, "Account is deactivated")
		}

		userID := stringClaim(claims, "id")
		if userID == "" {
			userID = stringClaim(claims, "sub")
		}
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing user id claim")
		}

		c.Locals(helper.LocUserID, userID)
		c.Locals(helper.LocRole, strings.ToLower(stringClaim(claims, "role")))
		c.Locals(helper.LocDepartment, strings.ToUpper(stringClaim(claims, "department")))

		return c.Next()
	}
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	exp, ok := claims["exp"]
	if !ok {
		return fmt.Errorf("missing exp claim")
	}
	f, ok := exp.(float64)
	if !ok {
		return fmt.Errorf("invalid exp claim")
	}
	if time.Now().Add(-leeway).After(time.Unix(int64(f), 0)) {
		return fmt.Errorf("token expired")
	}
	return nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
