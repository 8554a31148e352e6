package helper

import (
	"errors"
	"fmt"

	"hotel_manager/constants"
	"hotel_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const staffLocalsKey = "staff"

var ErrEmptySecret = errors.New("jwt secret is empty")

// ParseToken verifies an HMAC-signed staff token. An empty secret verifies nothing.
func ParseToken(secret []byte, tokenString string) (*jwt.Token, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
}

// ClaimFromToken reads the staff claim set. Numbers arrive as float64 from the JSON payload.
func ClaimFromToken(token *jwt.Token) (model.TokenClaim, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, errors.New("unexpected claims type")
	}

	accountId, ok := claims["accountId"].(float64)
	if !ok {
		return model.TokenClaim{}, errors.New("token has no accountId")
	}
	claim := model.TokenClaim{AccountId: uint(accountId)}
	claim.Username, _ = claims["username"].(string)
	claim.Role, _ = claims["role"].(string)
	if hotelId, ok := claims["hotelId"].(float64); ok {
		id := uint(hotelId)
		claim.HotelId = &id
	}

	switch claim.Role {
	case constants.ROLE_ADMIN:
	case constants.ROLE_MANAGER, constants.ROLE_STAFF:
		if claim.HotelId == nil {
			return model.TokenClaim{}, errors.New("hotel staff token without hotelId")
		}
	default:
		return model.TokenClaim{}, fmt.Errorf("role %q is not staff", claim.Role)
	}
	return claim, nil
}

func SetStaff(c *fiber.Ctx, claim model.TokenClaim) {
	c.Locals(staffLocalsKey, claim)
}

func GetStaffFromToken(c *fiber.Ctx) (model.TokenClaim, bool) {
	claim, ok := c.Locals(staffLocalsKey).(model.TokenClaim)
	return claim, ok
}

// CanAccessHotel allows admins everywhere and everyone else only in their own hotel.
func CanAccessHotel(claim model.TokenClaim, hotelID uint) bool {
	if claim.Role == constants.ROLE_ADMIN {
		return true
	}
	return claim.HotelId != nil && *claim.HotelId == hotelID
}
