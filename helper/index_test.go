package helper

import (
	"errors"
	"testing"
	"time"

	"hotel_manager/constants"
	"hotel_manager/model"
	"hotel_manager/utils"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func signStaffToken(t *testing.T, secret []byte, claim model.TokenClaim, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"accountId": claim.AccountId,
		"username":  claim.Username,
		"role":      claim.Role,
		"exp":       time.Now().Add(ttl).Unix(),
	}
	if claim.HotelId != nil {
		claims["hotelId"] = *claim.HotelId
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestParseTokenRoundTrip(t *testing.T) {
	want := model.TokenClaim{AccountId: 12, Username: "frontdesk", Role: constants.ROLE_STAFF, HotelId: utils.Ptr(uint(3))}

	token, err := ParseToken(testSecret, signStaffToken(t, testSecret, want, time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	got, err := ClaimFromToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if got.AccountId != 12 || got.Username != "frontdesk" || got.Role != constants.ROLE_STAFF || got.HotelId == nil || *got.HotelId != 3 {
		t.Errorf("claim = %+v", got)
	}
}

func TestParseTokenRejects(t *testing.T) {
	admin := model.TokenClaim{AccountId: 1, Role: constants.ROLE_ADMIN}

	tests := []struct {
		name   string
		secret []byte
		token  string
	}{
		{name: "wrong secret", secret: []byte("other"), token: signStaffToken(t, testSecret, admin, time.Hour)},
		{name: "expired", secret: testSecret, token: signStaffToken(t, testSecret, admin, -time.Minute)},
		{name: "empty secret", secret: []byte{}, token: signStaffToken(t, []byte{}, admin, time.Hour)},
		{name: "not a jwt", secret: testSecret, token: "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.secret, tt.token); err == nil {
				t.Error("token accepted")
			}
		})
	}

	if _, err := ParseToken(nil, "anything"); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("nil secret: err = %v, want ErrEmptySecret", err)
	}
}

func TestClaimFromToken(t *testing.T) {
	tests := []struct {
		name    string
		claims  jwt.MapClaims
		wantErr bool
	}{
		{name: "admin without hotel", claims: jwt.MapClaims{"accountId": float64(1), "role": constants.ROLE_ADMIN}},
		{name: "manager with hotel", claims: jwt.MapClaims{"accountId": float64(2), "role": constants.ROLE_MANAGER, "hotelId": float64(4)}},
		{name: "staff without hotel", claims: jwt.MapClaims{"accountId": float64(3), "role": constants.ROLE_STAFF}, wantErr: true},
		{name: "guest role", claims: jwt.MapClaims{"accountId": float64(4), "role": "GUEST", "hotelId": float64(4)}, wantErr: true},
		{name: "missing account", claims: jwt.MapClaims{"role": constants.ROLE_ADMIN}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ClaimFromToken(jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims))
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCanAccessHotel(t *testing.T) {
	tests := []struct {
		name  string
		claim model.TokenClaim
		hotel uint
		want  bool
	}{
		{name: "admin", claim: model.TokenClaim{Role: constants.ROLE_ADMIN}, hotel: 9, want: true},
		{name: "own hotel", claim: model.TokenClaim{Role: constants.ROLE_STAFF, HotelId: utils.Ptr(uint(9))}, hotel: 9, want: true},
		{name: "other hotel", claim: model.TokenClaim{Role: constants.ROLE_MANAGER, HotelId: utils.Ptr(uint(9))}, hotel: 8},
		{name: "no hotel", claim: model.TokenClaim{Role: constants.ROLE_STAFF}, hotel: 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccessHotel(tt.claim, tt.hotel); got != tt.want {
				t.Errorf("CanAccessHotel = %v, want %v", got, tt.want)
			}
		})
	}
}
