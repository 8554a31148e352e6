package config

import "testing"

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("STRICT_GUEST_NAME", "")

	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Error("Load() accepted an empty JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "   ")
	if _, err := Load(); err == nil {
		t.Error("Load() accepted a blank JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	s, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if s.JWTSecret != "s3cret" || s.DefaultTimezone == "" || s.UseDatabase() {
		t.Errorf("settings = %+v", s)
	}
}
