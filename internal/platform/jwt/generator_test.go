package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestNewIssuer は各種設定でIssuerが正しく生成されることを検証します。
func TestNewIssuer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		secret     string
		expiration time.Duration
	}{
		{"standard config", "my-secret-key", 24 * time.Hour},
		{"long expiration", "secret", 24 * time.Hour * 30},
		{"short expiration", "s", time.Minute},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			iss := NewIssuer(tt.secret, tt.expiration)

			if iss == nil {
				t.Fatal("expected issuer to be non-nil")
			}
		})
	}
}

// TestIssuer_GenerateVerify は発行直後のトークンがverifyを通過し、
// 正しいユーザーIDを返すことを検証します。
func TestIssuer_GenerateVerify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		userID uint
	}{
		{"basic user", 1},
		{"large user id", 999999},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			iss := NewIssuer("test-secret", time.Hour)
			tokenStr, err := iss.Generate(tt.userID)

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tokenStr == "" {
				t.Fatal("expected non-empty token")
			}

			userID, err := iss.Verify(tokenStr)
			if err != nil {
				t.Fatalf("verify failed for a freshly issued token: %v", err)
			}
			if userID != tt.userID {
				t.Errorf("expected user id %d, got %d", tt.userID, userID)
			}
		})
	}
}

// TestIssuer_Verify_Failures は署名不正・改ざん・期限切れのトークンが
// すべて拒否されることを検証します。
func TestIssuer_Verify_Failures(t *testing.T) {
	t.Parallel()

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		iss := NewIssuer("test-secret", -time.Minute)
		tokenStr, err := iss.Generate(1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := iss.Verify(tokenStr); err == nil {
			t.Error("expected an expired token to fail verification")
		}
	})

	t.Run("wrong signing key", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := NewIssuer("secret-a", time.Hour).Generate(1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := NewIssuer("secret-b", time.Hour).Verify(tokenStr); err == nil {
			t.Error("expected a token signed with another key to fail verification")
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()

		iss := NewIssuer("test-secret", time.Hour)
		for _, tok := range []string{"", "garbage", "a.b.c"} {
			if _, err := iss.Verify(tok); err == nil {
				t.Errorf("expected malformed token %q to fail verification", tok)
			}
		}
	})

	t.Run("non-HMAC algorithm rejected", func(t *testing.T) {
		t.Parallel()

		// alg=none token with valid-looking claims
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": 1,
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		tokenStr, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := NewIssuer("test-secret", time.Hour).Verify(tokenStr); err == nil {
			t.Error("expected an unsigned token to fail verification")
		}
	})
}

// TestIssuer_GenerateToken_Claims は生成されたトークンのクレームを検証します。
func TestIssuer_GenerateToken_Claims(t *testing.T) {
	t.Parallel()

	expiration := 2 * time.Hour
	iss := NewIssuer("test-secret", expiration)

	before := time.Now().Truncate(time.Second)
	tokenStr, err := iss.Generate(42)
	after := time.Now().Truncate(time.Second).Add(time.Second) // Add 1 second buffer

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	claims := token.Claims.(jwt.MapClaims)

	if sub, ok := claims["sub"].(float64); !ok || uint(sub) != 42 {
		t.Errorf("expected sub 42, got %v", claims["sub"])
	}

	expUnix := int64(claims["exp"].(float64))
	expectedMinUnix := before.Add(expiration).Unix()
	expectedMaxUnix := after.Add(expiration).Unix()
	if expUnix < expectedMinUnix || expUnix > expectedMaxUnix {
		t.Errorf("exp %d not in expected range [%d, %d]", expUnix, expectedMinUnix, expectedMaxUnix)
	}

	iatUnix := int64(claims["iat"].(float64))
	if iatUnix < before.Unix() || iatUnix > after.Unix() {
		t.Errorf("iat %d not in expected range [%d, %d]", iatUnix, before.Unix(), after.Unix())
	}
}
