package user

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	jwtv4 "github.com/golang-jwt/jwt/v4"
)

const googleCertsURL = "https://www.googleapis.com/oauth2/v3/certs"

var (
	googlePublicKeys  map[string]*rsa.PublicKey
	googleKeysMutex   sync.RWMutex
	googleKeysExpires time.Time
)

type googleClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwtv4.RegisteredClaims
}

// getGooglePublicKeys fetches and caches Google's signing keys.
func getGooglePublicKeys() (map[string]*rsa.PublicKey, error) {
	googleKeysMutex.RLock()
	if time.Now().Before(googleKeysExpires) && googlePublicKeys != nil {
		defer googleKeysMutex.RUnlock()
		return googlePublicKeys, nil
	}
	googleKeysMutex.RUnlock()

	resp, err := http.Get(googleCertsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Google certs: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Google certs: %w", err)
	}

	var certs struct {
		Keys []struct {
			Kid string `json:"kid"`
			N   string `json:"n"`
			E   string `json:"e"`
		} `json:"keys"`
	}
	if err := json.Unmarshal(body, &certs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Google certs: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey)
	for _, key := range certs.Keys {
		pubKey, err := jwkToRSAPublicKey(key.N, key.E)
		if err != nil {
			return nil, fmt.Errorf("failed to parse public key %s: %w", key.Kid, err)
		}
		keys[key.Kid] = pubKey
	}

	googleKeysMutex.Lock()
	googlePublicKeys = keys
	googleKeysExpires = time.Now().Add(1 * time.Hour)
	googleKeysMutex.Unlock()

	return keys, nil
}

// jwkToRSAPublicKey builds an RSA public key from base64url modulus/exponent.
func jwkToRSAPublicKey(n, e string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, fmt.Errorf("invalid modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, fmt.Errorf("invalid exponent: %w", err)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(new(big.Int).SetBytes(eBytes).Int64()),
	}, nil
}

// validateGoogleIDToken verifies the signature and issuer of a Google ID
// token and returns its claims.
func validateGoogleIDToken(tokenStr string) (*googleClaims, error) {
	keys, err := getGooglePublicKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to get Google public keys: %w", err)
	}

	claims := &googleClaims{}
	token, err := jwtv4.ParseWithClaims(tokenStr, claims, func(token *jwtv4.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtv4.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		kid, ok := token.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, errors.New("token missing kid header")
		}
		pubKey, exists := keys[kid]
		if !exists {
			return nil, errors.New("no matching public key found")
		}
		return pubKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	issuer := claims.Issuer
	if issuer != "accounts.google.com" && issuer != "https://accounts.google.com" {
		return nil, fmt.Errorf("unexpected issuer %q", issuer)
	}
	claims.Email = strings.ToLower(strings.TrimSpace(claims.Email))
	if claims.Email == "" {
		return nil, errors.New("token missing email claim")
	}
	return claims, nil
}
