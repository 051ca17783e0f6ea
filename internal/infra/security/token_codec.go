package security

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	uuid "github.com/google/uuid"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/iamaashishjha/redis-token-black-list/internal/core/domain"
)

// ErrInvalidToken indicates a presented bearer string could not be decoded or
// failed cryptographic verification.
var ErrInvalidToken = errors.New("invalid token")

type accessTokenParams struct {
	ID int64 `json:"id"`
}

// accessTokenClaims carries the issuing application's claim layout. The user
// id lives in the nested params claim; the standard sub claim is not trusted.
type accessTokenClaims struct {
	Params accessTokenParams `json:"params"`
	jwt.RegisteredClaims
}

type refreshTokenPayload struct {
	RefreshTokenID string `json:"refresh_token_id"`
	UserID         int64  `json:"user_id"`
}

// TokenCodec turns opaque bearer strings into token identities. Access tokens
// are RS256 JWTs verified against the OAuth public key; refresh tokens are
// authenticated-encrypted blobs protected with the shared application secret.
type TokenCodec struct {
	keys KeyProvider
	aead cipher.AEAD
	now  func() time.Time
}

// NewTokenCodec constructs a codec from the keypair provider and the shared
// application secret used for refresh tokens.
func NewTokenCodec(keys KeyProvider, appSecret []byte) (*TokenCodec, error) {
	if keys == nil {
		return nil, errors.New("key provider is required")
	}
	if len(appSecret) == 0 {
		return nil, errors.New("app secret is required")
	}

	key := sha256.Sum256(appSecret)
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, fmt.Errorf("init refresh token cipher: %w", err)
	}

	codec := &TokenCodec{keys: keys, aead: aead}
	codec.now = func() time.Time { return time.Now().UTC() }
	return codec, nil
}

// WithClock overrides the codec clock for deterministic tests.
func (c *TokenCodec) WithClock(clock func() time.Time) {
	if clock != nil {
		c.now = clock
	}
}

// ParseAccessToken verifies the token signature and extracts its identity.
// Claim windows are not validated here: an already-expired token still decodes
// to an identity, and the blacklist TTL takes care of elapsed lifetimes.
func (c *TokenCodec) ParseAccessToken(token string) (domain.TokenIdentity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.TokenIdentity{}, ErrInvalidToken
	}

	claims := &accessTokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		method, ok := t.Method.(*jwt.SigningMethodRSA)
		if !ok || method == nil {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.keys.VerificationKey()
	}, jwt.WithoutClaimsValidation())
	if err != nil || parsed == nil {
		return domain.TokenIdentity{}, ErrInvalidToken
	}

	tokenID := strings.TrimSpace(claims.RegisteredClaims.ID)
	if tokenID == "" || claims.Params.ID <= 0 || claims.RegisteredClaims.ExpiresAt == nil {
		return domain.TokenIdentity{}, ErrInvalidToken
	}

	expiresAt := claims.RegisteredClaims.ExpiresAt.Time.UTC()
	return domain.TokenIdentity{
		TokenID:   tokenID,
		UserID:    claims.Params.ID,
		ExpiresAt: &expiresAt,
	}, nil
}

// DecodeRefreshToken authenticates and decrypts a refresh token blob. Refresh
// identities carry no expiry; the database row is authoritative for that.
func (c *TokenCodec) DecodeRefreshToken(token string) (domain.TokenIdentity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.TokenIdentity{}, ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw) <= c.aead.NonceSize() {
		return domain.TokenIdentity{}, ErrInvalidToken
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return domain.TokenIdentity{}, ErrInvalidToken
	}

	var payload refreshTokenPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return domain.TokenIdentity{}, ErrInvalidToken
	}
	if strings.TrimSpace(payload.RefreshTokenID) == "" || payload.UserID <= 0 {
		return domain.TokenIdentity{}, ErrInvalidToken
	}

	return domain.TokenIdentity{
		TokenID: payload.RefreshTokenID,
		UserID:  payload.UserID,
	}, nil
}

// IssueAccessToken signs a fresh access token for the supplied user. Used by
// the embedding application and by tests that need real token material.
func (c *TokenCodec) IssueAccessToken(userID int64, ttl time.Duration) (string, string, error) {
	if userID <= 0 {
		return "", "", errors.New("user id must be positive")
	}
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	signingKey, err := c.keys.SigningKey()
	if err != nil {
		return "", "", fmt.Errorf("get signing key: %w", err)
	}

	now := c.now()
	jti := uuid.NewString()
	claims := &accessTokenClaims{
		Params: accessTokenParams{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(signingKey)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	return signed, jti, nil
}

// SealRefreshToken encrypts a refresh token payload into its wire form.
func (c *TokenCodec) SealRefreshToken(tokenID string, userID int64) (string, error) {
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" {
		return "", errors.New("token id is required")
	}
	if userID <= 0 {
		return "", errors.New("user id must be positive")
	}

	plaintext, err := json.Marshal(refreshTokenPayload{
		RefreshTokenID: tokenID,
		UserID:         userID,
	})
	if err != nil {
		return "", fmt.Errorf("marshal refresh token payload: %w", err)
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}
