package security

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// ErrSigningKeyUnavailable indicates no private key was configured.
var ErrSigningKeyUnavailable = errors.New("signing key not configured")

// KeyProvider supplies the asymmetric keypair protecting access tokens.
type KeyProvider interface {
	SigningKey() (*rsa.PrivateKey, error)
	VerificationKey() (*rsa.PublicKey, error)
}

// FileKeyProvider loads the OAuth keypair from PEM files supplied by the
// embedding application's secret management. The private key is optional;
// validation-only deployments carry just the public key.
type FileKeyProvider struct {
	signingKey      *rsa.PrivateKey
	verificationKey *rsa.PublicKey
}

// NewFileKeyProvider reads and parses the configured key files.
func NewFileKeyProvider(publicKeyFile, privateKeyFile string) (*FileKeyProvider, error) {
	provider := &FileKeyProvider{}

	publicData, err := os.ReadFile(publicKeyFile)
	if err != nil {
		return nil, fmt.Errorf("read public key file: %w", err)
	}
	publicKey, err := parsePublicKey(publicData)
	if err != nil {
		return nil, fmt.Errorf("parse public key %s: %w", publicKeyFile, err)
	}
	provider.verificationKey = publicKey

	if privateKeyFile != "" {
		privateData, err := os.ReadFile(privateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("read private key file: %w", err)
		}
		privateKey, err := parsePrivateKey(privateData)
		if err != nil {
			return nil, fmt.Errorf("parse private key %s: %w", privateKeyFile, err)
		}
		provider.signingKey = privateKey
	}

	return provider, nil
}

// SigningKey returns the private key when configured.
func (p *FileKeyProvider) SigningKey() (*rsa.PrivateKey, error) {
	if p.signingKey == nil {
		return nil, ErrSigningKeyUnavailable
	}
	return p.signingKey, nil
}

// VerificationKey returns the public key used to check token signatures.
func (p *FileKeyProvider) VerificationKey() (*rsa.PublicKey, error) {
	return p.verificationKey, nil
}

func parsePublicKey(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}

	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("unexpected public key type %T", parsed)
	}
	return key, nil
}

func parsePrivateKey(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("unexpected private key type %T", parsed)
	}
	return key, nil
}

// StaticKeyProvider wraps an in-memory keypair, mainly for tests and embedding
// applications that manage key material themselves.
type StaticKeyProvider struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

// SigningKey returns the wrapped private key.
func (p *StaticKeyProvider) SigningKey() (*rsa.PrivateKey, error) {
	if p.Private == nil {
		return nil, ErrSigningKeyUnavailable
	}
	return p.Private, nil
}

// VerificationKey returns the wrapped public key.
func (p *StaticKeyProvider) VerificationKey() (*rsa.PublicKey, error) {
	if p.Public == nil {
		return nil, errors.New("verification key not configured")
	}
	return p.Public, nil
}
