package idgen

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"

	"github.com/google/uuid"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_idgen.go github.com/KirkDiggler/rajamantri/internal/common/idgen Generator

const (
	// DefaultCodeLength is the length of generated room codes
	DefaultCodeLength = 6

	// CodeAlphabet leaves out characters that are easy to misread (0/O, 1/I)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Generator produces the identifiers used across the server
type Generator interface {
	// NewID returns a random UUID string
	NewID() string

	// NewRoomCode returns a short, human friendly room code
	NewRoomCode() string
}

// Config for the default generator
type Config struct {
	// CodeLength overrides DefaultCodeLength when positive
	CodeLength int
}

// DefaultGenerator implements Generator with google/uuid and crypto/rand
type DefaultGenerator struct {
	codeLength int
}

// New creates the default generator
func New(cfg *Config) *DefaultGenerator {
	length := DefaultCodeLength
	if cfg != nil && cfg.CodeLength > 0 {
		length = cfg.CodeLength
	}

	return &DefaultGenerator{
		codeLength: length,
	}
}

// NewID returns a new UUID
func (g *DefaultGenerator) NewID() string {
	return uuid.New().String()
}

// NewRoomCode returns a random code drawn from CodeAlphabet
func (g *DefaultGenerator) NewRoomCode() string {
	code := make([]byte, g.codeLength)
	max := big.NewInt(int64(len(CodeAlphabet)))
	for i := range code {
		n, err := crand.Int(crand.Reader, max)
		if err != nil {
			// fall back to math/rand if the system source fails
			code[i] = CodeAlphabet[rand.Intn(len(CodeAlphabet))]
			continue
		}
		code[i] = CodeAlphabet[n.Int64()]
	}
	return string(code)
}
