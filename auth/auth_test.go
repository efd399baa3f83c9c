package auth

import (
	"chat-sync/errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	req := require.New(t)
	password := "MonMotDePasseTr0pSûr!"

	hash, err := HashPassword(password)
	req.NoError(err)
	req.True(strings.HasPrefix(hash, "$argon2id$"))

	match, err := ComparePassword(password, hash)
	req.NoError(err)
	req.True(match)

	// Wrong password
	match, err = ComparePassword("MauvaisMDP", hash)
	req.NoError(err)
	req.False(match)
}

func TestCompare_Invalid_Hash(t *testing.T) {
	req := require.New(t)

	_, err := ComparePassword("whatever", "$bcrypt$nope")
	req.Error(err)

	_, err = ComparePassword("whatever", "$argon2id$v=19$m=abc$salt$hash")
	req.Error(err)
}

func TestRegistrationValidation(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr error
	}{
		{"Valid request", RegisterRequest{"alice", "ComplexPass123!"}, nil},
		{"Name too short", RegisterRequest{"al", "ComplexPass123!"}, errors.ErrInvalidRequest},
		{"Name with spaces", RegisterRequest{"alice smith", "ComplexPass123!"}, errors.ErrInvalidRequest},
		{"Password too short", RegisterRequest{"alice", "Short1!"}, errors.ErrInvalidRequest},
		{"Missing digit", RegisterRequest{"alice", "NoDigitPass!!"}, errors.ErrInvalidPassword},
		{"Missing special char", RegisterRequest{"alice", "NoSpecialChar123"}, errors.ErrInvalidPassword},
		{"Missing uppercase", RegisterRequest{"alice", "nouppercase123!"}, errors.ErrInvalidPassword},
		{"Password too long", RegisterRequest{"alice", strings.Repeat("a", 73)}, errors.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegister(tt.req)
			if tt.wantErr == nil {
				req.NoError(err)
				return
			}
			req.ErrorIs(err, tt.wantErr)
		})
	}
}

func BenchmarkHashPassword(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = HashPassword("A-very-long-and-complex-password-for-bench-123!")
	}
}
