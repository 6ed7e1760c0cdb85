package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistrationValidation(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{"Valid request", RegisterRequest{"alice", "pass"}, false},
		{"Username at minimum length", RegisterRequest{"bob", "1234"}, false},
		{"Username too short", RegisterRequest{"ab", "password"}, true},
		{"Password too short", RegisterRequest{"alice", "abc"}, true},
		{"Missing username", RegisterRequest{"", "password"}, true},
		{"Missing password", RegisterRequest{"alice", ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegister(tt.req)
			if tt.wantErr {
				req.Error(err)
			} else {
				req.NoError(err)
			}
		})
	}
}
