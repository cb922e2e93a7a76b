package tools

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordEncryptAndCompare(t *testing.T) {
	hashed, err := PasswordEncrypt("Abcdef1!")
	require.NoError(t, err)
	require.NotEqual(t, "Abcdef1!", hashed)

	require.True(t, PasswordCompare("Abcdef1!", hashed))
	require.False(t, PasswordCompare("wrong", hashed))
	require.False(t, PasswordCompare("Abcdef1!", "not-a-hash"))
}
