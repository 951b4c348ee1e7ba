package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString_Length(t *testing.T) {
	s, err := MakeRandHexString(SessionTokenBytes)
	require.NoError(t, err)
	assert.Len(t, s, SessionTokenBytes*2)
}

func TestMakeRandHexString_Unique(t *testing.T) {
	a, err := MakeRandHexString(16)
	require.NoError(t, err)
	b, err := MakeRandHexString(16)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
