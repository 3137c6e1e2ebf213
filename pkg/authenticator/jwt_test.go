package authenticator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testObject struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

func Test_jwtEngine_GenerateAndVerify(t *testing.T) {
	engine := NewTokenEngine("secret")

	token, err := engine.Generate(time.Minute, testObject{ID: "user1", Name: "alice"})
	require.NoError(t, err)

	var got testObject
	require.NoError(t, engine.Verify(token, &got))
	require.Equal(t, testObject{ID: "user1", Name: "alice"}, got)
}

func Test_jwtEngine_VerifyExpired(t *testing.T) {
	engine := NewTokenEngine("secret")

	token, err := engine.Generate(-time.Minute, testObject{ID: "user1"})
	require.NoError(t, err)

	var got testObject
	require.Error(t, engine.Verify(token, &got))
}

func Test_jwtEngine_VerifyWrongSecret(t *testing.T) {
	token, err := NewTokenEngine("secret").Generate(time.Minute, testObject{ID: "user1"})
	require.NoError(t, err)

	var got testObject
	require.Error(t, NewTokenEngine("another-secret").Verify(token, &got))
}
