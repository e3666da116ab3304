package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthService_SignupAndLogin(t *testing.T) {
	env := setupServiceTestEnv(t)
	authService := newAuthServiceForTest(env)

	user, err := authService.Signup(SignupInput{
		Username: "alice",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.NotEqual(t, "supersecret", user.PasswordHash)

	loggedIn, err := authService.Login(LoginInput{
		Username: "alice",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)
}

func TestAuthService_SignupDuplicateUsername(t *testing.T) {
	env := setupServiceTestEnv(t)
	authService := newAuthServiceForTest(env)

	_, err := authService.Signup(SignupInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)

	_, err = authService.Signup(SignupInput{Username: "alice", Password: "othersecret"})
	require.True(t, errors.Is(err, ErrUsernameTaken))
}

func TestAuthService_SignupShortPassword(t *testing.T) {
	env := setupServiceTestEnv(t)
	authService := newAuthServiceForTest(env)

	_, err := authService.Signup(SignupInput{Username: "alice", Password: "short"})
	require.True(t, errors.Is(err, ErrPasswordTooShort))
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	env := setupServiceTestEnv(t)
	authService := newAuthServiceForTest(env)

	_, err := authService.Signup(SignupInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)

	_, err = authService.Login(LoginInput{Username: "alice", Password: "wrong"})
	require.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = authService.Login(LoginInput{Username: "nobody", Password: "supersecret"})
	require.True(t, errors.Is(err, ErrInvalidCredentials))
}
