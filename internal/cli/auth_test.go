package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/classfunds/internal/models"
	"github.com/dmitrijs2005/classfunds/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubInputs replaces the interactive input seams. getSimpleText returns the
// given texts in order, getPassword returns the given password.
func stubInputs(t *testing.T, texts []string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		text := texts[i]
		i++
		return text, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

func TestRegister_Success(t *testing.T) {
	var gotLogin, gotName string
	var gotPass []byte
	f := &fakeUsers{
		registerFn: func(login, displayName string, password []byte) (*models.Identity, error) {
			gotLogin, gotName = login, displayName
			gotPass = append([]byte(nil), password...)
			return &models.Identity{ID: "id1", Login: login, DisplayName: displayName}, nil
		},
	}
	a := &App{logger: nopLogger{}, users: f}

	restore := stubInputs(t, []string{"alice", "Alice"}, []byte("secret"))
	defer restore()
	var lines []string
	defer capturePrintln(&lines)()

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "alice", gotLogin)
	assert.Equal(t, "Alice", gotName)
	assert.Equal(t, "secret", string(gotPass))
}

func TestRegister_ErrorPropagates(t *testing.T) {
	f := &fakeUsers{
		registerFn: func(string, string, []byte) (*models.Identity, error) {
			return nil, errors.New("taken")
		},
	}
	a := &App{logger: nopLogger{}, users: f}

	restore := stubInputs(t, []string{"alice", "Alice"}, []byte("secret"))
	defer restore()
	var lines []string
	defer capturePrintln(&lines)()

	assert.Error(t, a.Register(context.Background()))
}

func TestLogin_Success(t *testing.T) {
	f := &fakeUsers{
		loginFn: func(login string, password []byte) (*services.TokenPair, error) {
			assert.Equal(t, "alice", login)
			assert.Equal(t, "secret", string(password))
			return &services.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
		},
		actorFn: okActor("u1"),
		currentFn: func(userID string) (*models.User, error) {
			assert.Equal(t, "u1", userID)
			return &models.User{ID: userID, Name: "Alice", Role: models.RoleTreasurer}, nil
		},
	}
	a := &App{logger: nopLogger{}, users: f}

	restore := stubInputs(t, []string{"alice"}, []byte("secret"))
	defer restore()
	var lines []string
	defer capturePrintln(&lines)()

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "access", a.accessToken)
	assert.Equal(t, "refresh", a.refreshToken)
	assert.Equal(t, "Alice", a.userName)
	assert.True(t, a.isLoggedIn())
}

func TestLogin_BadCredentials(t *testing.T) {
	f := &fakeUsers{
		loginFn: func(string, []byte) (*services.TokenPair, error) {
			return nil, errors.New("unauthorized")
		},
	}
	a := &App{logger: nopLogger{}, users: f}

	restore := stubInputs(t, []string{"alice"}, []byte("wrong"))
	defer restore()
	var lines []string
	defer capturePrintln(&lines)()

	assert.Error(t, a.Login(context.Background()))
	assert.False(t, a.isLoggedIn())
}

func TestLogout(t *testing.T) {
	a := &App{
		logger:        nopLogger{},
		accessToken:   "access",
		refreshToken:  "refresh",
		userName:      "Alice",
		classroomID:   "c1",
		classroomName: "4B",
	}

	var lines []string
	defer capturePrintln(&lines)()

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.False(t, a.hasClassroom())
}
