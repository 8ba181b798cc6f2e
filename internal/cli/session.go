package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/classfunds/internal/common"
)

// actorID resolves the acting user id from the current access token. An
// expired access token is refreshed transparently; the session only drops
// when the refresh token is rejected too.
func (a *App) actorID(ctx context.Context) (string, error) {
	if !a.isLoggedIn() {
		return "", common.ErrorUnauthorized
	}

	id, err := a.users.ActorFromToken(a.accessToken)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, common.ErrTokenExpired) {
		return "", err
	}

	pair, err := a.users.RefreshToken(ctx, a.refreshToken)
	if err != nil {
		a.clearSession()
		return "", common.ErrorUnauthorized
	}
	a.accessToken = pair.AccessToken
	a.refreshToken = pair.RefreshToken

	return a.users.ActorFromToken(a.accessToken)
}

func (a *App) clearSession() {
	a.accessToken = ""
	a.refreshToken = ""
	a.userName = ""
	a.classroomID = ""
	a.classroomName = ""
	a.dirPage = 1
	a.dirSearch = ""
}
