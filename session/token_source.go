package session

import "golang.org/x/oauth2"

var _ oauth2.TokenSource = tokenSource{}

type tokenSource struct {
	m *Manager
}

// TokenSource exposes the live session token to oauth2 based clients. Each
// call reads the current state, there is no caching and no refresh.
func (m *Manager) TokenSource() oauth2.TokenSource {
	return tokenSource{m: m}
}

func (ts tokenSource) Token() (*oauth2.Token, error) {
	token := ts.m.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}
