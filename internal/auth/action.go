package auth

import "github.com/ashikwekenneth/Akawo-App/internal/domain"

// State is the authentication slice. IsAuthenticated holds exactly
// when both User and Token are set.
type State struct {
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"is_authenticated"`
	Token           string       `json:"token,omitempty"`
	Loading         bool         `json:"loading"`
	Error           string       `json:"error,omitempty"`
}

type actionKind int

const (
	actionStart actionKind = iota
	actionSuccess
	actionFailure
	actionLogout
	actionUserUpdated
	actionClearError
)

type action struct {
	kind  actionKind
	user  *domain.User
	token string
	err   string
}

// reduce maps (state, action) to the next state. Pure; every observable
// transition of the store goes through here.
func reduce(s State, a action) State {
	switch a.kind {
	case actionStart:
		return State{User: s.User, IsAuthenticated: s.IsAuthenticated, Token: s.Token, Loading: true}
	case actionSuccess:
		return State{User: a.user, IsAuthenticated: true, Token: a.token}
	case actionFailure:
		return State{User: s.User, IsAuthenticated: s.IsAuthenticated, Token: s.Token, Error: a.err}
	case actionLogout:
		return State{}
	case actionUserUpdated:
		return State{User: a.user, IsAuthenticated: s.IsAuthenticated, Token: s.Token, Loading: s.Loading, Error: s.Error}
	case actionClearError:
		return State{User: s.User, IsAuthenticated: s.IsAuthenticated, Token: s.Token, Loading: s.Loading}
	}
	return s
}
