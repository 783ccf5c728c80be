package cart

import "github.com/ashikwekenneth/Akawo-App/internal/domain"

// State is the cart slice.
type State struct {
	Cart    *domain.Cart `json:"cart"`
	Loading bool         `json:"loading"`
	Error   string       `json:"error,omitempty"`
}

type actionKind int

const (
	actionStart actionKind = iota
	actionSuccess
	actionFailure
	actionClearError
)

type action struct {
	kind actionKind
	cart *domain.Cart
	err  string
}

// reduce maps (state, action) to the next state. Every operation is a
// begin/success/failure triple over these four kinds.
func reduce(s State, a action) State {
	switch a.kind {
	case actionStart:
		return State{Cart: s.Cart, Loading: true}
	case actionSuccess:
		return State{Cart: a.cart}
	case actionFailure:
		return State{Cart: s.Cart, Error: a.err}
	case actionClearError:
		return State{Cart: s.Cart, Loading: s.Loading}
	}
	return s
}
