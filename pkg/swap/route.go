package swap

import "fmt"

// Route is a validated, ordered chain of pairs connecting an input token to
// an output token. Each consecutive pair shares exactly one token with its
// predecessor; the token path is derived at construction.
type Route struct {
	pairs []*Pair
	path  []Token
}

// NewRoute validates the pair chain against the input token and derives the
// token path. The input token must belong to the first pair; each following
// pair must contain the running token and must not repeat the previous pair's
// token set.
func NewRoute(pairs []*Pair, input Token) (*Route, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: empty pair list", ErrInvalidRoute)
	}
	if !pairs[0].Involves(input) {
		return nil, fmt.Errorf("%w: input token %s not in first pair", ErrInvalidRoute, input.Address.Hex())
	}

	path := make([]Token, 0, len(pairs)+1)
	path = append(path, input)
	current := input
	for i, pair := range pairs {
		if !pair.Involves(current) {
			return nil, fmt.Errorf("%w: pair %d does not contain token %s", ErrInvalidRoute, i, current.Address.Hex())
		}
		if i > 0 && sharedTokens(pairs[i-1], pair) != 1 {
			return nil, fmt.Errorf("%w: pairs %d and %d must share exactly one token", ErrInvalidRoute, i-1, i)
		}
		next, err := pair.Other(current)
		if err != nil {
			return nil, err
		}
		path = append(path, next)
		current = next
	}

	return &Route{pairs: pairs, path: path}, nil
}

func sharedTokens(a, b *Pair) int {
	shared := 0
	if b.Involves(a.Token0()) {
		shared++
	}
	if b.Involves(a.Token1()) {
		shared++
	}
	return shared
}

// Pairs returns the route's pair chain.
func (r *Route) Pairs() []*Pair { return r.pairs }

// Path returns the ordered token path, input first. Its length is one more
// than the number of pairs.
func (r *Route) Path() []Token { return r.path }

// Input returns the route's input token.
func (r *Route) Input() Token { return r.path[0] }

// Output returns the route's output token.
func (r *Route) Output() Token { return r.path[len(r.path)-1] }

// MidPrice is the pre-trade spot price of the whole route: the product of
// each hop's spot price in the direction of travel.
func (r *Route) MidPrice() Price {
	price, _ := r.pairs[0].PriceOf(r.path[0])
	for i := 1; i < len(r.pairs); i++ {
		hop, _ := r.pairs[i].PriceOf(r.path[i])
		price = price.MulPrice(hop)
	}
	return price
}
