package swap

import "github.com/ethereum/go-ethereum/common"

// PairState describes what the book knows about an unordered token pair.
type PairState int

const (
	// PairUnknown means no snapshot has been recorded yet: a quote over this
	// pair is pending, not impossible.
	PairUnknown PairState = iota
	// PairAbsent means the pair was looked up and does not exist or has an
	// empty reserve.
	PairAbsent
	// PairKnown means a usable reserve snapshot is present.
	PairKnown
)

type pairKey struct {
	chainID uint64
	addr0   common.Address
	addr1   common.Address
}

func keyFor(a, b Token) pairKey {
	if b.SortsBefore(a) {
		a, b = b, a
	}
	return pairKey{chainID: a.ChainID, addr0: a.Address, addr1: b.Address}
}

// PairBook holds the reserve snapshots known for one quote computation. It
// distinguishes pairs that were fetched and found empty from pairs nobody has
// looked up, so route selection can answer "pending" instead of "no route"
// while data is still arriving. A book is built fresh per quote; it is not
// safe for concurrent mutation.
type PairBook struct {
	known  map[pairKey]*Pair
	absent map[pairKey]struct{}
}

// NewPairBook returns an empty book.
func NewPairBook() *PairBook {
	return &PairBook{
		known:  make(map[pairKey]*Pair),
		absent: make(map[pairKey]struct{}),
	}
}

// Add records a usable pair snapshot, replacing any earlier entry for the
// same canonical pair.
func (b *PairBook) Add(pair *Pair) {
	key := keyFor(pair.Token0(), pair.Token1())
	b.known[key] = pair
	delete(b.absent, key)
}

// MarkAbsent records that the pair of the two tokens was looked up and is
// unusable (not deployed, or zero reserves).
func (b *PairBook) MarkAbsent(a, c Token) {
	key := keyFor(a, c)
	delete(b.known, key)
	b.absent[key] = struct{}{}
}

// Lookup returns the pair for two tokens and what the book knows about it.
func (b *PairBook) Lookup(a, c Token) (*Pair, PairState) {
	key := keyFor(a, c)
	if pair, ok := b.known[key]; ok {
		return pair, PairKnown
	}
	if _, ok := b.absent[key]; ok {
		return nil, PairAbsent
	}
	return nil, PairUnknown
}

// Pairs returns all usable snapshots, deduplicated by canonical pair
// identity.
func (b *PairBook) Pairs() []*Pair {
	pairs := make([]*Pair, 0, len(b.known))
	for _, pair := range b.known {
		pairs = append(pairs, pair)
	}
	return pairs
}

// TokenPair is an unordered candidate pair the reserve fetcher should
// resolve.
type TokenPair struct {
	A Token
	B Token
}

// Bridges is the small fixed catalog of reference tokens routes may hop
// through: the chain's wrapped native token and one or two stablecoins, in
// priority order.
type Bridges struct {
	WrappedNative Token
	Stables       []Token
}

// tokens returns the bridge tokens in route priority order.
func (br Bridges) tokens() []Token {
	return append([]Token{br.WrappedNative}, br.Stables...)
}

// CandidateTokenPairs enumerates the unordered token pairs relevant to
// quoting input against output: the direct pair, each endpoint against each
// bridge token, and the connector pairs between bridge tokens. Pairs with
// identical tokens are dropped and the result is deduplicated.
func CandidateTokenPairs(input, output Token, bridges Bridges) []TokenPair {
	seen := make(map[pairKey]struct{})
	candidates := make([]TokenPair, 0, 10)

	add := func(a, b Token) {
		if a.Equal(b) {
			return
		}
		key := keyFor(a, b)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		candidates = append(candidates, TokenPair{A: a, B: b})
	}

	add(input, output)
	bridgeTokens := bridges.tokens()
	for _, bridge := range bridgeTokens {
		add(input, bridge)
		add(output, bridge)
	}
	for i := 0; i < len(bridgeTokens); i++ {
		for j := i + 1; j < len(bridgeTokens); j++ {
			add(bridgeTokens[i], bridgeTokens[j])
		}
	}
	return candidates
}

// RouteStatus is the tri-state outcome of route selection.
type RouteStatus int

const (
	// RouteFound means a usable route was selected.
	RouteFound RouteStatus = iota
	// RoutePending means no candidate resolved but at least one leg is still
	// unknown; the caller should wait for more data rather than report
	// failure.
	RoutePending
	// RouteNone means no path exists with the pairs the book knows about.
	RouteNone
)

// BestRoute picks a route from input to output using a fixed priority order:
// the direct pair first, then a two-hop route through the wrapped native
// token, then through each stablecoin in catalog order. The first candidate
// whose legs all resolve wins. If no candidate resolves but some leg is still
// unknown the result is RoutePending.
func BestRoute(book *PairBook, input, output Token, bridges Bridges) (*Route, RouteStatus) {
	if input.Equal(output) {
		return nil, RouteNone
	}

	sawPending := false

	if pair, state := book.Lookup(input, output); state == PairKnown {
		if route, err := NewRoute([]*Pair{pair}, input); err == nil {
			return route, RouteFound
		}
	} else if state == PairUnknown {
		sawPending = true
	}

	for _, bridge := range bridges.tokens() {
		if bridge.Equal(input) || bridge.Equal(output) {
			continue
		}
		first, firstState := book.Lookup(input, bridge)
		second, secondState := book.Lookup(bridge, output)
		if firstState == PairKnown && secondState == PairKnown {
			if route, err := NewRoute([]*Pair{first, second}, input); err == nil {
				return route, RouteFound
			}
			continue
		}
		if firstState == PairUnknown || secondState == PairUnknown {
			sawPending = true
		}
	}

	if sawPending {
		return nil, RoutePending
	}
	return nil, RouteNone
}
