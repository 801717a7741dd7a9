// Package tokens holds the static token catalog: the wrapped-native and
// stablecoin bridge tokens per chain, plus a registry for resolving
// user-supplied addresses to full token identities.
package tokens

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"swapScope/internal/model"
	"swapScope/pkg/swap"
)

// Mainnet chain id.
const MainnetChainID uint64 = 1

var (
	MainnetWETH = swap.NewToken(MainnetChainID, common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), 18, "WETH", "Wrapped Ether")
	MainnetDAI  = swap.NewToken(MainnetChainID, common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"), 18, "DAI", "Dai Stablecoin")
	MainnetUSDC = swap.NewToken(MainnetChainID, common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), 6, "USDC", "USD Coin")
)

// DefaultBridges returns the bridge catalog for a chain, or false if the
// chain has none configured.
func DefaultBridges(chainID uint64) (swap.Bridges, bool) {
	if chainID != MainnetChainID {
		return swap.Bridges{}, false
	}
	return swap.Bridges{
		WrappedNative: MainnetWETH,
		Stables:       []swap.Token{MainnetDAI, MainnetUSDC},
	}, true
}

// Registry resolves addresses to tokens, seeded with the well-known catalog
// and extended as new tokens are discovered on chain.
type Registry struct {
	chainID uint64

	mu   sync.RWMutex
	data map[common.Address]swap.Token
}

// NewRegistry builds a registry for one chain, preloaded with that chain's
// well-known tokens.
func NewRegistry(chainID uint64) *Registry {
	r := &Registry{chainID: chainID, data: make(map[common.Address]swap.Token)}
	if chainID == MainnetChainID {
		for _, token := range []swap.Token{MainnetWETH, MainnetDAI, MainnetUSDC} {
			r.data[token.Address] = token
		}
	}
	return r
}

// Get returns the token for an address if known.
func (r *Registry) Get(address common.Address) (swap.Token, bool) {
	r.mu.RLock()
	token, ok := r.data[address]
	r.mu.RUnlock()
	return token, ok
}

// Put records a token, keyed by its address.
func (r *Registry) Put(token swap.Token) error {
	if token.ChainID != r.chainID {
		return fmt.Errorf("token chain %d does not match registry chain %d", token.ChainID, r.chainID)
	}
	r.mu.Lock()
	r.data[token.Address] = token
	r.mu.Unlock()
	return nil
}

// FromMeta converts fetched ERC20 metadata into a token on the registry's
// chain.
func (r *Registry) FromMeta(meta model.TokenMeta) swap.Token {
	return swap.NewToken(r.chainID, common.HexToAddress(meta.Address), meta.Decimals, meta.Symbol, meta.Name)
}
