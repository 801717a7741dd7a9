package swap

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

var (
	testWETH = NewToken(1, common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), 18, "WETH", "Wrapped Ether")
	testDAI  = NewToken(1, common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"), 18, "DAI", "Dai Stablecoin")
	testUSDC = NewToken(1, common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), 6, "USDC", "USD Coin")
	testUSDT = NewToken(1, common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"), 6, "USDT", "Tether USD")
)

// units converts a whole-token count into atomic units for the given
// decimals.
func units(whole int64, decimals int) *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return scale.Mul(scale, big.NewInt(whole))
}

func mustPair(t *testing.T, a Token, aRaw *big.Int, b Token, bRaw *big.Int) *Pair {
	t.Helper()
	pair, err := NewPair(NewAmount(a, aRaw), NewAmount(b, bRaw))
	if err != nil {
		t.Fatalf("new pair: %v", err)
	}
	return pair
}

// wethDaiPair is the reference pool from the quoting scenarios: 100 WETH
// against 200000 DAI, a 2000 DAI/WETH mid price.
func wethDaiPair(t *testing.T) *Pair {
	return mustPair(t, testWETH, units(100, 18), testDAI, units(200000, 18))
}

func daiUsdcPair(t *testing.T) *Pair {
	return mustPair(t, testDAI, units(200000, 18), testUSDC, units(200000, 6))
}
