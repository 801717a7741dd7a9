package dex

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"swapScope/internal/chain"
)

// ErrPairNotDeployed signals that the canonical pair address holds no
// contract: the pool was never created.
var ErrPairNotDeployed = errors.New("pair not deployed")

// Factory identifies a V2-style factory: its address and the keccak hash of
// the pair contract's creation code, both needed to derive pair addresses
// off-chain.
type Factory struct {
	Address      common.Address
	InitCodeHash common.Hash
}

// UniswapV2Mainnet is the canonical Uniswap V2 factory on Ethereum mainnet.
var UniswapV2Mainnet = Factory{
	Address:      common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f"),
	InitCodeHash: common.HexToHash("0x96e8ac4277198ff8b6f785478aa9a39f403cb768dd02cbee326c3e7da348845f"),
}

// PairAddress derives the CREATE2 address of the pool for two tokens:
// keccak256(0xff ++ factory ++ keccak256(token0 ++ token1) ++ initCodeHash),
// with the tokens in canonical (ascending address) order.
func PairAddress(factory Factory, tokenA, tokenB common.Address) common.Address {
	token0, token1 := tokenA, tokenB
	if bytesCompare(token1, token0) {
		token0, token1 = token1, token0
	}

	salt := crypto.Keccak256(token0.Bytes(), token1.Bytes())

	payload := make([]byte, 0, 85)
	payload = append(payload, 0xff)
	payload = append(payload, factory.Address.Bytes()...)
	payload = append(payload, salt...)
	payload = append(payload, factory.InitCodeHash.Bytes()...)

	return common.BytesToAddress(crypto.Keccak256(payload)[12:])
}

func bytesCompare(a, b common.Address) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Reserves is one pool's reserve snapshot in token0/token1 canonical order.
type Reserves struct {
	Reserve0           *big.Int
	Reserve1           *big.Int
	BlockTimestampLast uint32
}

// FetchReserves reads getReserves from the pair contract. Empty returndata
// means there is no contract at the address and yields ErrPairNotDeployed.
func FetchReserves(ctx context.Context, chainClient *chain.Client, pair common.Address) (Reserves, error) {
	if chainClient == nil {
		return Reserves{}, fmt.Errorf("chain client is nil")
	}

	parsed, err := PairABI()
	if err != nil {
		return Reserves{}, fmt.Errorf("parse pair abi: %w", err)
	}

	data, err := parsed.Pack("getReserves")
	if err != nil {
		return Reserves{}, fmt.Errorf("pack getReserves: %w", err)
	}

	msg := ethereum.CallMsg{To: &pair, Data: data}
	resp, err := chainClient.CallContract(ctx, msg, nil)
	if err != nil {
		return Reserves{}, fmt.Errorf("call getReserves: %w", err)
	}
	if len(resp) == 0 {
		return Reserves{}, fmt.Errorf("%w: %s", ErrPairNotDeployed, pair.Hex())
	}

	values, err := parsed.Unpack("getReserves", resp)
	if err != nil {
		return Reserves{}, fmt.Errorf("unpack getReserves: %w", err)
	}
	if len(values) != 3 {
		return Reserves{}, fmt.Errorf("getReserves return size %d", len(values))
	}

	reserve0, err := asBigInt(values[0])
	if err != nil {
		return Reserves{}, fmt.Errorf("reserve0: %w", err)
	}
	reserve1, err := asBigInt(values[1])
	if err != nil {
		return Reserves{}, fmt.Errorf("reserve1: %w", err)
	}
	tsLast, err := asBigInt(values[2])
	if err != nil {
		return Reserves{}, fmt.Errorf("blockTimestampLast: %w", err)
	}

	return Reserves{
		Reserve0:           reserve0,
		Reserve1:           reserve1,
		BlockTimestampLast: uint32(tsLast.Uint64()),
	}, nil
}
