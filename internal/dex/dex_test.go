package dex

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"

	"swapScope/internal/chain"
)

type callArgs struct {
	To    *common.Address `json:"to"`
	Input hexutil.Bytes   `json:"input"`
	Data  hexutil.Bytes   `json:"data"`
}

// fakeEth serves eth_call from a static calldata -> returndata table per
// contract. Unknown contracts return empty returndata, like a real node
// does for an address with no code.
type fakeEth struct {
	calls     int
	responses map[common.Address]map[string][]byte
}

func (f *fakeEth) BlockNumber(ctx context.Context) (hexutil.Uint64, error) {
	return hexutil.Uint64(1), nil
}

func (f *fakeEth) Call(ctx context.Context, args callArgs, _ gethrpc.BlockNumberOrHash) (hexutil.Bytes, error) {
	f.calls++
	data := args.Input
	if len(data) == 0 {
		data = args.Data
	}
	if args.To != nil {
		if contract, ok := f.responses[*args.To]; ok {
			if resp, ok := contract[string(data)]; ok {
				return hexutil.Bytes(resp), nil
			}
		}
	}
	return hexutil.Bytes{}, nil
}

func newInprocClient(t *testing.T, fe *fakeEth) *chain.Client {
	t.Helper()
	srv := gethrpc.NewServer()
	if err := srv.RegisterName("eth", fe); err != nil {
		t.Fatalf("register rpc service: %v", err)
	}
	return chain.NewClientFromRPC(gethrpc.DialInProc(srv))
}

func u256Bytes(v *big.Int) []byte {
	b := v.Bytes()
	if len(b) > 32 {
		panic("value does not fit in 32 bytes")
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

func encodeReserves(r0, r1 *big.Int, ts uint32) []byte {
	out := make([]byte, 0, 96)
	out = append(out, u256Bytes(r0)...)
	out = append(out, u256Bytes(r1)...)
	out = append(out, u256Bytes(new(big.Int).SetUint64(uint64(ts)))...)
	return out
}

func encodeString(s string) []byte {
	out := make([]byte, 0, 96)
	out = append(out, u256Bytes(big.NewInt(32))...)
	out = append(out, u256Bytes(big.NewInt(int64(len(s))))...)
	padded := make([]byte, (len(s)+31)/32*32)
	copy(padded, s)
	return append(out, padded...)
}

func mustCalldata(t *testing.T, method string) []byte {
	t.Helper()
	parsed, err := PairABI()
	if err != nil {
		t.Fatalf("parse pair abi: %v", err)
	}
	data, err := parsed.Pack(method)
	if err != nil {
		t.Fatalf("pack %s: %v", method, err)
	}
	return data
}

func erc20Calldata(t *testing.T, method string) []byte {
	t.Helper()
	parsed, err := erc20ABIStringInstance()
	if err != nil {
		t.Fatalf("parse erc20 abi: %v", err)
	}
	data, err := parsed.Pack(method)
	if err != nil {
		t.Fatalf("pack %s: %v", method, err)
	}
	return data
}

func TestPairAddressMainnet(t *testing.T) {
	dai := common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
	weth := common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	want := common.HexToAddress("0xA478c2975Ab1Ea89e8196811F51A7B7Ade33eB11")

	if got := PairAddress(UniswapV2Mainnet, dai, weth); got != want {
		t.Fatalf("pair address = %s, want %s", got.Hex(), want.Hex())
	}
	if got := PairAddress(UniswapV2Mainnet, weth, dai); got != want {
		t.Fatalf("pair address should not depend on argument order, got %s", got.Hex())
	}
}

func TestFetchReserves(t *testing.T) {
	pair := common.HexToAddress("0x0000000000000000000000000000000000000abc")
	r0 := new(big.Int).Mul(big.NewInt(100), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
	r1 := new(big.Int).Mul(big.NewInt(200000), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

	fe := &fakeEth{
		responses: map[common.Address]map[string][]byte{
			pair: {
				string(mustCalldata(t, "getReserves")): encodeReserves(r0, r1, 1700000000),
			},
		},
	}
	client := newInprocClient(t, fe)
	defer client.Close()

	reserves, err := FetchReserves(context.Background(), client, pair)
	if err != nil {
		t.Fatalf("FetchReserves: %v", err)
	}
	if reserves.Reserve0.Cmp(r0) != 0 {
		t.Fatalf("reserve0 = %s, want %s", reserves.Reserve0, r0)
	}
	if reserves.Reserve1.Cmp(r1) != 0 {
		t.Fatalf("reserve1 = %s, want %s", reserves.Reserve1, r1)
	}
	if reserves.BlockTimestampLast != 1700000000 {
		t.Fatalf("blockTimestampLast = %d", reserves.BlockTimestampLast)
	}
}

func TestFetchReservesNotDeployed(t *testing.T) {
	fe := &fakeEth{responses: map[common.Address]map[string][]byte{}}
	client := newInprocClient(t, fe)
	defer client.Close()

	pair := common.HexToAddress("0x0000000000000000000000000000000000000def")
	_, err := FetchReserves(context.Background(), client, pair)
	if !errors.Is(err, ErrPairNotDeployed) {
		t.Fatalf("err = %v, want ErrPairNotDeployed", err)
	}
}

func TestFetchTokenMeta(t *testing.T) {
	token := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	fe := &fakeEth{
		responses: map[common.Address]map[string][]byte{
			token: {
				string(erc20Calldata(t, "decimals")): u256Bytes(big.NewInt(18)),
				string(erc20Calldata(t, "symbol")):   encodeString("MOCK"),
				string(erc20Calldata(t, "name")):     encodeString("Mock Token"),
			},
		},
	}
	client := newInprocClient(t, fe)
	defer client.Close()

	cache := NewTokenMetaCache()
	meta, err := FetchTokenMeta(context.Background(), client, cache, token, nil)
	if err != nil {
		t.Fatalf("FetchTokenMeta: %v", err)
	}
	if meta.Decimals != 18 {
		t.Fatalf("decimals = %d, want 18", meta.Decimals)
	}
	if meta.Symbol != "MOCK" {
		t.Fatalf("symbol = %q, want MOCK", meta.Symbol)
	}
	if meta.Name != "Mock Token" {
		t.Fatalf("name = %q, want Mock Token", meta.Name)
	}

	callsAfterFirst := fe.calls
	again, err := FetchTokenMeta(context.Background(), client, cache, token, nil)
	if err != nil {
		t.Fatalf("FetchTokenMeta cached: %v", err)
	}
	if fe.calls != callsAfterFirst {
		t.Fatalf("cached fetch should not hit the chain, calls went %d -> %d", callsAfterFirst, fe.calls)
	}
	if again != meta {
		t.Fatalf("cached meta = %+v, want %+v", again, meta)
	}
}

func TestFetchTokenMetaBytes32Symbol(t *testing.T) {
	token := common.HexToAddress("0x00000000000000000000000000000000000000bb")

	var symbol [32]byte
	copy(symbol[:], "MKR")

	fe := &fakeEth{
		responses: map[common.Address]map[string][]byte{
			token: {
				string(erc20Calldata(t, "decimals")): u256Bytes(big.NewInt(18)),
				string(erc20Calldata(t, "symbol")):   symbol[:],
			},
		},
	}
	client := newInprocClient(t, fe)
	defer client.Close()

	meta, err := FetchTokenMeta(context.Background(), client, NewTokenMetaCache(), token, nil)
	if err != nil {
		t.Fatalf("FetchTokenMeta: %v", err)
	}
	if meta.Symbol != "MKR" {
		t.Fatalf("symbol = %q, want MKR", meta.Symbol)
	}
}
