package server

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/gofiber/fiber/v3"

	"swapScope/internal/chain"
	"swapScope/internal/dex"
	"swapScope/internal/quoter"
	"swapScope/internal/tokens"
)

type callArgs struct {
	To    *common.Address `json:"to"`
	Input hexutil.Bytes   `json:"input"`
	Data  hexutil.Bytes   `json:"data"`
}

type fakeEth struct {
	responses map[common.Address]map[string][]byte
}

func (f *fakeEth) BlockNumber(ctx context.Context) (hexutil.Uint64, error) {
	return hexutil.Uint64(1), nil
}

func (f *fakeEth) Call(ctx context.Context, args callArgs, _ gethrpc.BlockNumberOrHash) (hexutil.Bytes, error) {
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

func u256Bytes(v *big.Int) []byte {
	b := v.Bytes()
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

func units(whole int64, decimals uint8) *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return new(big.Int).Mul(big.NewInt(whole), scale)
}

func newTestApp(t *testing.T, fe *fakeEth) *fiber.App {
	t.Helper()
	srv := gethrpc.NewServer()
	if err := srv.RegisterName("eth", fe); err != nil {
		t.Fatalf("register rpc service: %v", err)
	}
	client := chain.NewClientFromRPC(gethrpc.DialInProc(srv))
	t.Cleanup(client.Close)

	bridges, _ := tokens.DefaultBridges(tokens.MainnetChainID)
	service := quoter.NewService(quoter.Config{
		ChainID: tokens.MainnetChainID,
		Factory: dex.UniswapV2Mainnet,
		Bridges: bridges,
	}, client, nil)

	app := fiber.New()
	app.Get("/quote", NewQuoteHandler(nil, service).Handle())
	return app
}

func wethDaiFake() *fakeEth {
	pairAddr := dex.PairAddress(dex.UniswapV2Mainnet, tokens.MainnetDAI.Address, tokens.MainnetWETH.Address)
	getReserves := string(crypto.Keccak256([]byte("getReserves()"))[:4])
	return &fakeEth{
		responses: map[common.Address]map[string][]byte{
			pairAddr: {
				getReserves: encodeReserves(units(200000, 18), units(100, 18), 0),
			},
		},
	}
}

func TestQuoteHandlerFound(t *testing.T) {
	app := newTestApp(t, wethDaiFake())

	url := "/quote?input=" + tokens.MainnetWETH.Address.Hex() +
		"&output=" + tokens.MainnetDAI.Address.Hex() +
		"&amount=1000000000000000000&side=in&slippage_bps=50"
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body QuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "found" {
		t.Fatalf("status = %q, want found", body.Status)
	}
	if body.OutputAmount != "1974316068794122597700" {
		t.Fatalf("output = %s", body.OutputAmount)
	}
	if body.GuardAmount == "" {
		t.Fatal("guard amount missing")
	}
	if len(body.Route) != 2 {
		t.Fatalf("route length = %d, want 2", len(body.Route))
	}
}

func TestQuoteHandlerNoRoute(t *testing.T) {
	app := newTestApp(t, &fakeEth{responses: map[common.Address]map[string][]byte{}})

	url := "/quote?input=" + tokens.MainnetWETH.Address.Hex() +
		"&output=" + tokens.MainnetDAI.Address.Hex() +
		"&amount=1000000000000000000"
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestQuoteHandlerValidation(t *testing.T) {
	app := newTestApp(t, &fakeEth{responses: map[common.Address]map[string][]byte{}})

	weth := tokens.MainnetWETH.Address.Hex()
	dai := tokens.MainnetDAI.Address.Hex()

	cases := []struct {
		name string
		url  string
	}{
		{"missing params", "/quote"},
		{"bad input address", "/quote?input=xyz&output=" + dai + "&amount=1"},
		{"same addresses", "/quote?input=" + weth + "&output=" + weth + "&amount=1"},
		{"missing amount", "/quote?input=" + weth + "&output=" + dai},
		{"bad amount", "/quote?input=" + weth + "&output=" + dai + "&amount=abc"},
		{"zero amount", "/quote?input=" + weth + "&output=" + dai + "&amount=0"},
		{"bad side", "/quote?input=" + weth + "&output=" + dai + "&amount=1&side=sideways"},
		{"bad slippage", "/quote?input=" + weth + "&output=" + dai + "&amount=1&slippage_bps=20000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.url, nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestQuoteHandlerExactOutput(t *testing.T) {
	app := newTestApp(t, wethDaiFake())

	url := "/quote?input=" + tokens.MainnetWETH.Address.Hex() +
		"&output=" + tokens.MainnetDAI.Address.Hex() +
		"&amount=1000000000000000000000&side=out"
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body QuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.TradeType != "exact_output" {
		t.Fatalf("trade type = %q", body.TradeType)
	}
	if body.OutputAmount != "1000000000000000000000" {
		t.Fatalf("output = %s, want the fixed side", body.OutputAmount)
	}
}
