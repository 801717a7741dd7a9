package watcher

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	gethrpc "github.com/ethereum/go-ethereum/rpc"

	"swapScope/internal/chain"
	"swapScope/internal/dex"
	"swapScope/internal/model"
	"swapScope/internal/quoter"
	"swapScope/internal/tokens"
	"swapScope/pkg/swap"
)

type callArgs struct {
	To    *common.Address `json:"to"`
	Input hexutil.Bytes   `json:"input"`
	Data  hexutil.Bytes   `json:"data"`
}

type fakeEth struct {
	blockNumber uint64
	timestamp   uint64
	responses   map[common.Address]map[string][]byte
}

func (f *fakeEth) BlockNumber(ctx context.Context) (hexutil.Uint64, error) {
	return hexutil.Uint64(f.blockNumber), nil
}

func (f *fakeEth) GetBlockByNumber(ctx context.Context, number gethrpc.BlockNumber, fullTx bool) (map[string]any, error) {
	return map[string]any{
		"parentHash":       common.Hash{},
		"sha3Uncles":       common.Hash{},
		"miner":            common.Address{},
		"stateRoot":        common.Hash{},
		"transactionsRoot": common.Hash{},
		"receiptsRoot":     common.Hash{},
		"logsBloom":        hexutil.Bytes(make([]byte, 256)),
		"difficulty":       (*hexutil.Big)(big.NewInt(0)),
		"number":           hexutil.Uint64(f.blockNumber),
		"gasLimit":         hexutil.Uint64(0),
		"gasUsed":          hexutil.Uint64(0),
		"timestamp":        hexutil.Uint64(f.timestamp),
		"extraData":        hexutil.Bytes{},
		"mixHash":          common.Hash{},
		"nonce":            hexutil.Bytes(make([]byte, 8)),
	}, nil
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

type memoryStorage struct {
	quotes    []model.QuoteRecord
	snapshots []model.PoolSnapshot
}

func (m *memoryStorage) PutQuoteBatch(quotes []model.QuoteRecord) error {
	m.quotes = append(m.quotes, quotes...)
	return nil
}

func (m *memoryStorage) PutSnapshotBatch(snapshots []model.PoolSnapshot) error {
	m.snapshots = append(m.snapshots, snapshots...)
	return nil
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

func TestTickRecordsQuotesAndSnapshots(t *testing.T) {
	weth := tokens.MainnetWETH
	dai := tokens.MainnetDAI

	pairAddr := dex.PairAddress(dex.UniswapV2Mainnet, dai.Address, weth.Address)
	getReserves := string(crypto.Keccak256([]byte("getReserves()"))[:4])
	fe := &fakeEth{
		blockNumber: 42,
		timestamp:   1700000000,
		responses: map[common.Address]map[string][]byte{
			pairAddr: {
				getReserves: encodeReserves(units(200000, 18), units(100, 18), 0),
			},
		},
	}

	srv := gethrpc.NewServer()
	if err := srv.RegisterName("eth", fe); err != nil {
		t.Fatalf("register rpc service: %v", err)
	}
	client := chain.NewClientFromRPC(gethrpc.DialInProc(srv))
	defer client.Close()

	bridges, _ := tokens.DefaultBridges(tokens.MainnetChainID)
	service := quoter.NewService(quoter.Config{
		ChainID: tokens.MainnetChainID,
		Factory: dex.UniswapV2Mainnet,
		Bridges: bridges,
	}, client, nil)

	sink := &memoryStorage{}
	runner := NewRunner(RunConfig{
		Interval: time.Minute,
		Pairs: []WatchedPair{{
			Input:       weth.Address,
			Output:      dai.Address,
			Amount:      units(1, 18),
			TradeType:   swap.ExactInput,
			SlippageBps: 50,
		}},
		Factory: dex.UniswapV2Mainnet,
		ChainID: tokens.MainnetChainID,
	}, client, service, sink, nil)

	if err := runner.tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}

	if len(sink.quotes) != 1 {
		t.Fatalf("quotes = %d, want 1", len(sink.quotes))
	}
	quote := sink.quotes[0]
	if quote.Status != "found" {
		t.Fatalf("status = %q, want found", quote.Status)
	}
	if quote.OutputAmount != "1974316068794122597700" {
		t.Fatalf("output = %s", quote.OutputAmount)
	}
	if len(quote.Route) != 2 {
		t.Fatalf("route length = %d, want 2", len(quote.Route))
	}

	if len(sink.snapshots) != 1 {
		t.Fatalf("snapshots = %d, want 1", len(sink.snapshots))
	}
	snap := sink.snapshots[0]
	if snap.PairAddress != pairAddr.Hex() {
		t.Fatalf("pair address = %s, want %s", snap.PairAddress, pairAddr.Hex())
	}
	if snap.BlockNumber != 42 || snap.Timestamp != 1700000000 {
		t.Fatalf("block labels = %d/%d", snap.BlockNumber, snap.Timestamp)
	}
	if snap.Reserve1 != units(100, 18).String() {
		t.Fatalf("reserve1 = %s", snap.Reserve1)
	}
}

func TestTickSurvivesNoRoute(t *testing.T) {
	weth := tokens.MainnetWETH
	dai := tokens.MainnetDAI

	fe := &fakeEth{blockNumber: 1, timestamp: 1, responses: map[common.Address]map[string][]byte{}}
	srv := gethrpc.NewServer()
	if err := srv.RegisterName("eth", fe); err != nil {
		t.Fatalf("register rpc service: %v", err)
	}
	client := chain.NewClientFromRPC(gethrpc.DialInProc(srv))
	defer client.Close()

	bridges, _ := tokens.DefaultBridges(tokens.MainnetChainID)
	service := quoter.NewService(quoter.Config{
		ChainID: tokens.MainnetChainID,
		Factory: dex.UniswapV2Mainnet,
		Bridges: bridges,
	}, client, nil)

	sink := &memoryStorage{}
	runner := NewRunner(RunConfig{
		Pairs: []WatchedPair{{
			Input:     weth.Address,
			Output:    dai.Address,
			Amount:    units(1, 18),
			TradeType: swap.ExactInput,
		}},
		Factory: dex.UniswapV2Mainnet,
		ChainID: tokens.MainnetChainID,
	}, client, service, sink, nil)

	if err := runner.tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}

	if len(sink.quotes) != 1 {
		t.Fatalf("quotes = %d, want 1", len(sink.quotes))
	}
	if sink.quotes[0].Status != "no_route" {
		t.Fatalf("status = %q, want no_route", sink.quotes[0].Status)
	}
	if sink.quotes[0].OutputAmount != "" {
		t.Fatal("no-route quote should not carry amounts")
	}
}
