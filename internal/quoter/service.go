package quoter

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"swapScope/internal/chain"
	"swapScope/internal/dex"
	"swapScope/internal/tokens"
	"swapScope/pkg/swap"
)

// Config holds runtime settings for the quoting service.
type Config struct {
	ChainID      uint64
	Factory      dex.Factory
	Bridges      swap.Bridges
	MaxRetries   int
	RetryBackoff time.Duration
}

// Service resolves tokens, discovers pools on chain and produces quotes.
type Service struct {
	cfg      Config
	chain    *chain.Client
	registry *tokens.Registry
	meta     *dex.TokenMetaCache
	logger   *zap.Logger
}

// NewService builds a Service with its dependencies.
func NewService(cfg Config, chainClient *chain.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}
	return &Service{
		cfg:      cfg,
		chain:    chainClient,
		registry: tokens.NewRegistry(cfg.ChainID),
		meta:     dex.NewTokenMetaCache(),
		logger:   logger,
	}
}

// Bridges reports the bridge token set the service routes through.
func (s *Service) Bridges() swap.Bridges {
	return s.cfg.Bridges
}

// SetBridges replaces the bridge token set. Call before serving quotes;
// the set is read without locking on the quote path.
func (s *Service) SetBridges(bridges swap.Bridges) {
	s.cfg.Bridges = bridges
}

// ResolveToken returns the token for an address, fetching ERC-20 metadata
// from the chain on a registry miss.
func (s *Service) ResolveToken(ctx context.Context, address common.Address) (swap.Token, error) {
	if token, ok := s.registry.Get(address); ok {
		return token, nil
	}
	if s.chain == nil {
		return swap.Token{}, fmt.Errorf("unknown token %s and no chain client configured", address.Hex())
	}

	meta, err := dex.FetchTokenMeta(ctx, s.chain, s.meta, address, s.logger)
	if err != nil {
		return swap.Token{}, fmt.Errorf("resolve token %s: %w", address.Hex(), err)
	}
	token := s.registry.FromMeta(meta)
	s.registry.Put(token)
	return token, nil
}

// BuildPairBook discovers the pools reachable between the two endpoint
// tokens and the configured bridges, and loads their current reserves.
// Pairs whose contract is not deployed or whose reserves are empty are
// marked absent so routing can distinguish "no pool" from "not looked".
func (s *Service) BuildPairBook(ctx context.Context, input, output swap.Token) (*swap.PairBook, error) {
	if s.chain == nil {
		return nil, fmt.Errorf("chain client is nil")
	}

	book := swap.NewPairBook()
	candidates := swap.CandidateTokenPairs(input, output, s.cfg.Bridges)

	for _, candidate := range candidates {
		tokenA, tokenB := candidate.A, candidate.B
		pairAddr := dex.PairAddress(s.cfg.Factory, tokenA.Address, tokenB.Address)

		var reserves dex.Reserves
		err := withRetry(ctx, s.cfg.MaxRetries, s.cfg.RetryBackoff, func(ctx context.Context) error {
			var fetchErr error
			reserves, fetchErr = dex.FetchReserves(ctx, s.chain, pairAddr)
			if errors.Is(fetchErr, dex.ErrPairNotDeployed) {
				// Permanent, do not retry.
				return nil
			}
			return fetchErr
		})
		if err != nil {
			return nil, fmt.Errorf("fetch reserves for %s: %w", pairAddr.Hex(), err)
		}
		if reserves.Reserve0 == nil || reserves.Reserve0.Sign() == 0 || reserves.Reserve1.Sign() == 0 {
			book.MarkAbsent(tokenA, tokenB)
			s.logger.Debug("pair unavailable",
				zap.String("pair", pairAddr.Hex()),
				zap.String("tokenA", tokenA.Symbol),
				zap.String("tokenB", tokenB.Symbol))
			continue
		}

		// getReserves reports in canonical token0/token1 order, which
		// matches the sorted order used for address derivation.
		token0, token1 := tokenA, tokenB
		if tokenB.SortsBefore(tokenA) {
			token0, token1 = tokenB, tokenA
		}
		pair, err := swap.NewPair(
			swap.NewAmount(token0, reserves.Reserve0),
			swap.NewAmount(token1, reserves.Reserve1),
		)
		if err != nil {
			return nil, fmt.Errorf("build pair %s: %w", pairAddr.Hex(), err)
		}
		book.Add(pair)
		s.logger.Debug("pair loaded",
			zap.String("pair", pairAddr.Hex()),
			zap.String("token0", token0.Symbol),
			zap.String("token1", token1.Symbol))
	}

	return book, nil
}

// QuoteByAddress resolves both tokens, builds a fresh pair book from
// chain state and returns the best quote for the request.
func (s *Service) QuoteByAddress(ctx context.Context, inputAddr, outputAddr common.Address, amount *big.Int, tradeType swap.TradeType, slippageBps uint64) (swap.QuoteResult, error) {
	input, err := s.ResolveToken(ctx, inputAddr)
	if err != nil {
		return swap.QuoteResult{}, err
	}
	output, err := s.ResolveToken(ctx, outputAddr)
	if err != nil {
		return swap.QuoteResult{}, err
	}

	book, err := s.BuildPairBook(ctx, input, output)
	if err != nil {
		return swap.QuoteResult{}, err
	}

	return s.Quote(book, swap.QuoteRequest{
		InputToken:  input,
		OutputToken: output,
		Amount:      amount,
		TradeType:   tradeType,
		SlippageBps: slippageBps,
	})
}

// Quote runs the routing engine over an already-built pair book.
func (s *Service) Quote(book *swap.PairBook, req swap.QuoteRequest) (swap.QuoteResult, error) {
	result, err := swap.Quote(book, s.cfg.Bridges, req)
	if err != nil {
		return swap.QuoteResult{}, err
	}
	if result.Trade != nil {
		s.logger.Info("quote computed",
			zap.String("input", req.InputToken.Symbol),
			zap.String("output", req.OutputToken.Symbol),
			zap.String("type", req.TradeType.String()),
			zap.String("executionPrice", result.Trade.ExecutionPrice().ToSignificant(6)),
			zap.String("priceImpact", result.Trade.PriceImpact().ToSignificant(4)))
	}
	return result, nil
}
