package model

// PoolSnapshot is one pool reserve observation for storage. Reserves are
// decimal strings of atomic units.
type PoolSnapshot struct {
	ChainID     uint64 `json:"chain_id"`
	PairAddress string `json:"pair_address"`
	Token0      string `json:"token0"`
	Token1      string `json:"token1"`
	Reserve0    string `json:"reserve0"`
	Reserve1    string `json:"reserve1"`
	BlockNumber uint64 `json:"block_number"`
	Timestamp   uint64 `json:"timestamp"`
	FetchedAt   string `json:"fetched_at"`
}
