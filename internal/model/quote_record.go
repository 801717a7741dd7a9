package model

// QuoteRecord is one quote computation's outcome for storage. Amount fields
// are decimal strings of atomic units; price fields are rendered to
// significant digits. Route holds the token path as hex addresses, input
// first; it is empty unless Status is "found".
type QuoteRecord struct {
	ChainID        uint64   `json:"chain_id"`
	InputToken     string   `json:"input_token"`
	OutputToken    string   `json:"output_token"`
	TradeType      string   `json:"trade_type"`
	Status         string   `json:"status"`
	InputAmount    string   `json:"input_amount,omitempty"`
	OutputAmount   string   `json:"output_amount,omitempty"`
	ExecutionPrice string   `json:"execution_price,omitempty"`
	MidPrice       string   `json:"mid_price,omitempty"`
	PriceImpactPct string   `json:"price_impact_pct,omitempty"`
	SlippageBps    uint64   `json:"slippage_bps"`
	GuardAmount    string   `json:"guard_amount,omitempty"`
	Route          []string `json:"route,omitempty"`
	CreatedAt      string   `json:"created_at"`
}
