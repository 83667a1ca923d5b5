package model

// Epoch is the Blockfrost view of a single epoch. Amounts are lovelace strings as served by the provider.
type Epoch struct {
	Epoch          uint64  `json:"epoch"`
	StartTime      int64   `json:"start_time"`
	EndTime        int64   `json:"end_time"`
	FirstBlockTime int64   `json:"first_block_time"`
	LastBlockTime  int64   `json:"last_block_time"`
	BlockCount     uint64  `json:"block_count"`
	TxCount        uint64  `json:"tx_count"`
	Output         string  `json:"output"`
	Fees           string  `json:"fees"`
	ActiveStake    *string `json:"active_stake"`
}

type Pool struct {
	PoolID         string   `json:"pool_id"`
	Hex            string   `json:"hex"`
	VrfKey         string   `json:"vrf_key"`
	BlocksMinted   uint64   `json:"blocks_minted"`
	BlocksEpoch    uint64   `json:"blocks_epoch"`
	LiveStake      string   `json:"live_stake"`
	LiveSize       float64  `json:"live_size"`
	LiveSaturation float64  `json:"live_saturation"`
	LiveDelegators uint64   `json:"live_delegators"`
	ActiveStake    string   `json:"active_stake"`
	ActiveSize     float64  `json:"active_size"`
	DeclaredPledge string   `json:"declared_pledge"`
	LivePledge     string   `json:"live_pledge"`
	MarginCost     float64  `json:"margin_cost"`
	FixedCost      string   `json:"fixed_cost"`
	RewardAccount  string   `json:"reward_account"`
	Owners         []string `json:"owners"`
	Registration   []string `json:"registration"`
	Retirement     []string `json:"retirement"`
}

type Delegator struct {
	Address   string `json:"address"`
	LiveStake string `json:"live_stake"`
}

// PoolHistory is one epoch of pool performance.
type PoolHistory struct {
	Epoch           uint64  `json:"epoch"`
	Blocks          uint64  `json:"blocks"`
	ActiveStake     string  `json:"active_stake"`
	ActiveSize      float64 `json:"active_size"`
	DelegatorsCount uint64  `json:"delegators_count"`
	Rewards         string  `json:"rewards"`
	Fees            string  `json:"fees"`
}

// Block is a minted block as reported by Blockfrost. Time is unix seconds.
type Block struct {
	Time          int64   `json:"time"`
	Height        *uint64 `json:"height"`
	Hash          string  `json:"hash"`
	Slot          *uint64 `json:"slot"`
	Epoch         *uint64 `json:"epoch"`
	EpochSlot     *uint64 `json:"epoch_slot"`
	SlotLeader    string  `json:"slot_leader"`
	Size          uint64  `json:"size"`
	TxCount       uint64  `json:"tx_count"`
	Output        *string `json:"output"`
	Fees          *string `json:"fees"`
	BlockVrf      *string `json:"block_vrf"`
	PreviousBlock *string `json:"previous_block"`
	NextBlock     *string `json:"next_block"`
	Confirmations uint64  `json:"confirmations"`
}

type Supply struct {
	Max         string `json:"max"`
	Total       string `json:"total"`
	Circulating string `json:"circulating"`
	Locked      string `json:"locked"`
	Treasury    string `json:"treasury"`
	Reserves    string `json:"reserves"`
}

type Stake struct {
	Live   string `json:"live"`
	Active string `json:"active"`
}

type Network struct {
	Supply Supply `json:"supply"`
	Stake  Stake  `json:"stake"`
}

// Ticker is the Binance 24h rolling window statistics for one symbol.
type Ticker struct {
	Symbol             string `json:"symbol"`
	PriceChange        string `json:"priceChange"`
	PriceChangePercent string `json:"priceChangePercent"`
	WeightedAvgPrice   string `json:"weightedAvgPrice"`
	PrevClosePrice     string `json:"prevClosePrice"`
	LastPrice          string `json:"lastPrice"`
	BidPrice           string `json:"bidPrice"`
	AskPrice           string `json:"askPrice"`
	OpenPrice          string `json:"openPrice"`
	HighPrice          string `json:"highPrice"`
	LowPrice           string `json:"lowPrice"`
	Volume             string `json:"volume"`
	QuoteVolume        string `json:"quoteVolume"`
	OpenTime           int64  `json:"openTime"`
	CloseTime          int64  `json:"closeTime"`
	Count              int64  `json:"count"`
}

// PoolSnapshot is replaced as a whole on every successful pool fetch.
type PoolSnapshot struct {
	Pool       *Pool         `json:"pool"`
	Delegators []Delegator   `json:"poolDelegators"`
	History    []PoolHistory `json:"poolHistory"`
	Blocks     []string      `json:"poolBlocks"`
	LastBlock  *Block        `json:"lastBlock"`
}

// WithLastBlock returns a copy of the snapshot carrying the given last block.
func (s PoolSnapshot) WithLastBlock(b *Block) *PoolSnapshot {
	s.LastBlock = b
	return &s
}

// PoolStats is the condensed pool view.
type PoolStats struct {
	Pool       *Pool       `json:"pool"`
	Delegators []Delegator `json:"poolDelegators"`
	Blocks     []string    `json:"poolBlocks"`
}

// Leaderlog is one persisted slot assignment. Hash is nil until the pool mints the slot.
// TimeMs is unix milliseconds.
type Leaderlog struct {
	Hash           *string `json:"hash,omitempty"`
	Slot           uint64  `json:"slot"`
	TimeMs         int64   `json:"time"`
	Height         *uint64 `json:"height,omitempty"`
	Epoch          uint64  `json:"epoch"`
	EpochSlot      uint64  `json:"epoch_slot"`
	EpochSlotIdeal float64 `json:"epoch_slot_ideal"`
}

// LeaderlogFromBlock converts a provider block into a leaderlog row, scaling seconds to milliseconds.
func LeaderlogFromBlock(b Block) Leaderlog {
	hash := b.Hash
	l := Leaderlog{
		Hash:   &hash,
		TimeMs: b.Time * 1000,
		Height: b.Height,
	}
	if b.Slot != nil {
		l.Slot = *b.Slot
	}
	if b.Epoch != nil {
		l.Epoch = *b.Epoch
	}
	if b.EpochSlot != nil {
		l.EpochSlot = *b.EpochSlot
	}
	return l
}

// LeaderlogView is the public shape of a leaderlog. Future entries only expose the day.
type LeaderlogView struct {
	Time           string  `json:"time"`
	Epoch          uint64  `json:"epoch"`
	EpochSlotIdeal float64 `json:"epoch_slot_ideal"`
	Slot           *uint64 `json:"slot,omitempty"`
	EpochSlot      *uint64 `json:"epoch_slot,omitempty"`
}

// CycleState is a point-in-time copy of the scheduler counters.
type CycleState struct {
	RunCounter   uint64 `json:"runCounter"`
	ErrorCounter uint64 `json:"errorCounter"`
	IsRunning    bool   `json:"isRunning"`
	LastRunAt    int64  `json:"lastRunAt"`
}
