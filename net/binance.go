package net

import (
	"context"
	"encoding/json"
	"net/url"

	"poolwatch/model"
)

// Binance is a TickerProvider backed by the public Binance spot API.
type Binance struct {
	Client
}

func NewBinance(pool *ConnectionPool) *Binance {
	return &Binance{
		Client: Client{
			pool:    pool,
			headers: map[string]string{},
			decodeError: func(body []byte) string {
				var e struct {
					Code int    `json:"code"`
					Msg  string `json:"msg"`
				}
				if err := json.Unmarshal(body, &e); err != nil {
					return ""
				}
				return e.Msg
			},
		},
	}
}

func (b *Binance) GetTicker(ctx context.Context, symbol string) (model.Ticker, error) {
	query := url.Values{}
	query.Set("symbol", symbol)
	var ticker model.Ticker
	err := b.get(ctx, "/api/v3/ticker/24hr", query, &ticker)
	return ticker, err
}
