package db

import (
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"poolwatch/config"
	"poolwatch/interfaces"
)

// Measurements written by the poller.
const (
	PollCycle = "PollCycle"
	Epoch     = "Epoch"
	Leaderlog = "Leaderlog"
)

type handler struct {
	cfg    config.InfluxDBConfig
	client influxdb2.Client
	writer api.WriteAPI
	done   chan struct{}
}

// NewHandler returns a non-blocking InfluxDB point writer, or nil when no url is configured.
func NewHandler(dbConfig config.InfluxDBConfig) interfaces.DatabaseHandler {
	if dbConfig.URL == "" {
		slog.Info("influx db url not set, time series disabled")
		return nil
	}
	slog.Info("connecting to DB", "url", dbConfig.URL)
	h := &handler{cfg: dbConfig, done: make(chan struct{})}
	h.client = influxdb2.NewClient(dbConfig.URL, dbConfig.Token)
	h.writer = h.client.WriteAPI(dbConfig.Org, dbConfig.Bucket)
	// Errors must be obtained before any Close, it lazily creates the channel.
	go h.logErrors(h.writer.Errors())
	return h
}

func (h *handler) logErrors(errCh <-chan error) {
	for {
		select {
		case <-h.done:
			return
		case err, ok := <-errCh:
			if !ok {
				return
			}
			slog.Error("influx write failed", "error", err)
		}
	}
}

func (h *handler) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}, timeStamp time.Time) {
	point := influxdb2.NewPoint(measurement, tags, fields, timeStamp)
	h.writer.WritePoint(point)
}

func (h *handler) Flush() {
	h.writer.Flush()
}

func (h *handler) Close() {
	h.writer.Flush()
	h.client.Close()
	close(h.done)
}
