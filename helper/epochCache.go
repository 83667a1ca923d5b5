package helper

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"poolwatch/model"
)

const (
	// LatestEpoch is the sentinel epoch id resolved against the cache or the provider.
	LatestEpoch = "latest"
	// EpochWindow is the number of most recent epochs kept filled by the poller.
	EpochWindow = 3
)

type EpochFetcher interface {
	GetEpoch(ctx context.Context, epochID string) (model.Epoch, error)
}

// EpochCache keeps epochs sorted ascending by number without duplicates.
type EpochCache struct {
	mu     sync.RWMutex
	epochs []model.Epoch
	cl     EpochFetcher
}

func NewEpochCache(cl EpochFetcher) *EpochCache {
	return &EpochCache{
		epochs: make([]model.Epoch, 0, EpochWindow+1),
		cl:     cl,
	}
}

// Upsert replaces the epoch with the same number or appends it, then re-sorts.
func (ec *EpochCache) Upsert(epoch model.Epoch) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.upsert(epoch)
}

func (ec *EpochCache) upsert(epoch model.Epoch) {
	for i := range ec.epochs {
		if ec.epochs[i].Epoch == epoch.Epoch {
			ec.epochs[i] = epoch
			return
		}
	}
	ec.epochs = append(ec.epochs, epoch)
	sort.Slice(ec.epochs, func(i, j int) bool {
		return ec.epochs[i].Epoch < ec.epochs[j].Epoch
	})
}

func (ec *EpochCache) Latest() (model.Epoch, bool) {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	if len(ec.epochs) == 0 {
		return model.Epoch{}, false
	}
	return ec.epochs[len(ec.epochs)-1], true
}

// LastN returns up to n most recent epochs, most recent first.
func (ec *EpochCache) LastN(n int) []model.Epoch {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	if n > len(ec.epochs) {
		n = len(ec.epochs)
	}
	out := make([]model.Epoch, 0, n)
	for i := len(ec.epochs) - 1; i >= len(ec.epochs)-n; i-- {
		out = append(out, ec.epochs[i])
	}
	return out
}

func (ec *EpochCache) Has(number uint64) bool {
	_, ok := ec.find(number)
	return ok
}

func (ec *EpochCache) Len() int {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	return len(ec.epochs)
}

// Missing returns the epochs of the window ending at latest that are not cached, latest-1 first.
func (ec *EpochCache) Missing(latest uint64) []uint64 {
	var missing []uint64
	for i := uint64(1); i < EpochWindow && i <= latest; i++ {
		if !ec.Has(latest - i) {
			missing = append(missing, latest-i)
		}
	}
	return missing
}

// Trim evicts every epoch outside the window ending at latest, including ones beyond it.
func (ec *EpochCache) Trim(latest uint64) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	var lo uint64
	if latest >= EpochWindow-1 {
		lo = latest - (EpochWindow - 1)
	}
	kept := ec.epochs[:0]
	for _, e := range ec.epochs {
		if e.Epoch >= lo && e.Epoch <= latest {
			kept = append(kept, e)
		}
	}
	ec.epochs = kept
}

func (ec *EpochCache) find(number uint64) (model.Epoch, bool) {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	i := sort.Search(len(ec.epochs), func(i int) bool {
		return ec.epochs[i].Epoch >= number
	})
	if i < len(ec.epochs) && ec.epochs[i].Epoch == number {
		return ec.epochs[i], true
	}
	return model.Epoch{}, false
}

// Get serves an epoch from the cache, fetching and caching it on a miss.
// Fetch errors are logged and reported as absent.
func (ec *EpochCache) Get(ctx context.Context, epochID string) (model.Epoch, bool) {
	if epochID == "" || epochID == LatestEpoch {
		if latest, ok := ec.Latest(); ok {
			return latest, true
		}
		return ec.fetch(ctx, LatestEpoch)
	}
	number, err := strconv.ParseUint(epochID, 10, 64)
	if err != nil {
		slog.Debug("invalid epoch id", "id", epochID)
		return model.Epoch{}, false
	}
	if epoch, ok := ec.find(number); ok {
		return epoch, true
	}
	return ec.fetch(ctx, epochID)
}

func (ec *EpochCache) fetch(ctx context.Context, epochID string) (model.Epoch, bool) {
	epoch, err := ec.cl.GetEpoch(ctx, epochID)
	if err != nil {
		slog.Error("unable to fetch epoch", "epoch", epochID, "error", err)
		return model.Epoch{}, false
	}
	ec.Upsert(epoch)
	return epoch, true
}
