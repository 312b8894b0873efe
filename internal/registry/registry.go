// Package registry holds the ordered set of registered IP addresses and
// keeps durable storage in step with every mutation.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/m3rciful/ipbot/core/logger"
	"github.com/m3rciful/ipbot/core/metrics"
	"github.com/m3rciful/ipbot/internal/ipaddr"
)

const component = "registry"

// ErrPersist marks a mutation that was applied in memory but could not be saved.
var ErrPersist = errors.New("registry: persist failed")

// Store is the durable backing the registry reads once and writes on every change.
type Store interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, entries []string) error
}

// Registry is an insertion-ordered set of IPv4 addresses. 127.0.0.1 is never a member.
type Registry struct {
	mu      sync.RWMutex
	entries []string
	store   Store
}

// Load builds a registry from store. Read failures are logged and yield an
// empty registry; invalid, loopback and duplicate entries are skipped.
func Load(ctx context.Context, store Store) *Registry {
	r := &Registry{store: store}
	start := time.Now()
	raw, err := store.Load(ctx)
	if err != nil {
		logger.Error(ctx, component, "load",
			slog.String("status", "error"),
			slog.String("err", err.Error()),
		)
		metrics.SetRegistryEntries(0)
		return r
	}

	skipped := 0
	for _, token := range raw {
		addr, class := ipaddr.Parse(token)
		if class == ipaddr.Invalid || class == ipaddr.Loopback || slices.Contains(r.entries, addr) {
			skipped++
			continue
		}
		r.entries = append(r.entries, addr)
	}
	logger.Info(ctx, component, "load",
		slog.String("status", "ok"),
		slog.Int("entries", len(r.entries)),
		slog.Int("skipped", skipped),
		slog.Duration("duration", logger.RoundMS(logger.Took(start))),
	)
	metrics.SetRegistryEntries(len(r.entries))
	return r
}

// List returns a copy of the entries in insertion order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.entries)
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Contains reports whether ip is registered.
func (r *Registry) Contains(ip string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.entries, ip)
}

// Add appends ip and persists the full set. Adding an existing entry is a
// no-op without a write. A save failure is returned wrapped in ErrPersist;
// the entry stays in memory and the next successful save reconciles storage.
func (r *Registry) Add(ctx context.Context, ip string) (bool, error) {
	if ip == ipaddr.LoopbackAddr {
		return false, fmt.Errorf("registry: %s cannot be registered", ip)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.Contains(r.entries, ip) {
		metrics.ObserveMutation("add", "noop")
		return false, nil
	}
	r.entries = append(r.entries, ip)
	metrics.SetRegistryEntries(len(r.entries))
	return true, r.persistLocked(ctx, "add", ip)
}

// Remove deletes ip and persists the full set. Removing an absent entry is a
// no-op without a write and without an error.
func (r *Registry) Remove(ctx context.Context, ip string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.Index(r.entries, ip)
	if idx < 0 {
		metrics.ObserveMutation("remove", "noop")
		return false, nil
	}
	r.entries = slices.Delete(r.entries, idx, idx+1)
	metrics.SetRegistryEntries(len(r.entries))
	return true, r.persistLocked(ctx, "remove", ip)
}

func (r *Registry) persistLocked(ctx context.Context, op, ip string) error {
	start := time.Now()
	err := r.store.Save(ctx, slices.Clone(r.entries))
	took := logger.RoundMS(logger.Took(start))
	if err != nil {
		metrics.ObserveMutation(op, "persist_fail")
		logger.Error(ctx, component, op,
			slog.String("status", "error"),
			slog.String("ip", ip),
			slog.Int("entries", len(r.entries)),
			slog.Duration("duration", took),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	result := "added"
	if op == "remove" {
		result = "removed"
	}
	metrics.ObserveMutation(op, result)
	logger.Info(ctx, component, op,
		slog.String("status", "ok"),
		slog.String("ip", ip),
		slog.Int("entries", len(r.entries)),
		slog.Duration("duration", took),
	)
	return nil
}
