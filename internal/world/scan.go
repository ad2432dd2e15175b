package world

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"driftworld/internal/lore"
)

var (
	// ErrNoPOINearby is returned when a scan is requested with no point of
	// interest in range.
	ErrNoPOINearby = errors.New("no point of interest nearby")

	// ErrScanInProgress is returned while a previous scan is still running.
	ErrScanInProgress = errors.New("scan already in progress")
)

// LoreSource produces narrative text for a scanned landmark. Satisfied by
// *lore.Client; tests substitute a stub.
type LoreSource interface {
	Generate(ctx context.Context, biome, timeLabel, landmark string) lore.Lore
}

// Scanner serializes point-of-interest scans: at most one lore request in
// flight, results cached until the next scan replaces them. The simulation
// never blocks on it.
type Scanner struct {
	src     LoreSource
	log     *log.Logger
	timeout time.Duration

	busy atomic.Bool

	mu     sync.Mutex
	result *lore.Lore
}

// NewScanner wraps a lore source with the single-flight scan policy.
func NewScanner(src LoreSource, logger *log.Logger) *Scanner {
	return &Scanner{src: src, log: logger, timeout: 30 * time.Second}
}

// Trigger starts a scan in the background. Returns ErrScanInProgress if one
// is already running.
func (s *Scanner) Trigger(biome, timeLabel, landmark string) error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrScanInProgress
	}
	s.log.Info("scan started", "biome", biome, "time", timeLabel)

	go func() {
		defer s.busy.Store(false)

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		l := s.src.Generate(ctx, biome, timeLabel, landmark)

		s.mu.Lock()
		s.result = &l
		s.mu.Unlock()
		s.log.Info("scan complete", "title", l.Title)
	}()
	return nil
}

// Result returns the latest finished scan. pending reports an in-flight
// scan; ok reports whether any scan has ever completed.
func (s *Scanner) Result() (result lore.Lore, pending, ok bool) {
	pending = s.busy.Load()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return lore.Lore{}, pending, false
	}
	return *s.result, pending, true
}

// Scan requests lore for the point of interest near the observer, reading
// the published snapshot so it is safe from any goroutine.
func (w *World) Scan() error {
	snap := w.Snapshot()
	if snap.POI == nil {
		return ErrNoPOINearby
	}
	return w.scanner.Trigger(snap.POI.Biome, snap.TimeLabel, "monolith")
}

// ScanResult proxies the scanner's latest result.
func (w *World) ScanResult() (lore.Lore, bool, bool) {
	return w.scanner.Result()
}
