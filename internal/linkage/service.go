package linkage

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"crosslink/internal/audit"
	"crosslink/internal/linkage/metrics"
	"crosslink/internal/profile"
	dErrors "crosslink/pkg/domain-errors"
	"crosslink/pkg/requestcontext"
)

// ErrScanInProgress is returned when a scan trigger races an in-flight scan.
var ErrScanInProgress = dErrors.New(dErrors.CodeConflict, "analysis already running")

// NetworkCache is an optional read-through cache for network graph responses.
// Keys embed the run generation so stale entries simply age out.
type NetworkCache interface {
	Get(ctx context.Context, key string) (*NetworkGraph, bool)
	Set(ctx context.Context, key string, graph *NetworkGraph)
}

// Config bounds the scan.
type Config struct {
	// MaxProfiles caps corpus size; the pair scan is O(n^2), so a 10k corpus
	// means ~50M pair evaluations. Zero disables the cap.
	MaxProfiles int
	// Shards is the detection worker count.
	Shards int
}

// Service orchestrates full-corpus scans and serves read queries from the
// last committed snapshot. At most one scan runs at a time; readers always
// see either entirely pre-scan or entirely post-scan state because the only
// publication point is one atomic pointer swap after persistence succeeds.
type Service struct {
	profiles profile.Store
	store    Store
	logger   *slog.Logger
	metrics  *metrics.Metrics
	audit    *audit.Publisher
	cache    NetworkCache
	cfg      Config

	scanMu  sync.Mutex
	current atomic.Pointer[Snapshot]
}

// NewService wires the engine. metrics, auditPub, and cache may be nil.
func NewService(profiles profile.Store, store Store, logger *slog.Logger, m *metrics.Metrics, auditPub *audit.Publisher, cache NetworkCache, cfg Config) *Service {
	if cfg.Shards <= 0 {
		cfg.Shards = 4
	}
	s := &Service{
		profiles: profiles,
		store:    store,
		logger:   logger,
		metrics:  m,
		audit:    auditPub,
		cache:    cache,
		cfg:      cfg,
	}
	s.current.Store(EmptySnapshot())
	return s
}

// Restore rebuilds the snapshot from persisted linkages after a restart.
// Summaries are recomputed from the persisted linkages; the computation is
// deterministic, so the result matches what the original run committed.
func (s *Service) Restore(ctx context.Context) error {
	linkages, err := s.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("restore linkages: %w", err)
	}
	if len(linkages) == 0 {
		return nil
	}
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return fmt.Errorf("restore profiles: %w", err)
	}
	summaries := aggregateAll(profiles, linkages)
	s.current.Store(NewSnapshot("", time.Time{}, profiles, linkages, summaries))
	s.logger.InfoContext(ctx, "snapshot restored from store",
		"linkages", len(linkages),
		"profiles", len(profiles),
	)
	return nil
}

// RunFullScan loads the corpus, detects linkages over every unordered pair,
// aggregates summaries, persists both, and swaps the snapshot. A concurrent
// trigger fails fast with ErrScanInProgress; the in-flight scan is unaffected.
func (s *Service) RunFullScan(ctx context.Context) (ScanResult, error) {
	if !s.scanMu.TryLock() {
		s.metrics.IncScanConflict()
		s.audit.Emit(ctx, audit.Event{
			Actor:  requestcontext.Actor(ctx),
			Action: audit.ActionScanConflict,
		})
		return ScanResult{}, ErrScanInProgress
	}
	defer s.scanMu.Unlock()

	start := time.Now()
	runID := uuid.NewString()

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return ScanResult{}, s.failScan(ctx, runID, fmt.Errorf("load profile corpus: %w", err))
	}
	if s.cfg.MaxProfiles > 0 && len(profiles) > s.cfg.MaxProfiles {
		return ScanResult{}, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("corpus size %d exceeds scan cap %d", len(profiles), s.cfg.MaxProfiles))
	}

	linkages, err := s.detectAll(ctx, profiles)
	if err != nil {
		return ScanResult{}, s.failScan(ctx, runID, err)
	}
	summaries := aggregateAll(profiles, linkages)

	// Persist, then publish. The store commits the linkage generation and the
	// derived summaries as one write, so a failure here leaves previously
	// committed state untouched and readers keep the old snapshot.
	if err := s.store.ReplaceAll(ctx, runID, linkages, summaries); err != nil {
		return ScanResult{}, s.failScan(ctx, runID, fmt.Errorf("persist scan: %w", err))
	}

	runAt := requestcontext.Now(ctx)
	s.current.Store(NewSnapshot(runID, runAt, profiles, linkages, summaries))

	byType := make(map[string]int)
	for _, l := range linkages {
		byType[string(l.Type)]++
	}
	s.metrics.ObserveScan(time.Since(start))
	s.metrics.RecordLinkages(byType, len(profiles))
	s.audit.Emit(ctx, audit.Event{
		Actor:   requestcontext.Actor(ctx),
		Action:  audit.ActionScanCommitted,
		Subject: runID,
		Detail:  fmt.Sprintf("%d linkages across %d profiles", len(linkages), len(profiles)),
	})
	s.logger.InfoContext(ctx, "full scan committed",
		"run_id", runID,
		"linkages", len(linkages),
		"profiles", len(profiles),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return ScanResult{
		RunID:            runID,
		TotalLinkages:    len(linkages),
		ProfilesAnalyzed: len(profiles),
		RanAt:            runAt,
	}, nil
}

// detectAll evaluates every unordered pair once. Rows of the pair matrix are
// sharded across workers; each worker writes only its own row slot, so the
// only synchronization needed is the errgroup join.
func (s *Service) detectAll(ctx context.Context, profiles []profile.Profile) ([]Linkage, error) {
	subjects := make([]Subject, len(profiles))
	for i, p := range profiles {
		subjects[i] = NewSubject(p)
	}

	rows := make([][]Linkage, len(subjects))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Shards)
	for i := range subjects {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var row []Linkage
			for j := i + 1; j < len(subjects); j++ {
				row = append(row, Detect(subjects[i], subjects[j])...)
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("pair detection: %w", err)
	}

	var linkages []Linkage
	for _, row := range rows {
		linkages = append(linkages, row...)
	}
	// Canonical output order makes reruns on an unchanged corpus
	// byte-identical.
	sort.Slice(linkages, func(i, j int) bool {
		a, b := linkages[i], linkages[j]
		if a.SourceID != b.SourceID {
			return a.SourceID < b.SourceID
		}
		if a.TargetID != b.TargetID {
			return a.TargetID < b.TargetID
		}
		return a.Type < b.Type
	})
	return linkages, nil
}

func aggregateAll(profiles []profile.Profile, linkages []Linkage) map[string]profile.Summary {
	names := make(map[string]string, len(profiles))
	for _, p := range profiles {
		names[p.ID] = p.Name
	}
	touching := make(map[string][]Linkage)
	for _, l := range linkages {
		touching[l.SourceID] = append(touching[l.SourceID], l)
		touching[l.TargetID] = append(touching[l.TargetID], l)
	}
	summaries := make(map[string]profile.Summary, len(profiles))
	for _, p := range profiles {
		summaries[p.ID] = Aggregate(p.ID, touching[p.ID], names)
	}
	return summaries
}

func (s *Service) failScan(ctx context.Context, runID string, err error) error {
	s.metrics.IncScanFailure()
	s.audit.Emit(ctx, audit.Event{
		Actor:   requestcontext.Actor(ctx),
		Action:  audit.ActionScanFailed,
		Subject: runID,
		Detail:  err.Error(),
	})
	s.logger.ErrorContext(ctx, "full scan aborted",
		"run_id", runID,
		"error", err,
	)
	return dErrors.Wrap(dErrors.CodeInternal, "full scan failed", err)
}

// Suspicious returns analyzed profiles with a score at or above minScore,
// ordered by score descending with name then id as tie-breaks.
func (s *Service) Suspicious(_ context.Context, minScore, limit int) []Node {
	snap := s.current.Load()
	out := make([]Node, 0)
	for id := range snap.nodes {
		n := snap.nodes[id]
		if n.SuspicionScore >= minScore {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SuspicionScore != out[j].SuspicionScore {
			return out[i].SuspicionScore > out[j].SuspicionScore
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ProfileID < out[j].ProfileID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// BuildNetwork answers a bounded-depth ego-network query from the snapshot.
// A profile created after the last scan is served as a single-node graph; an
// unknown id is NotFound.
func (s *Service) BuildNetwork(ctx context.Context, seedID string, depth int) (*NetworkGraph, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveNetworkQuery(time.Since(start)) }()

	snap := s.current.Load()
	cacheKey := fmt.Sprintf("network:%s:%s:%d", snap.RunID, seedID, depth)
	if s.cache != nil {
		if graph, ok := s.cache.Get(ctx, cacheKey); ok {
			return graph, nil
		}
	}

	graph, ok := snap.Network(seedID, depth)
	if !ok {
		p, err := s.profiles.Get(ctx, seedID)
		if err != nil {
			return nil, err
		}
		graph = &NetworkGraph{
			Nodes: []Node{{
				ProfileID:           p.ID,
				Name:                p.Name,
				RadicalizationLevel: p.RadicalizationLevel,
			}},
			Links: []Linkage{},
		}
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, graph)
	}
	return graph, nil
}

// Stats projects the last committed snapshot for dashboards.
func (s *Service) Stats(_ context.Context) Stats {
	return s.current.Load().Stats()
}
