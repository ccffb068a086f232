// Package search provides the multi-algorithm CV matching engine: request
// validation, algorithm dispatch, parallel scoring over the corpus, and
// deterministic ranking of the results.
package search

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/hyperjump/rirekisho/internal/config"
	"github.com/hyperjump/rirekisho/internal/corpus"
	"github.com/hyperjump/rirekisho/internal/match"
	"github.com/hyperjump/rirekisho/internal/models"
)

// Engine runs keyword searches over an applicant corpus. It owns a worker
// pool for parallel document scoring and an LRU cache of built Aho-Corasick
// automatons; both are released by Close.
type Engine struct {
	logger           *zap.Logger
	pool             *ants.Pool
	cache            *automatonCache
	defaultMax       int
	maxResultsCap    int
	defaultThreshold float64
	shardSize        int
	coverageWeight   float64
	occurrenceWeight float64
}

// NewEngine creates an engine from the search configuration. Zero config
// values fall back to the documented defaults; cfg.Workers 0 means one
// worker per CPU. logger may be nil.
func NewEngine(cfg *config.SearchConfig, logger *zap.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = &config.SearchConfig{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	e := &Engine{
		logger:           logger,
		pool:             pool,
		cache:            newAutomatonCache(cfg.AutomatonCacheSize),
		defaultMax:       cfg.DefaultMaxResults,
		maxResultsCap:    cfg.MaxResultsCap,
		defaultThreshold: cfg.DefaultFuzzyThreshold,
		shardSize:        cfg.ShardSize,
		coverageWeight:   cfg.CoverageWeight,
		occurrenceWeight: cfg.OccurrenceWeight,
	}
	if e.defaultMax <= 0 {
		e.defaultMax = 10
	}
	if e.maxResultsCap <= 0 {
		e.maxResultsCap = 1000
	}
	if e.defaultThreshold <= 0 {
		e.defaultThreshold = 0.8
	}
	if e.shardSize <= 0 {
		e.shardSize = 32
	}
	if e.coverageWeight == 0 {
		e.coverageWeight = DefaultCoverageWeight
	}
	if e.occurrenceWeight == 0 {
		e.occurrenceWeight = DefaultOccurrenceWeight
	}
	return e, nil
}

// Close releases the worker pool. In-flight searches finish first.
func (e *Engine) Close() {
	e.pool.Release()
}

// CachedAutomatons reports how many keyword-set automatons are cached.
func (e *Engine) CachedAutomatons() int {
	return e.cache.len()
}

// Search validates the request, runs the selected matcher over every
// document the provider yields, and returns the ranked result set.
//
// Documents that cannot be matched (empty or non-UTF-8 text) are skipped and
// reported in the response, never failing the call; only an invalid request
// or cancellation fails the whole operation.
func (e *Engine) Search(ctx context.Context, req *models.SearchRequest, provider corpus.Provider) (*models.SearchResponse, error) {
	start := time.Now()
	if req == nil {
		req = &models.SearchRequest{}
	}
	if req.MaxResults == 0 {
		req.MaxResults = e.defaultMax
	}
	if req.MaxResults > e.maxResultsCap {
		req.MaxResults = e.maxResultsCap
	}
	if req.Algorithm == models.AlgorithmFuzzy && req.FuzzyThreshold == nil && !req.DynamicThreshold {
		t := e.defaultThreshold
		req.FuzzyThreshold = &t
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	algo := resolveAlgorithm(req)
	resp := &models.SearchResponse{
		Results:   []*models.DocumentScore{},
		Algorithm: algo,
	}
	if len(req.Keywords) == 0 {
		resp.QueryTime = time.Since(start).Milliseconds()
		return resp, nil
	}

	var automaton *match.Automaton
	if algo == models.AlgorithmAhoCorasick {
		a, err := e.cache.get(req.Keywords)
		if err != nil {
			return nil, fmt.Errorf("build automaton: %w", err)
		}
		automaton = a
	}

	var (
		mu      sync.Mutex
		shards  [][]*models.DocumentScore
		skipped []models.SkippedDocument
		wg      sync.WaitGroup
	)
	submitShard := func(docs []models.CVDocument) error {
		wg.Add(1)
		if err := e.pool.Submit(func() {
			defer wg.Done()
			scores, skips := e.scoreShard(ctx, req, algo, automaton, docs)
			mu.Lock()
			if len(scores) > 0 {
				shards = append(shards, scores)
			}
			skipped = append(skipped, skips...)
			mu.Unlock()
		}); err != nil {
			wg.Done()
			return fmt.Errorf("submit shard: %w", err)
		}
		return nil
	}

	shard := make([]models.CVDocument, 0, e.shardSize)
	iterErr := provider.Iterate(ctx, func(doc models.CVDocument) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		shard = append(shard, doc)
		if len(shard) == e.shardSize {
			docs := shard
			shard = make([]models.CVDocument, 0, e.shardSize)
			return submitShard(docs)
		}
		return nil
	})
	if iterErr == nil && len(shard) > 0 {
		iterErr = submitShard(shard)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	if iterErr != nil {
		if errors.Is(iterErr, context.Canceled) || errors.Is(iterErr, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, iterErr)
		}
		return nil, fmt.Errorf("corpus iteration: %w", iterErr)
	}

	merged := mergeRanked(shards)
	resp.Total = len(merged)
	if len(merged) > req.MaxResults {
		merged = merged[:req.MaxResults]
	}
	resp.Results = merged

	sort.Slice(skipped, func(i, j int) bool { return skipped[i].DocumentID < skipped[j].DocumentID })
	resp.Skipped = skipped
	resp.SkippedCount = len(skipped)
	resp.QueryTime = time.Since(start).Milliseconds()

	e.logger.Debug("search complete",
		zap.Strings("keywords", req.Keywords),
		zap.String("algorithm", string(algo)),
		zap.Int("matched", resp.Total),
		zap.Int("skipped", resp.SkippedCount),
		zap.Int64("query_time_ms", resp.QueryTime),
	)
	return resp, nil
}

// resolveAlgorithm maps Auto onto a concrete matcher: the automaton when the
// request carries several exact keywords (it amortizes cost across them in
// one pass), KMP for a single keyword.
func resolveAlgorithm(req *models.SearchRequest) models.Algorithm {
	if req.Algorithm != models.AlgorithmAuto {
		return req.Algorithm
	}
	if len(req.Keywords) > 1 {
		return models.AlgorithmAhoCorasick
	}
	return models.AlgorithmKMP
}

// scoreShard scores one batch of documents. Cancellation is checked between
// documents, not between character comparisons; a cancelled shard returns
// nothing since the whole call fails anyway.
func (e *Engine) scoreShard(ctx context.Context, req *models.SearchRequest, algo models.Algorithm, automaton *match.Automaton, docs []models.CVDocument) ([]*models.DocumentScore, []models.SkippedDocument) {
	var (
		scores  []*models.DocumentScore
		skipped []models.SkippedDocument
	)
	for _, doc := range docs {
		if ctx.Err() != nil {
			return nil, nil
		}
		ds, err := e.scoreDocument(req, algo, automaton, doc)
		if err != nil {
			e.logger.Warn("document skipped", zap.String("document_id", doc.ID), zap.Error(err))
			skipped = append(skipped, models.SkippedDocument{DocumentID: doc.ID, Reason: err.Error()})
			continue
		}
		if ds != nil {
			scores = append(scores, ds)
		}
	}
	return scores, skipped
}

// scoreDocument runs the selected matcher for every keyword against one
// document and aggregates the evidence. Returns (nil, nil) when nothing
// matched; an error marks the document as skipped.
func (e *Engine) scoreDocument(req *models.SearchRequest, algo models.Algorithm, automaton *match.Automaton, doc models.CVDocument) (*models.DocumentScore, error) {
	if strings.TrimSpace(doc.Text) == "" {
		return nil, errors.New("empty document text")
	}
	if !utf8.ValidString(doc.Text) {
		return nil, errors.New("document text is not valid UTF-8")
	}

	hits := make(map[string]int)
	var evidence []models.MatchEvidence

	switch algo {
	case models.AlgorithmKMP, models.AlgorithmBoyerMoore:
		findAll := match.FindAllKMP
		if algo == models.AlgorithmBoyerMoore {
			findAll = match.FindAllBoyerMoore
		}
		for _, kw := range req.Keywords {
			offsets := findAll(kw, doc.Text)
			if len(offsets) == 0 {
				continue
			}
			hits[kw] = len(offsets)
			evidence = append(evidence, models.MatchEvidence{
				Keyword: kw, Offsets: offsets, Matched: kw, Similarity: 1,
			})
		}

	case models.AlgorithmAhoCorasick:
		byPattern := make(map[string][]int)
		for _, m := range automaton.FindAll(doc.Text) {
			byPattern[m.Pattern] = append(byPattern[m.Pattern], m.Offset)
		}
		// Evidence in request keyword order for stable output.
		for _, kw := range req.Keywords {
			offsets := byPattern[kw]
			if len(offsets) == 0 {
				continue
			}
			hits[kw] = len(offsets)
			evidence = append(evidence, models.MatchEvidence{
				Keyword: kw, Offsets: offsets, Matched: kw, Similarity: 1,
			})
		}

	case models.AlgorithmFuzzy:
		for _, kw := range req.Keywords {
			var threshold float64
			if req.FuzzyThreshold != nil {
				threshold = *req.FuzzyThreshold
			}
			if req.DynamicThreshold {
				threshold = match.DynamicThreshold(kw)
			}
			approx := match.FindApproximate(kw, doc.Text, threshold)
			if len(approx) == 0 {
				continue
			}
			hits[kw] = len(approx)
			for _, am := range approx {
				evidence = append(evidence, models.MatchEvidence{
					Keyword:    kw,
					Offsets:    []int{am.Offset},
					Matched:    am.Matched,
					Similarity: am.Similarity,
				})
			}
		}
	}

	if len(hits) == 0 {
		return nil, nil
	}
	return &models.DocumentScore{
		DocumentID:     doc.ID,
		OverallScore:   Score(hits, evidence, e.coverageWeight, e.occurrenceWeight),
		PerKeywordHits: hits,
		Matches:        evidence,
	}, nil
}
