// Package service implements the ingestion coordinator and scheduler
package service

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	perr "pulsetrack/internal/platform/errors"
	"pulsetrack/internal/platform/logger"

	"pulsetrack/internal/core/candidate"
	"pulsetrack/internal/core/sentiment"
	"pulsetrack/internal/core/verify"
	auditdom "pulsetrack/internal/services/audit/domain"
	demodom "pulsetrack/internal/services/demographics/domain"
	"pulsetrack/internal/services/ingest/domain"
	ratdom "pulsetrack/internal/services/ratings/domain"
	rawdom "pulsetrack/internal/services/rawinputs/domain"
)

// Config for the ingestion coordinator
type Config struct {
	// Dir is the directory scanned for batch CSV files
	Dir string

	// ArchiveDir receives processed files, defaults to Dir/archive
	ArchiveDir string

	// Source tags stored raw inputs, defaults to "grok"
	Source string

	// UserID tags stored raw inputs when the feed supplies none
	UserID string
}

// RatingsPort is the slice of the ratings service the coordinator needs
type RatingsPort = ratdom.ReadWriterPort

// Coordinator implements domain.CoordinatorPort
type Coordinator struct {
	cfg      Config
	resolver candidate.Resolver
	scorer   *sentiment.Scorer
	verifier *verify.Classifier
	ratings  RatingsPort
	raws     rawdom.ReadWriterPort
	demos    demodom.ReaderPort
	audit    auditdom.RecorderPort
	feed     domain.FeedPort
	log      logger.Logger

	now func() time.Time
}

// NewCoordinator wires the pipeline stages together. A nil scorer degrades
// every scored opinion to the neutral split
func NewCoordinator(
	cfg Config,
	resolver candidate.Resolver,
	scorer *sentiment.Scorer,
	verifier *verify.Classifier,
	ratings RatingsPort,
	raws rawdom.ReadWriterPort,
	demos demodom.ReaderPort,
	audit auditdom.RecorderPort,
	feed domain.FeedPort,
	log logger.Logger,
) *Coordinator {
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = filepath.Join(cfg.Dir, "archive")
	}
	if cfg.Source == "" {
		cfg.Source = "grok"
	}
	if cfg.UserID == "" {
		cfg.UserID = "grok_id"
	}
	if scorer == nil {
		scorer = sentiment.New(nil, log)
	}
	if feed == nil {
		feed = NoopFeed{}
	}
	return &Coordinator{
		cfg:      cfg,
		resolver: resolver,
		scorer:   scorer,
		verifier: verifier,
		ratings:  ratings,
		raws:     raws,
		demos:    demos,
		audit:    audit,
		feed:     feed,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RunPass implements domain.CoordinatorPort. Files are processed one at a
// time, a file's failure never blocks its siblings
func (c *Coordinator) RunPass(ctx context.Context) (domain.PassReport, error) {
	started := c.now()
	report := domain.PassReport{StartedAt: started}

	files, err := c.scan()
	if err != nil {
		return report, err
	}

	if since, pulled := c.pullFeed(ctx); pulled > 0 {
		c.scoreFeed(ctx, started, since)
	}

	for _, f := range files {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		fr := c.IngestFile(ctx, f)
		if fr.State == domain.StateDone {
			if err := c.archive(f); err != nil {
				c.log.Warn().Err(err).Str("file", f).Msg("could not archive batch file")
			} else {
				c.record(ctx, "ingest.archived", map[string]any{"file": filepath.Base(f)})
			}
		}
		report.Files = append(report.Files, fr)
	}

	report.Elapsed = time.Since(started).Round(time.Millisecond).String()
	return report, nil
}

// scan lists candidate batch files sorted by name
func (c *Coordinator) scan() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(c.cfg.Dir, "*.csv"))
	if err != nil {
		return nil, perr.Internalf("scan %s: %v", c.cfg.Dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// IngestFile implements domain.CoordinatorPort
func (c *Coordinator) IngestFile(ctx context.Context, path string) domain.FileReport {
	fr := domain.FileReport{File: filepath.Base(path), State: domain.StateParsing}

	f, err := os.Open(path)
	if err != nil {
		fr.State = domain.StateSkipped
		fr.Err = err.Error()
		c.log.Warn().Err(err).Str("file", path).Msg("batch file unreadable, skipped")
		return fr
	}
	rows, err := parseRows(f, c.log)
	_ = f.Close()
	if err != nil {
		fr.State = domain.StateSkipped
		fr.Err = perr.Root(err).Error()
		c.log.Info().Str("file", path).Str("reason", fr.Err).Msg("batch file skipped")
		c.record(ctx, "ingest.skip", map[string]any{"file": fr.File, "reason": fr.Err})
		return fr
	}

	fr.State = domain.StateGrouping
	groups := groupByDate(rows, c.now(), c.log)

	fr.State = domain.StateTransforming
	anyDone := false
	var fatal bool
	for _, g := range groups {
		gr := c.processGroup(ctx, fr.File, g)
		fr.Groups = append(fr.Groups, gr)
		if gr.State == domain.StateDone {
			anyDone = true
		}
		if gr.State == domain.StateFailed && gr.Candidate != "" {
			// storage-level failure, keep the file for inspection
			fatal = true
		}
	}

	switch {
	case anyDone && !fatal:
		fr.State = domain.StateDone
	case anyDone:
		// partial success but something needs a rerun
		fr.State = domain.StateFailed
	default:
		fr.State = domain.StateFailed
	}
	return fr
}

// processGroup runs detect, score, verify, and upsert for one date group
func (c *Coordinator) processGroup(ctx context.Context, file string, g domain.Group) domain.GroupReport {
	gr := domain.GroupReport{DateKey: g.DateKey, TS: g.TS, State: domain.StateTransforming}

	split := splitGroup(g)

	cand := c.resolver.Resolve(split.detectionText())
	if cand == candidate.Unknown {
		gr.State = domain.StateFailed
		gr.Err = "no known candidate mentioned"
		c.log.Warn().Str("file", file).Str("date", g.DateKey).Msg("could not detect candidate, group skipped")
		c.record(ctx, "ingest.unknown_candidate", map[string]any{"file": file, "date": g.DateKey})
		return gr
	}
	gr.Candidate = cand

	// verification counts every sentiment row in the group, not just the
	// rows that happen to carry an example post
	verification := c.classify(ctx, split.SentimentRows)

	// store example posts as raw inputs, each stamped with the group's
	// verification status, degraded on failure
	if len(split.Examples) > 0 {
		writes := make([]rawdom.RawInputWrite, 0, len(split.Examples))
		for _, content := range split.Examples {
			writes = append(writes, rawdom.RawInputWrite{
				Source:       c.cfg.Source,
				Content:      content,
				UserID:       c.cfg.UserID,
				Candidate:    cand,
				Verification: verification,
				TS:           g.TS,
			})
		}
		if _, err := c.raws.WriteBatch(ctx, writes); err != nil {
			c.log.Warn().Err(err).Str("candidate", cand).Msg("raw inputs not stored, continuing")
		}
	}

	agg := sentiment.Result{Positive: split.Positive, Negative: split.Negative, Neutral: split.Neutral}
	score := ratdom.Score(agg)

	prev, err := c.ratings.PreviousScore(ctx, cand)
	if err != nil {
		gr.State = domain.StateFailed
		gr.Err = err.Error()
		return gr
	}

	gr.State = domain.StateUpserting
	rating := ratdom.ApprovalRating{
		Candidate:    cand,
		TS:           g.TS,
		RatingScore:  score,
		ChangeDelta:  ratdom.Delta(score, prev),
		State:        ratdom.StateNational,
		Verification: verification,
	}
	if err := c.ratings.UpsertRating(ctx, rating); err != nil {
		gr.State = domain.StateFailed
		gr.Err = err.Error()
		return gr
	}

	breakdown := ratdom.SentimentBreakdown{
		Candidate:       cand,
		TS:              g.TS,
		Positive:        split.Positive,
		Negative:        split.Negative,
		Neutral:         split.Neutral,
		TrendingPhrases: split.TrendingPhrases,
		Headlines:       split.Headlines,
	}
	if err := c.ratings.InsertBreakdown(ctx, breakdown); err != nil {
		gr.State = domain.StateFailed
		gr.Err = err.Error()
		return gr
	}

	gr.State = domain.StateDone
	gr.Score = score
	c.log.Info().
		Str("candidate", cand).
		Str("date", g.TS.Format(dateLayout)).
		Float64("score", score).
		Str("verification", string(verification)).
		Msg("group ingested")
	c.record(ctx, "ingest.success", map[string]any{
		"file":      file,
		"candidate": cand,
		"date":      g.TS.Format(dateLayout),
		"score":     score,
	})
	return gr
}

// archive moves a processed file out of the active ingest directory
func (c *Coordinator) archive(path string) error {
	if err := os.MkdirAll(c.cfg.ArchiveDir, 0o755); err != nil {
		return err
	}
	dst := filepath.Join(c.cfg.ArchiveDir, filepath.Base(path))
	return os.Rename(path, dst)
}

// record appends an audit event, failures are already logged by the recorder
func (c *Coordinator) record(ctx context.Context, eventType string, detail map[string]any) {
	if c.audit == nil {
		return
	}
	_ = c.audit.Record(ctx, eventType, detail)
}
