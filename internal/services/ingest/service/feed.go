package service

import (
	"context"
	"sort"
	"time"

	"pulsetrack/internal/core/candidate"
	"pulsetrack/internal/core/normalize"
	"pulsetrack/internal/core/sentiment"
	"pulsetrack/internal/core/verify"
	"pulsetrack/internal/services/ingest/domain"
	ratdom "pulsetrack/internal/services/ratings/domain"
	rawdom "pulsetrack/internal/services/rawinputs/domain"
)

// pullFeed drains the external feed into raw inputs, best effort.
// Each candidate's batch is verified against the reference population before
// storage so every record carries its own status. Returns the earliest
// timestamp written and the number of records pulled
func (c *Coordinator) pullFeed(ctx context.Context) (time.Time, int) {
	roster, ok := c.resolver.(interface{ Roster() []string })
	if !ok {
		return time.Time{}, 0
	}

	var since time.Time
	var pulled int
	for _, cand := range roster.Roster() {
		recs, err := c.feed.Pull(ctx, cand)
		if err != nil {
			c.log.Warn().Err(err).Str("candidate", cand).Msg("feed pull failed")
			c.record(ctx, "ingest.feed_error", map[string]any{"candidate": cand, "error": err.Error()})
			continue
		}
		if len(recs) == 0 {
			continue
		}

		verification := c.classify(ctx, len(recs))
		writes := make([]rawdom.RawInputWrite, 0, len(recs))
		for _, rec := range recs {
			ts := rec.TS
			if ts.IsZero() {
				ts = c.now()
			}
			if since.IsZero() || ts.Before(since) {
				since = ts
			}
			writes = append(writes, rawdom.RawInputWrite{
				Source:       rec.Source,
				Content:      rec.Content,
				UserID:       rec.UserID,
				Candidate:    cand,
				Verification: verification,
				TS:           ts,
			})
		}
		if _, err := c.raws.WriteBatch(ctx, writes); err != nil {
			c.log.Warn().Err(err).Str("candidate", cand).Msg("feed records not stored")
			continue
		}
		pulled += len(writes)
	}
	return since, pulled
}

// scoreFeed reads stored opinions back, runs each through the normalizer and
// the lexicon scorer, and upserts one rating per candidate from the averaged
// splits. Failures are per candidate, one bad batch never blocks the rest
func (c *Coordinator) scoreFeed(ctx context.Context, started, since time.Time) {
	recs, err := c.raws.ListSince(ctx, since, 0)
	if err != nil {
		c.log.Warn().Err(err).Msg("stored opinions unreadable, feed scoring skipped")
		c.record(ctx, "ingest.feed_error", map[string]any{"error": err.Error()})
		return
	}
	if len(recs) == 0 {
		return
	}

	byCandidate := map[string][]rawdom.RawInput{}
	for _, r := range recs {
		cand := r.Candidate
		if cand == "" {
			cand = c.resolver.Resolve(normalize.New().Normalize(r.Content))
		}
		if cand == candidate.Unknown {
			c.log.Debug().Str("source", r.Source).Msg("opinion matches no known candidate, not scored")
			continue
		}
		byCandidate[cand] = append(byCandidate[cand], r)
	}

	cands := make([]string, 0, len(byCandidate))
	for cand := range byCandidate {
		cands = append(cands, cand)
	}
	sort.Strings(cands)

	for _, cand := range cands {
		batch := byCandidate[cand]

		splits := make([]sentiment.Result, 0, len(batch))
		for _, r := range batch {
			splits = append(splits, c.scorer.Score(normalize.New().Normalize(r.Content)))
		}
		agg := ratdom.AggregateSentiments(splits)
		score := ratdom.Score(agg)
		verification := c.classify(ctx, len(batch))

		prev, err := c.ratings.PreviousScore(ctx, cand)
		if err != nil {
			c.log.Warn().Err(err).Str("candidate", cand).Msg("previous score unavailable, feed batch not scored")
			continue
		}
		rating := ratdom.ApprovalRating{
			Candidate:    cand,
			TS:           started,
			RatingScore:  score,
			ChangeDelta:  ratdom.Delta(score, prev),
			State:        ratdom.StateNational,
			Verification: verification,
		}
		if err := c.ratings.UpsertRating(ctx, rating); err != nil {
			c.log.Warn().Err(err).Str("candidate", cand).Msg("feed rating not stored")
			continue
		}
		breakdown := ratdom.SentimentBreakdown{
			Candidate: cand,
			TS:        started,
			Positive:  agg.Positive,
			Negative:  agg.Negative,
			Neutral:   agg.Neutral,
		}
		if err := c.ratings.InsertBreakdown(ctx, breakdown); err != nil {
			c.log.Warn().Err(err).Str("candidate", cand).Msg("feed breakdown not stored")
			continue
		}

		c.log.Info().
			Str("candidate", cand).
			Int("opinions", len(batch)).
			Float64("score", score).
			Str("verification", string(verification)).
			Msg("feed batch scored")
		c.record(ctx, "ingest.feed_scored", map[string]any{
			"candidate": cand,
			"opinions":  len(batch),
			"score":     score,
		})
	}
}

// classify runs the verification rule against the national reference
// population, degrading to verified when the reference is unavailable
func (c *Coordinator) classify(ctx context.Context, mentions int) verify.Status {
	refVoters, err := c.demos.NationalRegisteredVoters(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("reference population unavailable, verification degraded")
		c.record(ctx, "ingest.verification_degraded", map[string]any{"error": err.Error()})
		return verify.StatusVerified
	}
	return c.verifier.Classify(int64(mentions), refVoters)
}

// NoopFeed is the FeedPort used when no live upstream is configured
type NoopFeed struct{}

// Pull implements domain.FeedPort
func (NoopFeed) Pull(context.Context, string) ([]domain.FeedRecord, error) { return nil, nil }

var _ domain.FeedPort = NoopFeed{}
