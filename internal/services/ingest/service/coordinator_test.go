package service

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"pulsetrack/internal/platform/logger"

	"pulsetrack/internal/core/candidate"
	"pulsetrack/internal/core/sentiment"
	"pulsetrack/internal/core/verify"
	demodom "pulsetrack/internal/services/demographics/domain"
	"pulsetrack/internal/services/ingest/domain"
	ratdom "pulsetrack/internal/services/ratings/domain"
	rawdom "pulsetrack/internal/services/rawinputs/domain"
)

type ratingKey struct {
	candidate string
	ts        time.Time
}

// fakeRatings keeps ratings in memory with upsert-by-key semantics
type fakeRatings struct {
	ratings    map[ratingKey]ratdom.ApprovalRating
	breakdowns []ratdom.SentimentBreakdown
}

func newFakeRatings() *fakeRatings {
	return &fakeRatings{ratings: map[ratingKey]ratdom.ApprovalRating{}}
}

func (f *fakeRatings) UpsertRating(_ context.Context, r ratdom.ApprovalRating) error {
	f.ratings[ratingKey{r.Candidate, r.TS}] = r
	return nil
}

func (f *fakeRatings) InsertBreakdown(_ context.Context, b ratdom.SentimentBreakdown) error {
	f.breakdowns = append(f.breakdowns, b)
	return nil
}

func (f *fakeRatings) PreviousScore(_ context.Context, cand string) (float64, error) {
	var best *ratdom.ApprovalRating
	for k, r := range f.ratings {
		if k.candidate != cand {
			continue
		}
		r := r
		if best == nil || r.TS.After(best.TS) {
			best = &r
		}
	}
	if best == nil {
		return 0, nil
	}
	return best.RatingScore, nil
}

func (f *fakeRatings) Latest(context.Context) ([]ratdom.ApprovalRating, error) { return nil, nil }
func (f *fakeRatings) Series(context.Context, string, time.Time, time.Time) ([]ratdom.ApprovalRating, error) {
	return nil, nil
}
func (f *fakeRatings) Breakdowns(context.Context, string, int) ([]ratdom.SentimentBreakdown, error) {
	return nil, nil
}

// fakeRaws keeps writes in memory and serves them back through ListSince
type fakeRaws struct {
	written int
	stored  []rawdom.RawInputWrite
}

func (f *fakeRaws) WriteBatch(_ context.Context, xs []rawdom.RawInputWrite) (int, error) {
	f.written += len(xs)
	f.stored = append(f.stored, xs...)
	return len(xs), nil
}

func (f *fakeRaws) ListSince(_ context.Context, since time.Time, _ int) ([]rawdom.RawInput, error) {
	var out []rawdom.RawInput
	for _, w := range f.stored {
		if w.TS.Before(since) {
			continue
		}
		out = append(out, rawdom.RawInput{
			Source:       w.Source,
			Content:      w.Content,
			UserID:       w.UserID,
			Candidate:    w.Candidate,
			Verification: w.Verification,
			TS:           w.TS,
		})
	}
	return out, nil
}

type demosStub struct{ voters int64 }

func (d demosStub) List(context.Context) ([]demodom.StateDemographics, error) { return nil, nil }

func (d demosStub) RegisteredVoters(context.Context, string) (int64, error) { return d.voters, nil }

func (d demosStub) NationalRegisteredVoters(context.Context) (int64, error) { return d.voters, nil }

type fakeAudit struct{ events []string }

func (f *fakeAudit) Record(_ context.Context, eventType string, _ map[string]any) error {
	f.events = append(f.events, eventType)
	return nil
}

func (f *fakeAudit) has(eventType string) bool {
	for _, e := range f.events {
		if e == eventType {
			return true
		}
	}
	return false
}

type fakeFeed struct {
	candidate string
	records   []domain.FeedRecord
}

func (f fakeFeed) Pull(_ context.Context, cand string) ([]domain.FeedRecord, error) {
	if cand != f.candidate {
		return nil, nil
	}
	return f.records, nil
}

func testScorer(t *testing.T) *sentiment.Scorer {
	t.Helper()
	lex, err := sentiment.Load()
	if err != nil {
		t.Fatalf("load lexicon: %v", err)
	}
	return sentiment.New(lex, *logger.Named("ingest-test"))
}

func newTestCoordinator(t *testing.T, dir string, ratings *fakeRatings, audit *fakeAudit) (*Coordinator, *fakeRaws) {
	t.Helper()
	return newTestCoordinatorWith(t, dir, ratings, audit, demosStub{voters: 1_000_000}, nil)
}

func newTestCoordinatorWith(
	t *testing.T, dir string, ratings *fakeRatings, audit *fakeAudit, demos demodom.ReaderPort, feed domain.FeedPort,
) (*Coordinator, *fakeRaws) {
	t.Helper()
	raws := &fakeRaws{}
	c := NewCoordinator(
		Config{Dir: dir},
		candidate.NewTokenMatcher(nil),
		testScorer(t),
		verify.New(0.1),
		ratings,
		raws,
		demos,
		audit,
		feed,
		*logger.Named("ingest-test"),
	)
	return c, raws
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const tinubuBatch = `Date,Sentiment Category,Percentage,Trending Phrases,Example Posts
2025-08-10,Positive,80,renewed hope,the economy is turning
2025-08-10,Neutral,20,,waiting to see
2025-08-10,Headlines,"Tinubu rallies in Lagos",,
`

func TestIngestFile_ScoreAndDelta(t *testing.T) {
	dir := t.TempDir()
	ratings := newFakeRatings()
	audit := &fakeAudit{}
	c, raws := newTestCoordinator(t, dir, ratings, audit)

	path := writeFile(t, dir, "batch.csv", tinubuBatch)
	fr := c.IngestFile(context.Background(), path)

	if fr.State != domain.StateDone {
		t.Fatalf("file state = %s, want done (report: %+v)", fr.State, fr)
	}
	if len(ratings.ratings) != 1 {
		t.Fatalf("got %d ratings, want 1", len(ratings.ratings))
	}
	var r ratdom.ApprovalRating
	for _, v := range ratings.ratings {
		r = v
	}
	// positive 80, neutral 20 with no prior score
	if r.Candidate != "Tinubu" || r.RatingScore != 90.00 || r.ChangeDelta != 90.00 {
		t.Fatalf("rating = %+v, want Tinubu 90.00/90.00", r)
	}
	if r.State != ratdom.StateNational {
		t.Fatalf("rating state = %q, want National", r.State)
	}
	if r.Verification != verify.StatusVerified {
		t.Fatalf("verification = %q, want verified", r.Verification)
	}
	if len(ratings.breakdowns) != 1 {
		t.Fatalf("got %d breakdowns, want 1", len(ratings.breakdowns))
	}
	if raws.written != 2 {
		t.Fatalf("raw inputs written = %d, want 2 example posts", raws.written)
	}
	for _, w := range raws.stored {
		if w.Verification != verify.StatusVerified {
			t.Fatalf("raw input verification = %q, want verified stamped per record", w.Verification)
		}
	}
	if !audit.has("ingest.success") {
		t.Fatalf("audit events = %v, want ingest.success", audit.events)
	}
}

func TestIngestFile_ReingestionReplaces(t *testing.T) {
	dir := t.TempDir()
	ratings := newFakeRatings()
	c, _ := newTestCoordinator(t, dir, ratings, &fakeAudit{})

	path := writeFile(t, dir, "batch.csv", tinubuBatch)
	if fr := c.IngestFile(context.Background(), path); fr.State != domain.StateDone {
		t.Fatalf("first pass state = %s", fr.State)
	}
	if fr := c.IngestFile(context.Background(), path); fr.State != domain.StateDone {
		t.Fatalf("second pass state = %s", fr.State)
	}

	// one logical row per (candidate, timestamp), second pass overwrote the first
	if len(ratings.ratings) != 1 {
		t.Fatalf("got %d ratings after reingest, want 1", len(ratings.ratings))
	}
	var r ratdom.ApprovalRating
	for _, v := range ratings.ratings {
		r = v
	}
	if r.RatingScore != 90.00 {
		t.Fatalf("score = %v, want 90.00", r.RatingScore)
	}
	// second pass saw the first pass's score as previous
	if r.ChangeDelta != 0.00 {
		t.Fatalf("delta = %v, want 0.00 on reingest", r.ChangeDelta)
	}
	// breakdown history is append-only
	if len(ratings.breakdowns) != 2 {
		t.Fatalf("got %d breakdowns, want 2 (append-only)", len(ratings.breakdowns))
	}
}

func TestIngestFile_EmptySkipped(t *testing.T) {
	dir := t.TempDir()
	audit := &fakeAudit{}
	ratings := newFakeRatings()
	c, _ := newTestCoordinator(t, dir, ratings, audit)

	path := writeFile(t, dir, "empty.csv", "")
	fr := c.IngestFile(context.Background(), path)
	if fr.State != domain.StateSkipped {
		t.Fatalf("file state = %s, want skipped", fr.State)
	}
	if len(ratings.ratings) != 0 || len(ratings.breakdowns) != 0 {
		t.Fatal("empty file must not produce rows")
	}
	if !audit.has("ingest.skip") {
		t.Fatalf("audit events = %v, want ingest.skip", audit.events)
	}
}

func TestIngestFile_UnknownCandidateGroupSkipped(t *testing.T) {
	dir := t.TempDir()
	audit := &fakeAudit{}
	ratings := newFakeRatings()
	c, _ := newTestCoordinator(t, dir, ratings, audit)

	body := `Date,Sentiment Category,Percentage,Trending Phrases,Example Posts
2025-08-10,Positive,80,renewed hope,looking good
2025-08-10,Headlines,"Tinubu rallies in Lagos",,
2025-08-11,Positive,70,no names here,some text
2025-08-11,Headlines,"Market day in Onitsha",,
`
	path := writeFile(t, dir, "mixed.csv", body)
	fr := c.IngestFile(context.Background(), path)

	if len(fr.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(fr.Groups))
	}
	sort.Slice(fr.Groups, func(i, j int) bool { return fr.Groups[i].DateKey < fr.Groups[j].DateKey })
	if fr.Groups[0].State != domain.StateDone || fr.Groups[0].Candidate != "Tinubu" {
		t.Fatalf("known group = %+v, want done for Tinubu", fr.Groups[0])
	}
	if fr.Groups[1].State != domain.StateFailed {
		t.Fatalf("unknown group = %+v, want failed", fr.Groups[1])
	}
	// sibling success still counts, file archives
	if fr.State != domain.StateDone {
		t.Fatalf("file state = %s, want done despite one failed group", fr.State)
	}
	if !audit.has("ingest.unknown_candidate") {
		t.Fatalf("audit events = %v, want ingest.unknown_candidate", audit.events)
	}
	if len(ratings.ratings) != 1 {
		t.Fatalf("got %d ratings, want 1 from the resolvable group", len(ratings.ratings))
	}
}

func TestRunPass_Archives(t *testing.T) {
	dir := t.TempDir()
	ratings := newFakeRatings()
	c, _ := newTestCoordinator(t, dir, ratings, &fakeAudit{})

	writeFile(t, dir, "batch.csv", tinubuBatch)
	writeFile(t, dir, "empty.csv", "")

	report, err := c.RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	if len(report.Files) != 2 {
		t.Fatalf("got %d file reports, want 2", len(report.Files))
	}

	// processed file moved to archive, skipped file left for inspection
	if _, err := os.Stat(filepath.Join(dir, "archive", "batch.csv")); err != nil {
		t.Fatalf("batch.csv not archived: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "batch.csv")); !os.IsNotExist(err) {
		t.Fatal("batch.csv still in ingest dir")
	}
	if _, err := os.Stat(filepath.Join(dir, "empty.csv")); err != nil {
		t.Fatalf("empty.csv should stay in place: %v", err)
	}
}

func TestRunPass_FeedOpinionsScored(t *testing.T) {
	dir := t.TempDir()
	ratings := newFakeRatings()
	audit := &fakeAudit{}
	started := time.Date(2025, 8, 12, 9, 0, 0, 0, time.UTC)

	feed := fakeFeed{candidate: "Obi", records: []domain.FeedRecord{
		{Source: "x", Content: "this government is terrible and corrupt", UserID: "u1", TS: started.Add(-2 * time.Hour)},
		{Source: "x", Content: "totally failed, the hunger is worse every day", UserID: "u2", TS: started.Add(-time.Hour)},
		{Source: "x", Content: "insecurity everywhere, a complete disaster", UserID: "u3", TS: started.Add(-30 * time.Minute)},
	}}
	c, raws := newTestCoordinatorWith(t, dir, ratings, audit, demosStub{voters: 1_000_000}, feed)
	c.now = func() time.Time { return started }

	report, err := c.RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	if len(report.Files) != 0 {
		t.Fatalf("got %d file reports from an empty dir, want 0", len(report.Files))
	}

	// every pulled opinion lands in raw inputs with its status stamped
	if raws.written != 3 {
		t.Fatalf("raw inputs written = %d, want 3", raws.written)
	}
	for _, w := range raws.stored {
		if w.Candidate != "Obi" || w.Verification != verify.StatusVerified {
			t.Fatalf("raw input = %+v, want Obi/verified", w)
		}
	}

	// the batch was normalized, scored, and aggregated into one rating
	r, ok := ratings.ratings[ratingKey{"Obi", started}]
	if !ok {
		t.Fatalf("no rating for Obi at pass start, got %+v", ratings.ratings)
	}
	if r.RatingScore >= 50 {
		t.Fatalf("score = %v for uniformly negative posts, want < 50", r.RatingScore)
	}
	if r.ChangeDelta != r.RatingScore {
		t.Fatalf("delta = %v, want %v with no prior score", r.ChangeDelta, r.RatingScore)
	}
	if r.State != ratdom.StateNational || r.Verification != verify.StatusVerified {
		t.Fatalf("rating = %+v, want National/verified", r)
	}
	if len(ratings.breakdowns) != 1 || ratings.breakdowns[0].Negative <= 0 {
		t.Fatalf("breakdowns = %+v, want one with a negative share", ratings.breakdowns)
	}
	if !audit.has("ingest.feed_scored") {
		t.Fatalf("audit events = %v, want ingest.feed_scored", audit.events)
	}
}

func TestIngestFile_VerificationCountsSentimentRows(t *testing.T) {
	dir := t.TempDir()
	ratings := newFakeRatings()
	// threshold 0.1 of 20 registered voters, three mentions cross it
	c, _ := newTestCoordinatorWith(t, dir, ratings, &fakeAudit{}, demosStub{voters: 20}, nil)

	body := `Date,Sentiment Category,Percentage,Trending Phrases,Example Posts
2025-08-10,Positive,80,renewed hope,
2025-08-10,Neutral,15,,
2025-08-10,Negative,5,,
2025-08-10,Headlines,"Tinubu rallies in Lagos",,
`
	path := writeFile(t, dir, "batch.csv", body)
	fr := c.IngestFile(context.Background(), path)
	if fr.State != domain.StateDone {
		t.Fatalf("file state = %s (report: %+v)", fr.State, fr)
	}

	var r ratdom.ApprovalRating
	for _, v := range ratings.ratings {
		r = v
	}
	// rows without example posts still count as mentions
	if r.Verification != verify.StatusSuspicious {
		t.Fatalf("verification = %q, want suspicious from 3 sentiment rows", r.Verification)
	}
}
