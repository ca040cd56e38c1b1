package publish

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/ledger"
	"github.com/thoreinstein/crosspost/internal/logging"
	"github.com/thoreinstein/crosspost/internal/metrics"
	"github.com/thoreinstein/crosspost/internal/platform"
	"github.com/thoreinstein/crosspost/internal/post"
)

// Skip reasons recorded on outcomes.
const (
	ReasonNotEligible      = "not eligible"
	ReasonAlreadyPublished = "already published"
	ReasonDryRun           = "dry run"
)

// Options configures a Publisher.
type Options struct {
	// Registry holds the enabled platforms. Required.
	Registry *platform.Registry

	// Parser reads post files. Defaults to post.NewParser().
	Parser *post.Parser

	// Ledger, when set, skips (post, platform) pairs it already holds and
	// records new publications. Callers save it.
	Ledger *ledger.Ledger

	// Metrics, when set, receives per-post and per-platform counts.
	Metrics *metrics.Metrics

	// DryRun evaluates every post but sends nothing.
	DryRun bool

	// RunID identifies the run in logs and the ledger. Defaults to a
	// random UUID.
	RunID string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Publisher runs crosspost over a set of post files.
type Publisher struct {
	registry *platform.Registry
	parser   *post.Parser
	ledger   *ledger.Ledger
	metrics  *metrics.Metrics
	dryRun   bool
	runID    string
	now      func() time.Time
}

// New creates a Publisher from opts.
func New(opts Options) *Publisher {
	p := &Publisher{
		registry: opts.Registry,
		parser:   opts.Parser,
		ledger:   opts.Ledger,
		metrics:  opts.Metrics,
		dryRun:   opts.DryRun,
		runID:    opts.RunID,
		now:      opts.Now,
	}
	if p.registry == nil {
		p.registry = platform.NewRegistry()
	}
	if p.parser == nil {
		p.parser = post.NewParser()
	}
	if p.runID == "" {
		p.runID = uuid.NewString()
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// RunID returns the identifier of runs made by this Publisher.
func (p *Publisher) RunID() string {
	return p.runID
}

// Run processes paths in order and returns the report. Per-post and
// per-platform failures are recorded in the report, not returned. The error
// is non-nil only when ctx is cancelled; the partial report is still
// returned.
func (p *Publisher) Run(ctx context.Context, paths []string) (*Report, error) {
	logger := logging.FromContext(ctx).With("run_id", p.runID)
	ctx = logging.NewContext(ctx, logger)

	report := &Report{
		RunID:     p.runID,
		DryRun:    p.dryRun,
		Platforms: p.registry.Names(),
		StartedAt: p.now().UTC(),
	}
	defer func() {
		report.FinishedAt = p.now().UTC()
		p.metrics.ObserveRun(report.FinishedAt.Sub(report.StartedAt), report.FinishedAt)
	}()

	logger.Info("starting run",
		"posts", len(paths),
		"platforms", report.Platforms,
		"dry_run", p.dryRun,
	)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrap(err, "run interrupted")
		}

		pst, err := p.parser.ParseFile(path)
		if err != nil {
			logger.Warn("skipping post", "post", path, "error", err)
			report.ParseErrors = append(report.ParseErrors, ParseFailure{Path: path, Err: err})
			p.metrics.RecordPost(metrics.PostInvalid)
			continue
		}

		report.Outcomes = append(report.Outcomes, p.publishPost(ctx, pst)...)
	}

	s := report.Summary()
	logger.Info("run finished",
		"published", s.Published,
		"skipped", s.Skipped,
		"failed", s.Failed,
		"invalid", s.Invalid,
	)
	return report, nil
}

// publishPost sends pst to every enabled platform and returns one outcome
// per platform, in registry order.
func (p *Publisher) publishPost(ctx context.Context, pst *post.Post) []Outcome {
	logger := logging.FromContext(ctx).With("post", pst.Path)
	names := p.registry.Names()
	outcomes := make([]Outcome, len(names))
	for i, name := range names {
		outcomes[i] = Outcome{Post: pst.Path, Title: pst.Title, Platform: name}
	}

	if !pst.Eligible() {
		logger.Debug("post not eligible", "crosspost", pst.Crosspost, "published", pst.Published)
		p.metrics.RecordPost(metrics.PostIneligible)
		for i := range outcomes {
			outcomes[i].skip(ReasonNotEligible)
		}
		p.recordOutcomes(logger, outcomes)
		return outcomes
	}
	p.metrics.RecordPost(metrics.PostEligible)

	article, err := platform.NewArticle(pst)
	if err != nil {
		for i := range outcomes {
			outcomes[i].fail(errors.Wrap(err, "building article"))
		}
		p.recordOutcomes(logger, outcomes)
		return outcomes
	}

	// Each goroutine writes only outcomes[i]; failures are values, never
	// returned to the group, so no call cancels another.
	var g errgroup.Group
	g.SetLimit(max(len(names), 1))
	for i := range outcomes {
		out := &outcomes[i]
		g.Go(func() error {
			p.publishOne(ctx, out, article)
			return nil
		})
	}
	_ = g.Wait()

	p.recordOutcomes(logger, outcomes)
	return outcomes
}

// publishOne fills out for a single platform.
func (p *Publisher) publishOne(ctx context.Context, out *Outcome, article *platform.Article) {
	if reason := p.registry.Reason(out.Platform); reason != nil {
		out.fail(reason)
		return
	}
	target, ok := p.registry.Get(out.Platform)
	if !ok {
		out.fail(errors.Newf("platform %s is not registered", out.Platform))
		return
	}

	if p.ledger != nil {
		if e, found := p.ledger.Get(out.Post, out.Platform); found {
			out.skip(ReasonAlreadyPublished)
			out.Result = &platform.Result{Platform: e.Platform, ID: e.ID, URL: e.URL, Draft: e.Draft}
			return
		}
	}

	if p.dryRun {
		out.skip(ReasonDryRun)
		return
	}

	start := p.now()
	res, err := target.Publish(ctx, article)
	out.Duration = p.now().Sub(start)
	if err != nil {
		out.fail(err)
		return
	}
	out.Status = StatusPublished
	out.Result = res
}

// recordOutcomes logs each outcome, feeds metrics and, for publications,
// the ledger. It runs after every platform call for the post returned.
func (p *Publisher) recordOutcomes(logger *slog.Logger, outcomes []Outcome) {
	for _, o := range outcomes {
		p.metrics.RecordPublish(o.Platform, string(o.Status), o.Duration)

		switch o.Status {
		case StatusPublished:
			attrs := []any{"platform", o.Platform, "duration", o.Duration}
			if o.Result != nil {
				attrs = append(attrs, "id", o.Result.ID, "url", o.Result.URL, "draft", o.Result.Draft)
			}
			logger.Info("published", attrs...)

			if p.ledger != nil && o.Result != nil {
				p.ledger.Record(ledger.Entry{
					Post:        o.Post,
					Platform:    o.Platform,
					ID:          o.Result.ID,
					URL:         o.Result.URL,
					Draft:       o.Result.Draft,
					RunID:       p.runID,
					PublishedAt: p.now().UTC(),
				})
			}
		case StatusFailed:
			logger.Error("publish failed", "platform", o.Platform, "error", o.Err)
		default:
			logger.Debug("skipped", "platform", o.Platform, "reason", o.Reason)
		}
	}
}
