package motion

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/vimotion/internal/buffer"
	"github.com/zjrosen/vimotion/internal/cachemanager"
	"github.com/zjrosen/vimotion/internal/log"
	"github.com/zjrosen/vimotion/internal/textscan"
	"github.com/zjrosen/vimotion/internal/tracing"
)

// Registry is an ordered list of motion definitions.
type Registry struct {
	defs   []Definition
	opts   Options
	tracer trace.Tracer
	tags   *cachemanager.ReadThroughCache[string, []textscan.TagRecord, buffer.Document]
}

// Option configures a Registry.
type Option func(*Registry)

// WithTracer records a span for every resolution.
func WithTracer(t trace.Tracer) Option {
	return func(r *Registry) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithOptions sets the resolver options.
func WithOptions(o Options) Option {
	return func(r *Registry) {
		r.opts = o
	}
}

// WithTagCache reuses parsed markup for documents with identical text,
// keeping each parse for ttl.
func WithTagCache(c cachemanager.CacheManager[string, []textscan.TagRecord], ttl time.Duration) Option {
	return func(r *Registry) {
		r.tags = cachemanager.NewReadThroughCache(c, parseTags, ttl)
	}
}

func parseTags(_ context.Context, doc buffer.Document) []textscan.TagRecord {
	return textscan.Tags(doc)
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		opts:   DefaultOptions(),
		tracer: noop.NewTracerProvider().Tracer("motion"),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// NewDefaultRegistry returns a registry populated with Defaults().
func NewDefaultRegistry(opts ...Option) *Registry {
	r := NewRegistry(opts...)
	r.Register(Defaults()...)
	return r
}

// Register appends definitions. Earlier registrations win ties.
func (r *Registry) Register(defs ...Definition) {
	r.defs = append(r.defs, defs...)
}

// Definitions returns the registered definitions in order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Options returns the resolver options.
func (r *Registry) Options() Options {
	return r.opts
}

// Match resolves a key buffer to Pending, NoMatch or the first definition
// that completes.
func (r *Registry) Match(keys []string) MatchResult {
	pending := false
	for _, d := range r.defs {
		if groups, ok := d.Complete(keys); ok {
			return MatchResult{Status: StatusMatched, Motion: d, Groups: groups}
		}
		if !pending && d.Partial(keys) {
			pending = true
		}
	}
	if pending {
		return MatchResult{Status: StatusPending}
	}
	return MatchResult{Status: StatusNoMatch}
}

// Resolve matches keys and, on a match, runs the motion's resolver at pos.
// ok is false unless a motion matched and applies at pos.
func (r *Registry) Resolve(ctx context.Context, doc buffer.Document, keys []string, pos buffer.Position) (MatchResult, buffer.Range, bool) {
	ctx, span := r.tracer.Start(ctx, tracing.SpanMotionResolve)
	defer span.End()

	res := r.Match(keys)
	span.SetAttributes(
		attribute.String(tracing.AttrMotionKeys, strings.Join(keys, "")),
		attribute.String(tracing.AttrMatchStatus, res.Status.String()),
	)
	if res.Status != StatusMatched {
		log.Debug(log.CatMotion, "No motion resolved", "keys", strings.Join(keys, ""), "status", res.Status)
		return res, buffer.Range{}, false
	}

	rng, ok := r.Apply(ctx, doc, res, pos)
	return res, rng, ok
}

// Apply runs the resolver of a matched result at pos. The position is
// clamped into the document first.
func (r *Registry) Apply(ctx context.Context, doc buffer.Document, res MatchResult, pos buffer.Position) (buffer.Range, bool) {
	if res.Status != StatusMatched || res.Motion == nil {
		return buffer.Range{}, false
	}

	_, span := r.tracer.Start(ctx, tracing.SpanMotionApply)
	defer span.End()

	pos = buffer.Clamp(doc, pos)
	rng, ok := res.Motion.Resolve(Context{
		Doc:     doc,
		Pos:     pos,
		Groups:  res.Groups,
		Options: r.opts,
		tags:    r.tagSource(ctx, doc),
	})

	span.SetAttributes(
		attribute.String(tracing.AttrMotionID, res.Motion.ID()),
		attribute.String(tracing.AttrCursor, pos.String()),
		attribute.Int(tracing.AttrDocumentSize, doc.LineCount()),
		attribute.Bool(tracing.AttrResolved, ok),
	)
	if !ok {
		log.Debug(log.CatMotion, "Motion not applicable", "motion", res.Motion.ID(), "pos", pos)
		return buffer.Range{}, false
	}
	span.SetAttributes(
		attribute.String(tracing.AttrRange, rng.String()),
		attribute.Bool(tracing.AttrLinewise, rng.Linewise),
	)
	log.Debug(log.CatMotion, "Motion resolved", "motion", res.Motion.ID(), "pos", pos, "range", rng)
	return rng, true
}

// tagSource returns the cached tag lookup for doc, nil when no cache is
// configured.
func (r *Registry) tagSource(ctx context.Context, doc buffer.Document) func() []textscan.TagRecord {
	if r.tags == nil {
		return nil
	}
	return func() []textscan.TagRecord {
		return r.tags.Get(ctx, documentKey(doc), doc)
	}
}

// documentKey identifies a document by the hash of its text.
func documentKey(doc buffer.Document) string {
	text := buffer.Text(doc)
	return strconv.Itoa(len(text)) + ":" + strconv.FormatUint(xxhash.Sum64String(text), 16)
}
