package tracing

// Span names.
const (
	SpanMotionResolve = "motion.resolve"
	SpanMotionApply   = "motion.apply"
)

// Span attribute keys for motion resolution.
const (
	AttrMotionID     = "motion.id"
	AttrMotionKeys   = "motion.keys"
	AttrMatchStatus  = "motion.match_status"
	AttrCursor       = "motion.cursor"
	AttrResolved     = "motion.resolved"
	AttrRange        = "motion.range"
	AttrLinewise     = "motion.linewise"
	AttrDocumentSize = "document.lines"
)
