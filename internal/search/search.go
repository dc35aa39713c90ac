package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/swegeo/swesearch/internal/transform"
	"github.com/swegeo/swesearch/pkg/sweref"
)

// HostMap supplies the state of the map the result lands on.
type HostMap interface {
	CenterLongitude() (float64, bool)
	SRID() int
}

// Result is a completed coordinate search.
type Result struct {
	Point        transform.Point      `json:"point"`
	Projection   *sweref.Projection   `json:"projection"`
	Confidence   float64              `json:"confidence"`
	Alternatives []*sweref.Projection `json:"alternatives,omitempty"`
	Warnings     []string             `json:"warnings,omitempty"`
	Format       sweref.Format        `json:"format"`
	Text         string               `json:"text"`
}

// errStale marks an invocation superseded by a newer one. It never
// reaches a callback.
var errStale = errors.New("superseded by a newer search")

// Searcher runs the full pipeline per invocation and guarantees that only
// the most recently issued invocation ever delivers an outcome. Staleness
// is decided by comparing a captured sequence number against the shared
// counter at every checkpoint; in-flight work of an older invocation is
// left to finish and its result discarded.
type Searcher struct {
	logger      *slog.Logger
	seq         atomic.Uint64
	host        HostMap
	transformer *transform.Transformer

	mx   sync.RWMutex
	pref sweref.Preference
}

func New(host HostMap, tr *transform.Transformer) *Searcher {
	return &Searcher{
		logger:      slog.Default().With("logger", "search"),
		host:        host,
		transformer: tr,
		pref:        sweref.PreferAuto,
	}
}

func (s *Searcher) Preference() sweref.Preference {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return s.pref
}

func (s *Searcher) SetPreference(p sweref.Preference) {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.pref = p
}

// Search runs one sequenced invocation. Exactly one of onSuccess and
// onError is called when the invocation is still current at delivery
// time; a superseded invocation calls neither.
func (s *Searcher) Search(ctx context.Context, text string, onSuccess func(*Result), onError func(key string)) {
	my := s.seq.Add(1)

	res, err := s.run(ctx, my, text)

	if errors.Is(err, errStale) {
		dropMetric.WithLabelValues("transform").Inc()

		return
	}

	// no asynchronous work between this check and the callback
	if s.seq.Load() != my {
		dropMetric.WithLabelValues("deliver").Inc()

		return
	}

	if err != nil {
		key := sweref.KeyOf(err)
		searchMetric.WithLabelValues("error").Inc()
		s.logger.Debug("search failed", slog.String("key", key))
		onError(key)

		return
	}

	searchMetric.WithLabelValues("ok").Inc()
	onSuccess(res)
}

func (s *Searcher) run(ctx context.Context, my uint64, text string) (*Result, error) {
	parsed, err := sweref.Parse(sweref.Sanitize(text))
	if err != nil {
		return nil, err
	}

	if s.outdated(my, "parse") {
		return nil, errStale
	}

	lon, hasLon := s.host.CenterLongitude()
	det := sweref.DetectProjection(parsed.Easting, parsed.Northing, lon, hasLon, s.Preference())

	if s.outdated(my, "detect") {
		return nil, errStale
	}

	val := sweref.Validate(parsed.Easting, parsed.Northing, det.Projection)
	if !val.Valid {
		if len(val.Errors) > 0 {
			return nil, sweref.NewKeyError(val.Errors[0])
		}

		return nil, sweref.NewKeyError(sweref.ErrorInvalidNumber)
	}

	if s.outdated(my, "validate") {
		return nil, errStale
	}

	if det.Projection == nil {
		return nil, sweref.NewKeyError(sweref.ErrorNoProjection)
	}

	point, err := s.transformer.Transform(ctx, parsed.Easting, parsed.Northing, det.Projection, s.host.SRID())
	if err != nil {
		s.logger.Warn("transform failed", slog.Any("error", err))

		return nil, sweref.NewKeyError(sweref.ErrorTransform)
	}

	return &Result{
		Point:        point,
		Projection:   det.Projection,
		Confidence:   det.Confidence,
		Alternatives: det.Alternatives,
		Warnings:     mergeWarnings(parsed.Warning, det.Warnings, val.Warnings),
		Format:       parsed.Format,
		Text:         parsed.SanitizedText,
	}, nil
}

func (s *Searcher) outdated(my uint64, stage string) bool {
	if s.seq.Load() == my {
		return false
	}

	dropMetric.WithLabelValues(stage).Inc()

	return true
}

func mergeWarnings(parseWarning string, lists ...[]string) []string {
	var res []string

	seen := make(map[string]bool)

	add := func(w string) {
		if w != "" && !seen[w] {
			seen[w] = true
			res = append(res, w)
		}
	}

	add(parseWarning)

	for _, l := range lists {
		for _, w := range l {
			add(w)
		}
	}

	return res
}
