package application

import (
	"context"
	"errors"
	"time"

	"github.com/SafeHaul-Logistics/service-routing/internal/domain/route"
	"github.com/SafeHaul-Logistics/service-routing/internal/domain/safety"
	"github.com/SafeHaul-Logistics/service-routing/internal/domain/zone"
	"github.com/SafeHaul-Logistics/service-routing/internal/events"
	"github.com/SafeHaul-Logistics/service-routing/internal/platform/apperr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ResultCache stores evaluation records for the detail-view endpoint.
type ResultCache interface {
	Put(ctx context.Context, rec safety.EvaluationRecord) error
	Get(ctx context.Context, routeID string) (*safety.EvaluationRecord, error)
}

// EventPublisher publishes routing lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, topic, eventType, key string, payload interface{}) error
}

// CalculateRoutesRequest is the calculation request body.
type CalculateRoutesRequest struct {
	Origin      route.LatLng      `json:"origin" binding:"required"`
	Destination route.LatLng      `json:"destination" binding:"required"`
	Preferences route.Preferences `json:"preferences"`
	TankerType  string            `json:"tankerType"`
	HazmatClass string            `json:"hazmatClass"`
}

// RouteResultDTO is one ranked route in the calculation response.
type RouteResultDTO struct {
	RouteID       string       `json:"routeId"`
	Summary       string       `json:"summary"`
	Distance      int          `json:"distance"`
	Duration      int          `json:"duration"`
	Polyline      string       `json:"polyline"`
	Bounds        route.Bounds `json:"bounds"`
	SafetyScore   float64      `json:"safetyScore"`
	IsSafest      bool         `json:"isSafest"`
	Color         string       `json:"color"`
	Justification string       `json:"justification"`
}

// EvaluationService orchestrates one route-safety calculation: directions
// lookup, normalization, parallel per-route factor extraction and scoring,
// ranking, justification, and result caching. All evaluation state is
// request-scoped; the service itself holds only immutable collaborators.
type EvaluationService struct {
	provider    route.DirectionsProvider
	schoolZones zone.Lookup
	hazmatZones zone.Lookup
	extractor   *safety.Extractor
	catalog     safety.Catalog
	cache       ResultCache
	producer    EventPublisher
	timeout     time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

// NewEvaluationService wires the evaluation pipeline.
func NewEvaluationService(
	provider route.DirectionsProvider,
	schoolZones zone.Lookup,
	hazmatZones zone.Lookup,
	classifier safety.StepClassifier,
	cache ResultCache,
	producer EventPublisher,
	timeout time.Duration,
	logger *zap.Logger,
) *EvaluationService {
	catalog := safety.DefaultCatalog()
	return &EvaluationService{
		provider:    provider,
		schoolZones: schoolZones,
		hazmatZones: hazmatZones,
		extractor:   safety.NewExtractor(catalog, classifier),
		catalog:     catalog,
		cache:       cache,
		producer:    producer,
		timeout:     timeout,
		now:         time.Now,
		logger:      logger,
	}
}

// CalculateRoutes evaluates all candidate routes between origin and
// destination and returns them ranked from safest to least safe.
func (s *EvaluationService) CalculateRoutes(ctx context.Context, req CalculateRoutesRequest) ([]RouteResultDTO, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	candidates, err := s.provider.Routes(ctx, req.Origin, req.Destination, req.Preferences)
	if err != nil {
		return nil, mapProviderError(err)
	}

	normalized := s.normalizeBatch(candidates)
	if len(normalized) == 0 {
		return nil, noSafeRoutes()
	}

	vehicle := safety.SpecFor(safety.VehicleClass(req.TankerType))
	evaluationTime := s.now().UTC()

	// Each route's evaluation is independent of its siblings: fan out one
	// task per candidate and join before ranking. Per-route failures are
	// logged and absorbed; they must not cancel the rest of the batch.
	records := make([]*safety.EvaluationRecord, len(normalized))
	var g errgroup.Group
	for i, r := range normalized {
		g.Go(func() error {
			rec, err := s.evaluateRoute(ctx, r, vehicle, req.HazmatClass, evaluationTime)
			if err != nil {
				s.logger.Warn("route dropped from batch",
					zap.String("route_id", r.ID),
					zap.Error(err),
				)
				return nil
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "route calculation timed out", err)
	}

	batch := make([]*safety.EvaluatedRoute, 0, len(records))
	survivors := make([]*safety.EvaluationRecord, 0, len(records))
	for _, rec := range records {
		if rec != nil {
			batch = append(batch, rec.Evaluated)
			survivors = append(survivors, rec)
		}
	}

	if err := safety.Rank(batch); err != nil {
		var empty *safety.EmptyBatchError
		if errors.As(err, &empty) {
			return nil, noSafeRoutes()
		}
		return nil, err
	}

	for _, rec := range survivors {
		rec.Evaluated.Justification = safety.Justify(rec.Evaluated, s.catalog)
		if err := s.cache.Put(ctx, *rec); err != nil {
			s.logger.Warn("evaluation cache write failed",
				zap.String("route_id", rec.Evaluated.Route.ID),
				zap.Error(err),
			)
		}
	}

	s.publishCompleted(ctx, req, len(candidates), batch)

	return toRouteResults(batch), nil
}

// GetRouteMetrics returns the detail view for a previously calculated
// route.
func (s *EvaluationService) GetRouteMetrics(ctx context.Context, routeID string) (*safety.DetailView, error) {
	if routeID == "" {
		return nil, apperr.NewValidationError("route id is required")
	}

	rec, err := s.cache.Get(ctx, routeID)
	if err != nil {
		return nil, err
	}

	vehicle := safety.SpecFor(rec.VehicleClass)
	view := safety.Present(rec.Evaluated, vehicle, rec.SchoolZones, rec.HazmatZones)
	return &view, nil
}

// SchoolZones exposes the school-zone dataset for an area.
func (s *EvaluationService) SchoolZones(ctx context.Context, bounds route.Bounds) ([]zone.Zone, error) {
	zones, err := s.schoolZones.ZonesWithin(ctx, bounds)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "failed to retrieve school zones", err)
	}
	return zones, nil
}

// HazmatRestrictions exposes the hazmat-restriction dataset for an area.
func (s *EvaluationService) HazmatRestrictions(ctx context.Context, bounds route.Bounds) ([]zone.Zone, error) {
	zones, err := s.hazmatZones.ZonesWithin(ctx, bounds)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "failed to retrieve hazmat restrictions", err)
	}
	return zones, nil
}

// --- Internals ---

func (s *EvaluationService) normalizeBatch(candidates []route.ProviderRoute) []*route.Route {
	normalized := make([]*route.Route, 0, len(candidates))
	for i, pr := range candidates {
		r, err := route.Normalize(pr)
		if err != nil {
			s.logger.Warn("candidate route failed normalization",
				zap.Int("candidate", i),
				zap.Error(err),
			)
			continue
		}
		normalized = append(normalized, r)
	}
	return normalized
}

func (s *EvaluationService) evaluateRoute(
	ctx context.Context,
	r *route.Route,
	vehicle safety.VehicleSpec,
	cargoClass string,
	evaluationTime time.Time,
) (*safety.EvaluationRecord, error) {
	schoolZones, err := s.schoolZones.ZonesWithin(ctx, r.Bounds)
	if err != nil {
		return nil, &safety.PartialExtractionError{RouteID: r.ID, Err: err}
	}

	hazmatZones, err := s.hazmatZones.ZonesWithin(ctx, r.Bounds)
	if err != nil {
		return nil, &safety.PartialExtractionError{RouteID: r.ID, Err: err}
	}

	factors, err := s.extractor.Extract(ctx, safety.ExtractionInput{
		Route:          r,
		Vehicle:        vehicle,
		CargoClass:     cargoClass,
		SchoolZones:    schoolZones,
		HazmatZones:    hazmatZones,
		EvaluationTime: evaluationTime,
	})
	if err != nil {
		return nil, err
	}

	return &safety.EvaluationRecord{
		Evaluated:    safety.Score(r, factors),
		VehicleClass: vehicle.Class,
		CargoClass:   cargoClass,
		SchoolZones:  schoolZones,
		HazmatZones:  hazmatZones,
	}, nil
}

func (s *EvaluationService) publishCompleted(
	ctx context.Context,
	req CalculateRoutesRequest,
	candidateCount int,
	batch []*safety.EvaluatedRoute,
) {
	if s.producer == nil || len(batch) == 0 {
		return
	}

	safest := batch[0]
	evt := events.EvaluationCompletedEvent{
		Origin:             req.Origin,
		Destination:        req.Destination,
		CandidateCount:     candidateCount,
		RankedCount:        len(batch),
		SafestRouteID:      safest.Route.ID,
		SafestDisplayScore: safest.Display,
		TankerType:         req.TankerType,
		OccurredAt:         s.now().UTC(),
	}

	err := s.producer.Publish(ctx, events.TopicRoutingEvents, events.EvaluationCompleted, safest.Route.ID, evt)
	if err != nil {
		s.logger.Error("failed to publish evaluation event", zap.Error(err))
	}
}

func validateRequest(req CalculateRoutesRequest) error {
	if req.Origin.IsZero() {
		return apperr.NewValidationError("origin is required")
	}
	if req.Destination.IsZero() {
		return apperr.NewValidationError("destination is required")
	}
	if !req.Origin.Valid() {
		return apperr.NewValidationError("origin is out of range")
	}
	if !req.Destination.Valid() {
		return apperr.NewValidationError("destination is out of range")
	}
	return nil
}

func mapProviderError(err error) error {
	var perr *route.ProviderError
	if errors.As(err, &perr) {
		switch perr.Status {
		case route.ProviderStatusZeroResults:
			return noSafeRoutes()
		case route.ProviderStatusInvalid:
			return apperr.NewValidationError("origin and destination could not be routed")
		default:
			return apperr.Wrap(apperr.KindUnavailable, "route calculation failed", err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Wrap(apperr.KindUnavailable, "route calculation timed out", err)
	}
	return apperr.Wrap(apperr.KindUnavailable, "route calculation failed", err)
}

func noSafeRoutes() error {
	return apperr.Wrap(apperr.KindNotFound, "no safe routes found between the given points", nil)
}

func toRouteResults(batch []*safety.EvaluatedRoute) []RouteResultDTO {
	results := make([]RouteResultDTO, len(batch))
	for i, er := range batch {
		results[i] = RouteResultDTO{
			RouteID:       er.Route.ID,
			Summary:       er.Route.Summary,
			Distance:      er.Route.DistanceMeters,
			Duration:      er.Route.DurationSeconds,
			Polyline:      er.Route.Polyline,
			Bounds:        er.Route.Bounds,
			SafetyScore:   er.Display,
			IsSafest:      er.IsSafest,
			Color:         safety.DisplayColor(er.Display),
			Justification: er.Justification,
		}
	}
	return results
}
