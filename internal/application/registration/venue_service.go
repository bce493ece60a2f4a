package registration

import (
	"context"
	"io"

	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/infrastructure/cache"
	csvimport "github.com/sereci/sirepre/internal/infrastructure/import"
	"go.uber.org/zap"
)

// VenueService serves the venue list and imports venues from CSV.
type VenueService struct {
	venues   registration.VenueRepository
	cache    cache.VenueCache
	importer *csvimport.VenueImporter
	logger   *zap.Logger
}

// NewVenueService creates a new VenueService. venueCache may be nil.
func NewVenueService(venues registration.VenueRepository, venueCache cache.VenueCache, logger *zap.Logger) *VenueService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VenueService{
		venues:   venues,
		cache:    venueCache,
		importer: csvimport.NewVenueImporter(venues, logger),
		logger:   logger,
	}
}

// List returns every venue ordered by name. A cache failure falls back to
// the database.
func (s *VenueService) List(ctx context.Context) ([]VenueDTO, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("venue cache read failed", zap.Error(err))
		}
		if ok {
			return toVenueDTOs(cached), nil
		}
	}

	venues, err := s.venues.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, venues); err != nil {
			s.logger.Warn("venue cache write failed", zap.Error(err))
		}
	}
	return toVenueDTOs(venues), nil
}

// Import upserts the venues of a CSV file and drops the cached list when
// anything changed.
func (s *VenueService) Import(ctx context.Context, r io.Reader) (*csvimport.ImportResult, error) {
	result, err := s.importer.Import(ctx, r)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && result.Created+result.Updated > 0 {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("venue cache invalidation failed", zap.Error(err))
		}
	}
	return result, nil
}

func toVenueDTOs(venues []registration.Venue) []VenueDTO {
	out := make([]VenueDTO, len(venues))
	for i := range venues {
		out[i] = toVenueDTO(&venues[i])
	}
	return out
}
