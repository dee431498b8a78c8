package registry

import (
	"go.uber.org/zap"

	"github.com/GriffinCanCode/deskd/internal/domain/app"
)

// Seeder registers catalog apps with the app manager
type Seeder struct {
	manager *app.Manager
	logger  *zap.Logger
}

// NewSeeder creates a new catalog seeder
func NewSeeder(manager *app.Manager, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		manager: manager,
		logger:  logger.Named("seeder"),
	}
}

// Seed registers every catalog entry, skipping the ones that collide
func (s *Seeder) Seed(c *Catalog) (loaded, failed int) {
	for _, e := range c.Apps {
		if err := s.manager.Register(e.Descriptor()); err != nil {
			s.logger.Warn("Failed to seed app", zap.String("name", e.Name), zap.Error(err))
			failed++
			continue
		}
		loaded++
	}

	s.logger.Info("Seeding complete", zap.Int("loaded", loaded), zap.Int("failed", failed))
	return loaded, failed
}
