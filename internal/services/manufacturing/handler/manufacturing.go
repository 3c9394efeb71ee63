package handler

import (
	"context"
	"time"

	"gorm.io/gorm"

	"manufacturing-system/internal/database/models"
	"manufacturing-system/internal/logger"
	"manufacturing-system/internal/services/manufacturing/repository"
)

const (
	ResourcePlant           = "plant"
	ResourceProduct         = "product"
	ResourceMaterial        = "material"
	ResourceOrder           = "order"
	ResourcePlantProduct    = "plant_product"
	ResourcePlantMaterial   = "plant_material"
	ResourceProductMaterial = "product_material"
	ResourceOrderProduct    = "order_product"
	ResourceStorageProduct  = "storage_product"
	ResourceStorageMaterial = "storage_material"
)

// staleFillWindow is how long after a write its cache keys are evicted a
// second time.
const staleFillWindow = time.Second

// Service runs CRUD for one resource with a read-through cache in front of
// FindByID. Cache failures are logged and never fail the call.
type Service[M any] struct {
	resource string
	repo     *repository.Repository[M]
	cache    Cache
	log      *logger.Logger
	// dependents are resources whose rows cascade when a row of this one is deleted.
	dependents []string
	// redeleteAfter is the delay of the second eviction; zero disables it.
	redeleteAfter time.Duration
}

func NewService[M any](resource string, db *gorm.DB, cache Cache, log *logger.Logger, dependents ...string) *Service[M] {
	if cache == nil {
		cache = NoopCache{}
	}
	return &Service[M]{
		resource:      resource,
		repo:          repository.New[M](db),
		cache:         cache,
		log:           log.With("resource", resource),
		dependents:    dependents,
		redeleteAfter: staleFillWindow,
	}
}

func (s *Service[M]) Resource() string { return s.resource }

func (s *Service[M]) Create(ctx context.Context, m *M) error {
	return s.repo.Create(ctx, m)
}

func (s *Service[M]) Get(ctx context.Context, id int64) (*M, error) {
	key := cacheKey(s.resource, id)

	var cached M
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("cache get failed, falling back to db", "key", key, "error", err)
	} else if hit {
		return &cached, nil
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, m); err != nil {
		s.log.Warn("cache set failed", "key", key, "error", err)
	}
	return m, nil
}

// List returns one page and the number of rows matching the filters.
func (s *Service[M]) List(ctx context.Context, q repository.ListQuery) ([]M, int64, error) {
	if q.Limit <= 0 {
		q.Limit = repository.DefaultLimit
	}
	if q.Limit > repository.MaxLimit {
		q.Limit = repository.MaxLimit
	}

	rows, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, q.Filters)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Service[M]) Update(ctx context.Context, id int64, m *M) (*M, error) {
	updated, err := s.repo.Update(ctx, id, m)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return updated, nil
}

func (s *Service[M]) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	if len(s.dependents) > 0 {
		s.evictTwice(ctx, s.flushDependents)
	}
	return nil
}

func (s *Service[M]) invalidate(ctx context.Context, id int64) {
	key := cacheKey(s.resource, id)
	s.evictTwice(ctx, func(ctx context.Context) {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.log.Warn("cache delete failed", "key", key, "error", err)
		}
	})
}

func (s *Service[M]) flushDependents(ctx context.Context) {
	for _, dependent := range s.dependents {
		if err := s.cache.DeletePrefix(ctx, cacheNamespace(dependent)); err != nil {
			s.log.Warn("cache flush failed", "namespace", dependent, "error", err)
		}
	}
}

// evictTwice runs evict now and again after redeleteAfter. A Get that read
// the old row before the write may Set it after the first eviction; the
// second one drops it.
func (s *Service[M]) evictTwice(ctx context.Context, evict func(context.Context)) {
	evict(ctx)
	if s.redeleteAfter <= 0 {
		return
	}
	time.AfterFunc(s.redeleteAfter, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		evict(ctx)
	})
}

// --- Handler ---

type ManufacturingHandler struct {
	Plants           *Service[models.Plant]
	Products         *Service[models.Product]
	Materials        *Service[models.Material]
	Orders           *Service[models.Order]
	PlantProducts    *Service[models.PlantProduct]
	PlantMaterials   *Service[models.PlantMaterial]
	ProductMaterials *Service[models.ProductMaterial]
	OrderProducts    *Service[models.OrderProduct]
	StorageProducts  *Service[models.StorageProduct]
	StorageMaterials *Service[models.StorageMaterial]
}

func NewManufacturingHandler(db *gorm.DB, cache Cache, log *logger.Logger) *ManufacturingHandler {
	return &ManufacturingHandler{
		Plants: NewService[models.Plant](ResourcePlant, db, cache, log,
			ResourcePlantProduct, ResourcePlantMaterial),
		Products: NewService[models.Product](ResourceProduct, db, cache, log,
			ResourcePlantProduct, ResourceProductMaterial, ResourceOrderProduct, ResourceStorageProduct),
		Materials: NewService[models.Material](ResourceMaterial, db, cache, log,
			ResourcePlantMaterial, ResourceProductMaterial, ResourceStorageMaterial),
		Orders: NewService[models.Order](ResourceOrder, db, cache, log,
			ResourceOrderProduct),
		PlantProducts:    NewService[models.PlantProduct](ResourcePlantProduct, db, cache, log),
		PlantMaterials:   NewService[models.PlantMaterial](ResourcePlantMaterial, db, cache, log),
		ProductMaterials: NewService[models.ProductMaterial](ResourceProductMaterial, db, cache, log),
		OrderProducts:    NewService[models.OrderProduct](ResourceOrderProduct, db, cache, log),
		StorageProducts:  NewService[models.StorageProduct](ResourceStorageProduct, db, cache, log),
		StorageMaterials: NewService[models.StorageMaterial](ResourceStorageMaterial, db, cache, log),
	}
}
