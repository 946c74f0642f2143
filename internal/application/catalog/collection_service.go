package catalog

import (
	"context"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/catalog"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
)

// CollectionService handles collection-related business operations
type CollectionService struct {
	collectionRepo catalog.CollectionRepository
	eventPublisher shared.EventPublisher
}

// NewCollectionService creates a new CollectionService
func NewCollectionService(collectionRepo catalog.CollectionRepository) *CollectionService {
	return &CollectionService{collectionRepo: collectionRepo}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CollectionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new collection
func (s *CollectionService) Create(ctx context.Context, req CreateCollectionRequest) (*CollectionResponse, error) {
	collection, err := catalog.NewCollection(req.Name, req.Image, req.Description)
	if err != nil {
		return nil, err
	}
	exists, err := s.collectionRepo.ExistsByName(ctx, collection.Name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Collection with this name already exists")
	}

	if err := s.collectionRepo.Save(ctx, collection); err != nil {
		return nil, err
	}
	shared.PublishPending(ctx, s.eventPublisher, collection)

	response := ToCollectionResponse(collection)
	return &response, nil
}

// GetByID retrieves a collection by ID
func (s *CollectionService) GetByID(ctx context.Context, id uuid.UUID) (*CollectionResponse, error) {
	collection, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCollectionResponse(collection)
	return &response, nil
}

// List retrieves collections with filtering and pagination
func (s *CollectionService) List(ctx context.Context, filter CollectionListFilter) ([]CollectionResponse, int64, error) {
	domainFilter := toDomainFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	collections, err := s.collectionRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.collectionRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CollectionResponse, len(collections))
	for i := range collections {
		responses[i] = ToCollectionResponse(&collections[i])
	}
	return responses, total, nil
}

// Update updates the descriptive fields of a collection
func (s *CollectionService) Update(ctx context.Context, id uuid.UUID, req UpdateCollectionRequest) (*CollectionResponse, error) {
	collection, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, image, description := collection.Name, collection.Image, collection.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Image != nil {
		image = *req.Image
	}
	if req.Description != nil {
		description = *req.Description
	}

	if err := collection.Update(name, image, description); err != nil {
		return nil, err
	}
	exists, err := s.collectionRepo.ExistsByName(ctx, collection.Name, &collection.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Collection with this name already exists")
	}

	if err := s.collectionRepo.Save(ctx, collection); err != nil {
		return nil, err
	}

	response := ToCollectionResponse(collection)
	return &response, nil
}

// Delete soft-deletes a collection. Refused while products still reference it.
func (s *CollectionService) Delete(ctx context.Context, id uuid.UUID) error {
	collection, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := collection.Deactivate(); err != nil {
		return err
	}
	if err := s.collectionRepo.Save(ctx, collection); err != nil {
		return err
	}
	shared.PublishPending(ctx, s.eventPublisher, collection)
	return nil
}

func toDomainFilter(page, pageSize int, orderBy, orderDir, search string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir != "" {
		filter.OrderDir = orderDir
	}
	filter.Search = search
	return filter
}
