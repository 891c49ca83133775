package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

// DefaultSearchRadiusMeters applies when a near filter has no radius.
const DefaultSearchRadiusMeters = 5000

// PlaceUseCase implements the place listing directory.
type PlaceUseCase struct {
	placeRepo     contract.IPlaceRepository
	userRepo      contract.IUserRepository
	placeCache    contract.IPlaceCache
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
	now           func() time.Time
}

func NewPlaceUseCase(placeRepo contract.IPlaceRepository, userRepo contract.IUserRepository, uuidGenerator contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *PlaceUseCase {
	return &PlaceUseCase{
		placeRepo:     placeRepo,
		userRepo:      userRepo,
		uuidGenerator: uuidGenerator,
		logger:        logger,
		now:           time.Now,
	}
}

// SetPlaceCache enables read-through caching of place details.
func (uc *PlaceUseCase) SetPlaceCache(cache contract.IPlaceCache) {
	uc.placeCache = cache
}

var _ usecasecontract.IPlaceUseCase = (*PlaceUseCase)(nil)

// CreatePlace lists a new place. Admins may always create places; business
// accounts only once an admin has verified them.
func (uc *PlaceUseCase) CreatePlace(ctx context.Context, caller entity.Caller, in usecasecontract.PlaceInput) (*entity.Place, error) {
	if err := Authorize(caller, "", Authenticated, AnyOf(isAdmin, IsKind(entity.AccountKindBusiness))); err != nil {
		return nil, err
	}
	if !caller.Role.IsAdmin() {
		owner, err := uc.userRepo.GetUserByID(ctx, caller.UserID)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return nil, entity.ErrUnauthenticated
			}
			uc.logger.Errorf("failed to load place owner %s: %v", caller.UserID, err)
			return nil, entity.ErrInternal
		}
		if !owner.AccountVerified {
			return nil, fmt.Errorf("%w: business account is not verified yet", entity.ErrForbidden)
		}
	}

	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, entity.Validationf("name is required")
	}
	if in.Category == nil {
		return nil, entity.Validationf("category is required")
	}
	if in.Location == nil {
		return nil, entity.Validationf("location is required")
	}
	if err := validatePlaceInput(in); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	place := &entity.Place{
		ID:        uc.uuidGenerator.NewUUID(),
		Name:      strings.TrimSpace(*in.Name),
		Category:  *in.Category,
		Location:  *in.Location,
		Tags:      normalizeTags(in.Tags),
		Images:    in.Images,
		OwnerID:   caller.UserID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Description != nil {
		place.Description = strings.TrimSpace(*in.Description)
	}
	if in.Address != nil {
		place.Address = strings.TrimSpace(*in.Address)
	}
	if in.Contact != nil {
		place.Contact = strings.TrimSpace(*in.Contact)
	}
	if in.PriceRange != nil {
		place.PriceRange = strings.TrimSpace(*in.PriceRange)
	}

	if err := uc.placeRepo.CreatePlace(ctx, place); err != nil {
		uc.logger.Errorf("failed to create place: %v", err)
		return nil, entity.ErrInternal
	}
	return place, nil
}

func validatePlaceInput(in usecasecontract.PlaceInput) error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return entity.Validationf("name cannot be empty")
	}
	if in.Category != nil && !in.Category.Valid() {
		return entity.Validationf("unknown category %q", *in.Category)
	}
	if in.Location != nil && !in.Location.Valid() {
		return entity.Validationf("location must be a point with longitude in [-180,180] and latitude in [-90,90]")
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// GetPlace returns an active place, served from the cache when possible.
func (uc *PlaceUseCase) GetPlace(ctx context.Context, placeID string) (*entity.Place, error) {
	if uc.placeCache != nil {
		cached, found, err := uc.placeCache.GetPlace(ctx, placeID)
		if err != nil {
			uc.logger.Warnf("place cache read failed for %s: %v", placeID, err)
		} else if found {
			return cached, nil
		}
	}

	place, err := uc.loadActivePlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if uc.placeCache != nil {
		if err := uc.placeCache.SetPlace(ctx, place); err != nil {
			uc.logger.Warnf("place cache write failed for %s: %v", placeID, err)
		}
	}
	return place, nil
}

func (uc *PlaceUseCase) loadActivePlace(ctx context.Context, placeID string) (*entity.Place, error) {
	place, err := uc.placeRepo.GetPlaceByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: place not found", entity.ErrNotFound)
		}
		uc.logger.Errorf("failed to load place %s: %v", placeID, err)
		return nil, entity.ErrInternal
	}
	if !place.IsActive {
		return nil, fmt.Errorf("%w: place not found", entity.ErrNotFound)
	}
	return place, nil
}

func (uc *PlaceUseCase) ListPlaces(ctx context.Context, opts *contract.PlaceFilterOptions) ([]*entity.Place, int64, error) {
	if opts == nil {
		opts = &contract.PlaceFilterOptions{}
	}
	if opts.Category != nil && !opts.Category.Valid() {
		return nil, 0, entity.Validationf("unknown category %q", *opts.Category)
	}
	if opts.Near != nil {
		if !opts.Near.Point.Valid() {
			return nil, 0, entity.Validationf("invalid coordinates")
		}
		if opts.Near.RadiusMeters <= 0 {
			opts.Near.RadiusMeters = DefaultSearchRadiusMeters
		}
	}
	opts.Query = strings.TrimSpace(opts.Query)
	opts.Pagination = opts.Pagination.Normalize()

	places, total, err := uc.placeRepo.ListPlaces(ctx, opts)
	if err != nil {
		uc.logger.Errorf("failed to list places: %v", err)
		return nil, 0, entity.ErrInternal
	}
	return places, total, nil
}

// UpdatePlace changes owner-writable fields. Aggregates are never touched here.
func (uc *PlaceUseCase) UpdatePlace(ctx context.Context, caller entity.Caller, placeID string, in usecasecontract.PlaceInput) (*entity.Place, error) {
	place, err := uc.loadActivePlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(caller, place.OwnerID, Authenticated, ownerOrAdmin); err != nil {
		return nil, err
	}
	if err := validatePlaceInput(in); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		updates["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.Address != nil {
		updates["address"] = strings.TrimSpace(*in.Address)
	}
	if in.Location != nil {
		updates["location"] = *in.Location
	}
	if in.Tags != nil {
		updates["tags"] = normalizeTags(in.Tags)
	}
	if in.Images != nil {
		updates["images"] = in.Images
	}
	if in.Contact != nil {
		updates["contact"] = strings.TrimSpace(*in.Contact)
	}
	if in.PriceRange != nil {
		updates["price_range"] = strings.TrimSpace(*in.PriceRange)
	}
	if len(updates) == 0 {
		return place, nil
	}
	updates["updated_at"] = uc.now().UTC()

	if err := uc.placeRepo.UpdatePlace(ctx, placeID, updates); err != nil {
		uc.logger.Errorf("failed to update place %s: %v", placeID, err)
		return nil, entity.ErrInternal
	}
	uc.invalidate(ctx, placeID)

	return uc.loadActivePlace(ctx, placeID)
}

// DeletePlace deactivates a place.
func (uc *PlaceUseCase) DeletePlace(ctx context.Context, caller entity.Caller, placeID string) error {
	place, err := uc.loadActivePlace(ctx, placeID)
	if err != nil {
		return err
	}
	if err := Authorize(caller, place.OwnerID, Authenticated, ownerOrAdmin); err != nil {
		return err
	}
	if err := uc.placeRepo.DeletePlace(ctx, placeID); err != nil {
		uc.logger.Errorf("failed to delete place %s: %v", placeID, err)
		return entity.ErrInternal
	}
	uc.invalidate(ctx, placeID)
	return nil
}

func (uc *PlaceUseCase) invalidate(ctx context.Context, placeID string) {
	if uc.placeCache == nil {
		return
	}
	if err := uc.placeCache.InvalidatePlace(ctx, placeID); err != nil {
		uc.logger.Warnf("failed to invalidate cached place %s: %v", placeID, err)
	}
}
