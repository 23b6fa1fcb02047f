package usecase

import (
	"context"
	"strings"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/shared/optional"
)

// ItemRepository abstracts the persistence layer for watchlist items.
// Every method except PlatformExists is scoped by the owning user id.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ItemRepository interface {
	// List returns the user's items, newest first.
	List(ctx context.Context, userID uint, filter entity.ItemFilter) ([]entity.Item, error)
	// Create inserts item and sets its ID.
	Create(ctx context.Context, item *entity.Item) error
	// FindByID returns ErrItemNotFound unless an item with id belongs to userID.
	FindByID(ctx context.Context, userID, id uint) (*entity.Item, error)
	// Update applies patch and refreshes updated_at, returning ErrItemNotFound when no row matched.
	Update(ctx context.Context, userID, id uint, patch entity.ItemPatch) error
	// Delete removes the item, returning ErrItemNotFound when no row matched.
	Delete(ctx context.Context, userID, id uint) error
	// PlatformExists reports whether a platform with id exists.
	PlatformExists(ctx context.Context, id uint) (bool, error)
}

// WatchlistUsecase provides ownership-scoped CRUD over watchlist items.
type WatchlistUsecase struct {
	repo ItemRepository
}

// NewWatchlistUsecase creates a new WatchlistUsecase with the given repository.
func NewWatchlistUsecase(r ItemRepository) *WatchlistUsecase {
	return &WatchlistUsecase{repo: r}
}

// List returns the user's items filtered by status and content type.
// An empty watchlist yields an empty, non-nil slice.
func (u *WatchlistUsecase) List(ctx context.Context, userID uint, filter entity.ItemFilter) ([]entity.Item, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if filter.ContentType != nil && !filter.ContentType.Valid() {
		return nil, ErrInvalidContentType
	}

	items, err := u.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.Item{}
	}
	return items, nil
}

// Add validates in, applies defaults and stores a new item owned by userID.
// The stored row is read back so the result carries timestamps and the platform name.
func (u *WatchlistUsecase) Add(ctx context.Context, userID uint, in entity.NewItem) (*entity.Item, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}
	if in.ContentType == "" {
		return nil, ErrContentTypeRequired
	}
	if !in.ContentType.Valid() {
		return nil, ErrInvalidContentType
	}

	// 空文字の status は省略と同じく既定値になります。
	status := entity.StatusWantToWatch
	if in.Status != nil && *in.Status != "" {
		if !in.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		status = *in.Status
	}
	if in.Rating != nil && !validRating(*in.Rating) {
		return nil, ErrInvalidRating
	}

	if in.PlatformID != nil {
		if err := u.checkPlatform(ctx, *in.PlatformID); err != nil {
			return nil, err
		}
	}

	item := &entity.Item{
		UserID:      userID,
		PlatformID:  in.PlatformID,
		Title:       in.Title,
		ContentType: in.ContentType,
		Status:      status,
		Rating:      in.Rating,
		Notes:       blankToNil(in.Notes),
		ImageURL:    blankToNil(in.ImageURL),
	}
	if err := u.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	return u.repo.FindByID(ctx, userID, item.ID)
}

// Update applies only the supplied fields of patch to the user's item.
func (u *WatchlistUsecase) Update(ctx context.Context, userID, id uint, patch entity.ItemPatch) (*entity.Item, error) {
	if patch.Empty() {
		return nil, ErrNoFieldsToUpdate
	}

	if patch.Title.Present() {
		title, ok := patch.Title.Get()
		if !ok || strings.TrimSpace(title) == "" {
			return nil, ErrTitleRequired
		}
	}
	if patch.ContentType.Present() {
		ct, ok := patch.ContentType.Get()
		if !ok || ct == "" {
			return nil, ErrContentTypeRequired
		}
		if !ct.Valid() {
			return nil, ErrInvalidContentType
		}
	}
	if patch.Status.Present() {
		st, ok := patch.Status.Get()
		if !ok {
			return nil, ErrStatusRequired
		}
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
	}
	if rating, ok := patch.Rating.Get(); ok && !validRating(rating) {
		return nil, ErrInvalidRating
	}
	if platformID, ok := patch.PlatformID.Get(); ok {
		if err := u.checkPlatform(ctx, platformID); err != nil {
			return nil, err
		}
	}

	patch.Notes = blankToNull(patch.Notes)
	patch.ImageURL = blankToNull(patch.ImageURL)

	if err := u.repo.Update(ctx, userID, id, patch); err != nil {
		return nil, err
	}
	return u.repo.FindByID(ctx, userID, id)
}

// Delete removes the user's item.
func (u *WatchlistUsecase) Delete(ctx context.Context, userID, id uint) error {
	return u.repo.Delete(ctx, userID, id)
}

func (u *WatchlistUsecase) checkPlatform(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrPlatformNotFound
	}
	ok, err := u.repo.PlatformExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPlatformNotFound
	}
	return nil
}

func validRating(r int) bool {
	return r >= entity.MinRating && r <= entity.MaxRating
}

// blankToNil maps empty or whitespace-only text to nil.
func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// blankToNull turns an explicit empty string into an explicit null.
func blankToNull(f optional.Field[string]) optional.Field[string] {
	if v, ok := f.Get(); ok && strings.TrimSpace(v) == "" {
		return optional.Null[string]()
	}
	return f
}
