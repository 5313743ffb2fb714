package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	items       domain.ItemRepository
	users       domain.UserRepository
	bookings    domain.BookingRepository
	comments    domain.CommentRepository
	eligibility domain.CommentEligibility
	eventBus    domain.EventPublisher
	clock       domain.Clock
	logger      *zerolog.Logger
}

func NewItemService(
	items domain.ItemRepository,
	users domain.UserRepository,
	bookings domain.BookingRepository,
	comments domain.CommentRepository,
	eligibility domain.CommentEligibility,
	eventBus domain.EventPublisher,
	clock domain.Clock,
	logger *zerolog.Logger,
) *ItemService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &ItemService{
		items:       items,
		users:       users,
		bookings:    bookings,
		comments:    comments,
		eligibility: eligibility,
		eventBus:    eventBus,
		clock:       clock,
		logger:      logger,
	}
}

func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error) {
	if err := requireUser(ctx, s.users, ownerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil, models.NewInvalidRequest("Item name must not be blank")
	}

	item.OwnerID = ownerID
	if err := s.items.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")
	return item, nil
}

// UpdateItem applies the non-nil fields of patch; only the owner may edit.
func (s *ItemService) UpdateItem(ctx context.Context, itemID, requesterID int64, patch models.ItemPatch) (*models.Item, error) {
	item, err := loadItem(ctx, s.items, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != requesterID {
		return nil, models.NewForbidden("Only the owner can edit an item")
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, models.NewInvalidRequest("Item name must not be blank")
	}

	patch.Apply(item)
	err = s.items.UpdateItem(ctx, item)
	if errors.Is(err, database.ErrNotFound) {
		return nil, itemNotFound(itemID)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// SearchItems returns available items whose name or description contains text.
func (s *ItemService) SearchItems(ctx context.Context, text string) ([]*models.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []*models.Item{}, nil
	}
	return s.items.SearchAvailableItems(ctx, text)
}

// GetItemView shows last/next approved bookings to the owner only; comments to everyone.
func (s *ItemService) GetItemView(ctx context.Context, itemID, requesterID int64) (*models.ItemView, error) {
	item, err := loadItem(ctx, s.items, itemID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()

	comments, err := s.comments.GetCommentsByItems(ctx, []int64{item.ID})
	if err != nil {
		return nil, err
	}

	var approved []*models.Booking
	if item.OwnerID == requesterID {
		approved, err = s.bookings.GetApprovedBookingsForItems(ctx, []int64{item.ID})
		if err != nil {
			return nil, err
		}
	}

	return buildItemView(item, approved, comments, now), nil
}

// ListOwnerItemViews aggregates every item of ownerID with two bulk fetches,
// one for approved bookings and one for comments.
func (s *ItemService) ListOwnerItemViews(ctx context.Context, ownerID int64) ([]*models.ItemView, error) {
	if err := requireUser(ctx, s.users, ownerID); err != nil {
		return nil, err
	}

	items, err := s.items.GetItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []*models.ItemView{}, nil
	}
	now := s.clock.Now()

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	approved, err := s.bookings.GetApprovedBookingsForItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.GetCommentsByItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	bookingsByItem := make(map[int64][]*models.Booking, len(items))
	for _, b := range approved {
		bookingsByItem[b.ItemID] = append(bookingsByItem[b.ItemID], b)
	}
	commentsByItem := make(map[int64][]*models.Comment, len(items))
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], c)
	}

	views := make([]*models.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, buildItemView(item, bookingsByItem[item.ID], commentsByItem[item.ID], now))
	}
	return views, nil
}

func buildItemView(item *models.Item, approved []*models.Booking, comments []*models.Comment, now time.Time) *models.ItemView {
	last, next := models.LastAndNext(approved, now)
	view := &models.ItemView{
		Item:        *item,
		LastBooking: models.NewBookingShort(last),
		NextBooking: models.NewBookingShort(next),
		Comments:    make([]models.Comment, 0, len(comments)),
	}
	for _, c := range comments {
		view.Comments = append(view.Comments, *c)
	}
	return view
}

// AddComment requires a finished booking of the item by the author.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error) {
	author, err := loadUser(ctx, s.users, authorID)
	if err != nil {
		return nil, err
	}
	item, err := loadItem(ctx, s.items, itemID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()

	eligible, err := s.eligibility.CanCommentAt(ctx, authorID, item.ID, now)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, models.NewInvalidRequest("User has no completed booking of this item")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewInvalidRequest("Comment text must not be blank")
	}

	comment := &models.Comment{
		ItemID:     item.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Text:       text,
		CreatedAt:  now,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("comment_id", comment.ID).Int64("item_id", item.ID).Msg("comment added")
	if s.eventBus != nil {
		payload := events.CommentEventPayload{CommentID: comment.ID, ItemID: item.ID, AuthorID: author.ID, CreatedAt: now}
		if err := s.eventBus.PublishJSON(events.EventCommentAdded, payload); err != nil {
			s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
		}
	}
	return comment, nil
}
