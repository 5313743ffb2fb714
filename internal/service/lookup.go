package service

import (
	"context"
	"errors"
	"fmt"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"
)

func userNotFound(id int64) error {
	return models.NewNotFound(fmt.Sprintf("User with id %d not found", id))
}

func itemNotFound(id int64) error {
	return models.NewNotFound(fmt.Sprintf("Item with id %d not found", id))
}

func bookingNotFound(id int64) error {
	return models.NewNotFound(fmt.Sprintf("Booking with id %d not found", id))
}

func requireUser(ctx context.Context, users domain.UserRepository, id int64) error {
	exists, err := users.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return userNotFound(id)
	}
	return nil
}

func loadUser(ctx context.Context, users domain.UserRepository, id int64) (*models.User, error) {
	user, err := users.GetUserByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, userNotFound(id)
	}
	return user, err
}

func loadItem(ctx context.Context, items domain.ItemRepository, id int64) (*models.Item, error) {
	item, err := items.GetItemByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, itemNotFound(id)
	}
	return item, err
}

func loadBooking(ctx context.Context, bookings domain.BookingRepository, id int64) (*models.Booking, error) {
	booking, err := bookings.GetBooking(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, bookingNotFound(id)
	}
	return booking, err
}
