package service

import (
	"context"
	"fmt"
	"strings"

	"hotel_manager/model"

	"github.com/gosimple/slug"
)

type HotelService struct {
	hotels HotelDirectory
	rooms  RoomDirectory
}

func NewHotelService(hotels HotelDirectory, rooms RoomDirectory) *HotelService {
	return &HotelService{hotels: hotels, rooms: rooms}
}

func (s *HotelService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "hotel"
	}
	result := base
	for i := 1; ; i++ {
		exists, err := s.hotels.SlugExists(ctx, result)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", result, err)
		}
		if !exists {
			return result, nil
		}
		result = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *HotelService) Create(ctx context.Context, input model.CreateHotelInput) (*model.Hotel, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		inputErr := NewInputError()
		inputErr.Add("name", "provide name")
		return nil, inputErr
	}

	hotelSlug, err := s.uniqueSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	hotel := &model.Hotel{
		Name:     name,
		Slug:     hotelSlug,
		Timezone: strings.TrimSpace(input.Timezone),
		Address:  strings.TrimSpace(input.Address),
		Phone:    strings.TrimSpace(input.Phone),
	}
	if err := s.hotels.CreateHotel(ctx, hotel); err != nil {
		return nil, fmt.Errorf("create hotel: %w", err)
	}
	return hotel, nil
}

func (s *HotelService) Get(ctx context.Context, id uint) (*model.Hotel, error) {
	hotel, err := s.hotels.GetHotel(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get hotel %d: %w", id, err)
	}
	return hotel, nil
}

func (s *HotelService) Rooms(ctx context.Context, hotelID uint) ([]model.Room, error) {
	if _, err := s.Get(ctx, hotelID); err != nil {
		return nil, err
	}
	rooms, err := s.rooms.ListRooms(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("list rooms of hotel %d: %w", hotelID, err)
	}
	return rooms, nil
}

func (s *HotelService) Room(ctx context.Context, roomID uint) (*model.Room, *model.Hotel, error) {
	room, err := s.rooms.GetRoomByID(ctx, roomID)
	if err != nil {
		return nil, nil, fmt.Errorf("get room %d: %w", roomID, err)
	}
	hotel, err := s.Get(ctx, room.HotelID)
	if err != nil {
		return nil, nil, err
	}
	return room, hotel, nil
}

func (s *HotelService) List(ctx context.Context) ([]model.Hotel, error) {
	hotels, err := s.hotels.ListHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	return hotels, nil
}
