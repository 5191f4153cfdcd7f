package service

import "errors"

var (
	// ErrInvalidLoadID is returned when load ID is empty.
	ErrInvalidLoadID = errors.New("invalid load id")

	// ErrInvalidDriverID is returned when driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidStatus is returned when a status value is not one of the
	// known load statuses.
	ErrInvalidStatus = errors.New("invalid load status")

	// ErrInvalidReadingStage is returned when a reading stage is not
	// received, pickup or delivery.
	ErrInvalidReadingStage = errors.New("invalid odometer reading stage")

	// ErrMissingReceivedReading is returned when a load is created without
	// a received odometer reading, or a pickup reading is appended before
	// one exists.
	ErrMissingReceivedReading = errors.New("received odometer reading is required")

	// ErrMissingPickupReading is returned when a delivery reading is
	// appended before a pickup reading exists.
	ErrMissingPickupReading = errors.New("pickup odometer reading is required before delivery")

	// ErrDuplicateReadingStage is returned when a reading already exists
	// for the given stage.
	ErrDuplicateReadingStage = errors.New("odometer reading already recorded for stage")

	// ErrPickupBeforeReceived is returned when a pickup reading is less
	// than the received reading.
	ErrPickupBeforeReceived = errors.New("pickup reading cannot be less than received reading")

	// ErrDeliveryBeforePickup is returned when a delivery reading is less
	// than the pickup reading.
	ErrDeliveryBeforePickup = errors.New("delivery reading cannot be less than pickup reading")

	// ErrNegativeReading is returned when an odometer reading is negative.
	ErrNegativeReading = errors.New("odometer reading cannot be negative")
)
