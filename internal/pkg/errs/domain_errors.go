package errs

import "errors"

// Sentinel errors shared by the command and query sides.
var (
	// Lookup errors
	ErrRestaurantNotFound  = errors.New("restaurant not found")
	ErrReservationNotFound = errors.New("reservation not found")

	// Booking errors
	ErrNoCapacity           = errors.New("no tables available")
	ErrDuplicateReservation = errors.New("duplicate reservation")
	ErrStoreContention      = errors.New("store contention")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Access errors
	ErrForbidden = errors.New("forbidden")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
