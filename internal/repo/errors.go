package repo

import "errors"

var (
	// ErrClientNotFound is returned when a client is not found in the repository.
	ErrClientNotFound = errors.New("client not found")
	// ErrCategoryNotFound is returned when a category is not found in the repository.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryInUse is returned when deleting a category that products still reference.
	ErrCategoryInUse = errors.New("category has products referencing it")
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")
	// ErrSaleNotFound is returned when a sale is not found in the repository.
	ErrSaleNotFound = errors.New("sale not found")
	// ErrMonthNotFound is returned when a month bucket does not exist.
	ErrMonthNotFound = errors.New("month not found")
	// ErrNoteNotFound is returned when a note is not found in the repository.
	ErrNoteNotFound = errors.New("note not found")
	// ErrPromoNotFound is returned when a promo is not found in the repository.
	ErrPromoNotFound = errors.New("promo not found")
	// ErrUserNotFound is returned when a user is not found in the repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicatedValueUnique is returned on unique constraint violations.
	ErrDuplicatedValueUnique = errors.New("duplicated value in unique column")
	// ErrInvalidQuantityChange is returned when a manual adjustment would
	// leave a product with negative stock.
	ErrInvalidQuantityChange = errors.New("quantity cannot become negative")
)
