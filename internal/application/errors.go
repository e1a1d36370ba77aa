package application

import "errors"

var (
	ErrMissingFilter      = errors.New("missing filters for classes search")
	ErrInvalidWeekDay     = errors.New("week_day must be an integer between 0 and 6")
	ErrStoreFailure       = errors.New("store failure")
	ErrTransactionAborted = errors.New("class enrollment aborted")

	ErrStorageDisabled  = errors.New("avatar storage is not configured")
	ErrUnsupportedImage = errors.New("avatar must be a png, jpeg, gif or webp image")
	ErrImageTooLarge    = errors.New("avatar exceeds the maximum size")
)
