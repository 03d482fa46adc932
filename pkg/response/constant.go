package response

// Shared response constants.
const (
	MessageSuccess      = "success"
	DefaultErrorMessage = "internal server error"

	InternalServerErrorCode = 500
)

// Wire formats for Date and DateTime values.
const (
	DateFormat     = "02.01.2006"
	DateTimeFormat = "02.01.2006 15:04"
)
