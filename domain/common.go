package domain

import (
	"errors"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedParseParam     = "invalid path parameter"

	ErrParseUUID   = errors.New("failed to parse UUID")
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

const DateLayout = "2006-01-02"
