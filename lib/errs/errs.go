package errs

import "errors"

var ErrUnknownPair = errors.New("unknown trading pair")

var ErrPriceUnavailable = errors.New("price unavailable")

var ErrInvalidOrder = errors.New("invalid order")
