package errorz

import "errors"

var ErrErrorWileStartingOTel = errors.New("error while starting OTel")
var ErrErrorWileStoppingOTel = errors.New("error while stopping OTel")
var ErrConfigNotFound = errors.New("config not found")
var ErrInvalidConfig = errors.New("invalid config")
var ErrServerError = errors.New("server error")
var ErrDatabaseError = errors.New("database error")

var ErrDownstreamCall = errors.New("downstream call failed")
