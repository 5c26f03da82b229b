package config

import "errors"

var (
	// ErrInvalidDays indicates a non-positive simulation length.
	ErrInvalidDays = errors.New("days must be a positive integer")
	// ErrInvalidStartDate indicates a start date that is not YYYY-MM-DD.
	ErrInvalidStartDate = errors.New("start_date must be formatted as YYYY-MM-DD")
	// ErrInvalidScale indicates a non-positive volume multiplier.
	ErrInvalidScale = errors.New("scale must be a positive number")
	// ErrInvalidParallelism indicates a worker lane count below one.
	ErrInvalidParallelism = errors.New("parallelism must be at least 1")
)
