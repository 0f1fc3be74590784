package services

import "errors"

var (
	ErrInvalidImport   = errors.New("invalid import data")
	ErrUnknownPlanType = errors.New("unknown plan type")
	ErrPlanNotFound    = errors.New("plan not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrWorkNotFound    = errors.New("completed work not found")
)
