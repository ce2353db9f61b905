package config

import "errors"

var (
	// ErrEmptyOwner indicates the owner address is missing.
	ErrEmptyOwner = errors.New("config: owner address must not be empty")

	// ErrEmptyProjectAddress indicates the project payout address is missing.
	ErrEmptyProjectAddress = errors.New("config: project address must not be empty")

	// ErrEmptyAsset indicates the asset identifier is missing.
	ErrEmptyAsset = errors.New("config: asset identifier must not be empty")

	// ErrNegativeClaimDelay indicates a negative claim delay window.
	ErrNegativeClaimDelay = errors.New("config: claim delay must not be negative")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")
)
