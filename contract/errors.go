package contract

import "errors"

var (
	// ErrNotInitialized indicates the contract singleton has not been
	// created in the store.
	ErrNotInitialized = errors.New("contract: not initialized")

	// ErrNotFound indicates no record exists for the given handle.
	ErrNotFound = errors.New("contract: record not found")

	// ErrNilDependency indicates a required collaborator was not supplied.
	ErrNilDependency = errors.New("contract: store, assets, and handles are required")

	// ErrAlreadyPaused indicates a pause of an already paused contract.
	ErrAlreadyPaused = errors.New("contract: already paused")

	// ErrNotPaused indicates an unpause of a contract that is not paused.
	ErrNotPaused = errors.New("contract: not paused")

	// ErrTransferFailed wraps an asset transfer failure reported by the
	// external collaborator.
	ErrTransferFailed = errors.New("contract: asset transfer failed")
)
