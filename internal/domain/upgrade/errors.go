package upgrade

import "errors"

var (
	// ErrInvalidTier rejects upgrade requests for non-paid tiers.
	ErrInvalidTier = errors.New("tier not eligible for upgrade")
	// ErrInvalidModules rejects unknown module selections.
	ErrInvalidModules = errors.New("invalid module selection")
	// ErrUpgradeFailed indicates the backend rejected or dropped the request.
	ErrUpgradeFailed = errors.New("upgrade request failed")
)
