package issuance

import "errors"

var (
	ErrInvalidState    = errors.New("Project is not pending approval")
	ErrMintRejected    = errors.New("Mint request was rejected by the ledger")
	ErrMintUnavailable = errors.New("Ledger is unavailable")
)
