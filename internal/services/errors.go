package services

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("missing or malformed field")
	ErrNoOpenPeriod      = errors.New("no open fiscal period for date")
	ErrInvalidLine       = errors.New("line must carry exactly one of debit or credit")
	ErrEmptyEntry        = errors.New("entry has no lines")
	ErrUnbalanced        = errors.New("entry debits and credits differ")
	ErrInvalidState      = errors.New("operation not allowed in current state")
	ErrReconciledLines   = errors.New("entry has reconciled lines")
	ErrAlreadyReconciled = errors.New("line is already reconciled")
	ErrAccountMismatch   = errors.New("lines reference different accounts")
	ErrNotReconcilable   = errors.New("account is not reconcilable")
	ErrImbalancedGroup   = errors.New("reconciliation group is not balanced")
	ErrAssetClosed       = errors.New("asset is closed or sold")
)
