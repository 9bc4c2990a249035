package model

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("no purchase found")
	ErrDuplicateReference = errors.New("duplicate payment reference")
	ErrInvalidVideo       = errors.New("invalid video")
	ErrMissingEmail       = errors.New("email required")
	ErrGateway            = errors.New("payment gateway error")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrForbiddenDomain    = errors.New("email domain not allowed")
	ErrInvalidInput       = errors.New("invalid input")
)
