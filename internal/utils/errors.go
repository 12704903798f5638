package utils

import "errors"

// ----------------- storage ------------------
var (
	ErrStorageEmptyHostName       = errors.New("host name is empty")
	ErrStorageInvalidPortNumber   = errors.New("port number is invalid")
	ErrStorageEmptyUsername       = errors.New("username is empty")
	ErrStorageEmptyPassword       = errors.New("password is empty")
	ErrStorageInvalidDatabaseName = errors.New("database name is empty")
	ErrStorageInvalidSslMode      = errors.New("SSL mode is invalid")
	ErrStorageInvalidPoolSize     = errors.New("pool size is invalid")
	ErrStorageInvalidTimeout      = errors.New("timeout is invalid")
)

// ----------------- ownership ------------------
var (
	ErrOwnershipExists   = errors.New("product already has an owner")
	ErrOwnershipNotFound = errors.New("ownership record not found")
	ErrEmptyProductID    = errors.New("product id is empty")
	ErrEmptyVendorID     = errors.New("vendor id is empty")
)

// ----------------- cache ------------------
var (
	ErrCacheMiss = errors.New("cache miss")
)
