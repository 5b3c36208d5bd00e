package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")
var ErrTooManyAttempts = errors.New("too many login attempts")
var ErrInvalidID = errors.New("invalid id")
var ErrValidation = errors.New("validation failed")

var ErrAccountNotFound = errors.New("account not found")
var ErrEmailTaken = errors.New("email already in use")
var ErrEmployeeNotFound = errors.New("employee not found")
var ErrProductNotFound = errors.New("product not found")
var ErrTransactionNotFound = errors.New("transaction not found")
var ErrAbsenceNotFound = errors.New("absence not found")
