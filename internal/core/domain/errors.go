package domain

import "errors"

// Input / credential errors.
var ErrInvalidInput = errors.New("invalid input")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")

// Token / identity errors.
var ErrInvalidToken = errors.New("invalid or expired token")
var ErrMissingSubject = errors.New("token payload missing subject")
var ErrInvalidPurpose = errors.New("invalid token purpose")

// Upload / filter-construction errors.
var ErrUnsupportedType = errors.New("file type not allowed")
var ErrTooLarge = errors.New("file too large")
var ErrSuspiciousType = errors.New("suspicious file type")
var ErrNoValidFields = errors.New("no valid fields")
var ErrInvalidFilterValue = errors.New("invalid filter value")
var ErrInvalidID = errors.New("invalid id format")

// Content errors.
var ErrQuestionNotFound = errors.New("question not found")
var ErrDiscussionNotFound = errors.New("discussion not found")
var ErrSuspiciousContent = errors.New("content contains suspicious links")
