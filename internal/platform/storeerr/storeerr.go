// Copyright (c) 2026 Biblio. All rights reserved.
// Author: dev.marcodallan@gmail.com

// Package storeerr provides a bridge between low-level document-store errors
// and higher-level application errors.
package storeerr

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marcodallan/biblio/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried document doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a store error and wraps it into a meaningful [apperr.AppError].
// It hides driver details from the client while classifying the error type.
//
// The action tag (e.g. "get_book") is preserved in the cause chain for logs.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Missing document mapping
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	// 2. Unique index violations (ISBN, member email)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict("A document with the same unique key already exists")
	}

	// 3. Everything else is a store transport/query failure
	return apperr.StoreError(fmt.Errorf("%s: %w", action, err))
}
