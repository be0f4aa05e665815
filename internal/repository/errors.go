// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// string matching: for example, ErrCategoryNotFound maps to an HTTP 404
// while ErrEmailExists maps to a 409.
package repository

import "errors"

// ErrEmailExists is returned by UserRepo.Create when the email address
// is already registered.
var ErrEmailExists = errors.New("email already exists")

// ErrCategoryExists is returned by CategoryRepo.Create when the user
// already has a category with the same name.
var ErrCategoryExists = errors.New("category already exists")

// ErrCategoryNotFound is returned when a category does not exist or does
// not belong to the requesting user.
var ErrCategoryNotFound = errors.New("category not found")

// ErrFlashcardNotFound is returned when a flashcard does not exist or
// does not belong to the requesting user.
var ErrFlashcardNotFound = errors.New("flashcard not found")

// ErrScheduleNotFound is returned when no review schedule row exists for
// a (user, flashcard) pair. Callers on the review path lazily create a
// default record instead of surfacing this to the client.
var ErrScheduleNotFound = errors.New("review schedule not found")
