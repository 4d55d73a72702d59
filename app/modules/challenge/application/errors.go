package challengeservice

import "errors"

var (
	// ErrNotFound indicates the challenge does not exist.
	ErrNotFound = errors.New("challenge not found")

	// ErrNoImages indicates a creation request without images.
	ErrNoImages = errors.New("challenge needs at least one image")

	// ErrTooManyImages indicates a creation request above the image cap.
	ErrTooManyImages = errors.New("challenge exceeds the image limit")

	// ErrEmptyAnswer indicates a creation request with a blank answer.
	ErrEmptyAnswer = errors.New("challenge answer must not be blank")
)
