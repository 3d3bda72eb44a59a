package panorama

import "errors"

var (
	// ErrInvalidUpload signals a rejected upload: blank name or a content
	// type that is not an image.
	ErrInvalidUpload = errors.New("invalid upload")
	// ErrFileTooLarge signals that the upload exceeds the configured limit.
	ErrFileTooLarge = errors.New("file too large")
	// ErrDecodeFailed signals that the uploaded bytes could not be decoded
	// as an image during thumbnail derivation.
	ErrDecodeFailed = errors.New("image decode failed")
	// ErrPanoramaNotFound signals that no record (or blob) matches.
	ErrPanoramaNotFound = errors.New("panorama not found")
)
