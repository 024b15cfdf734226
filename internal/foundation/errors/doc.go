// Package errors provides classified error primitives used across docgallery.
//
// A ClassifiedError carries a category (config, directive, gallery, ...),
// a severity and structured context. Errors are created through the fluent
// ErrorBuilder:
//
//	err := errors.GalleryError("duplicate example").
//		WithContext("doc", docName).
//		WithCause(dupErr).
//		Build()
//
// The CLI adapter maps categories to process exit codes.
package errors
