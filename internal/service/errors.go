package service

import "errors"

var (
	ErrUnknownHamper    = errors.New("unknown hamper option")
	ErrNoHamperSelected = errors.New("no hamper selected")
	ErrPhotoQuotaNotMet = errors.New("photo quota not met for this hamper")
	ErrAlreadyConfirmed = errors.New("checkout already confirmed")
	ErrNotAtReview      = errors.New("checkout is not at the review step")
	ErrReviewNeedsOrder = errors.New("review step completes through order submission")
	ErrUnknownLineKind  = errors.New("unknown line kind")
	ErrInvalidStatus    = errors.New("invalid order status")

	// ErrOrderFinalized rejects status changes on delivered or cancelled
	// orders.
	ErrOrderFinalized = errors.New("order status is final")

	// ErrSubmissionFailed wraps storage failures during order submission.
	// The cart is preserved and the caller may retry.
	ErrSubmissionFailed = errors.New("order submission failed")

	// ErrPaymentFailed carries the payment collaborator's refusal verbatim.
	ErrPaymentFailed = errors.New("payment failed")

	// ErrUploadFailed marks a photo upload that did not reach the image
	// store; the local placeholder stays in the cart.
	ErrUploadFailed = errors.New("photo upload failed")
)
