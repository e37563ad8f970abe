package service

import (
	"fmt"

	"github.com/nickatkani/kani-hampers/internal/domain"
)

// The checkout wizard is a linear step sequence with one conditional
// skip: hampers without a photo allowance never visit the upload step.
// Backward navigation is always allowed and never touches cart contents.

// NextStep returns the step that follows the cart's current one, applying
// the zero-photo skip. It does not check guards; see AdvanceWizard.
func NextStep(cart *domain.Cart) domain.Step {
	switch cart.Step {
	case domain.StepSelectHamper:
		if domain.MaxPhotos(cart.HamperID()) == 0 {
			return domain.StepWriteMessage
		}
		return domain.StepUploadPhotos
	case domain.StepUploadPhotos:
		return domain.StepWriteMessage
	case domain.StepWriteMessage:
		return domain.StepPickAddons
	case domain.StepPickAddons:
		return domain.StepReview
	default:
		return cart.Step
	}
}

// PrevStep returns the step before the cart's current one, applying the
// same zero-photo skip in reverse.
func PrevStep(cart *domain.Cart) domain.Step {
	switch cart.Step {
	case domain.StepUploadPhotos:
		return domain.StepSelectHamper
	case domain.StepWriteMessage:
		if domain.MaxPhotos(cart.HamperID()) == 0 {
			return domain.StepSelectHamper
		}
		return domain.StepUploadPhotos
	case domain.StepPickAddons:
		return domain.StepWriteMessage
	case domain.StepReview:
		return domain.StepPickAddons
	default:
		return cart.Step
	}
}

// CanAdvance checks the forward guard for the cart's current step.
func CanAdvance(cart *domain.Cart) error {
	switch cart.Step {
	case domain.StepSelectHamper:
		if cart.Hamper == nil {
			return ErrNoHamperSelected
		}
	case domain.StepUploadPhotos:
		// Once photo uploads apply to a hamper, the quota must be met
		// exactly: partial uploads do not pass, only a zero quota does.
		quota := domain.MaxPhotos(cart.HamperID())
		if quota != 0 && len(cart.Photos) != quota {
			return fmt.Errorf("%w: have %d of %d", ErrPhotoQuotaNotMet, len(cart.Photos), quota)
		}
	case domain.StepWriteMessage, domain.StepPickAddons:
		// message and add-ons are optional
	case domain.StepReview:
		// review is left through checkout submission, not Advance
		return ErrReviewNeedsOrder
	case domain.StepConfirmed:
		return ErrAlreadyConfirmed
	}
	return nil
}

// AdvanceWizard moves the cart one step forward if its guard passes.
func AdvanceWizard(cart *domain.Cart) error {
	if err := CanAdvance(cart); err != nil {
		return err
	}
	cart.Step = NextStep(cart)
	return nil
}

// BackWizard moves the cart one step backward without side effects on
// cart contents. Terminal and initial states stay put.
func BackWizard(cart *domain.Cart) error {
	if cart.Step == domain.StepConfirmed {
		return ErrAlreadyConfirmed
	}
	cart.Step = PrevStep(cart)
	return nil
}
