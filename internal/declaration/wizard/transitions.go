package wizard

import (
	"context"

	"travelgate/internal/declaration/models"
)

// transition describes leaving one data-entry step. advanceOnRemoteFailure
// decides what a business-level rejection from the collaborator does: true
// advances with a warning, false blocks. Transport failures always block.
type transition struct {
	from, to               models.Step
	validate               func(*models.DeclarationForm) error
	submit                 func(ctx context.Context, m *Machine, f *models.DeclarationForm) error
	advanceOnRemoteFailure bool
	failureMessage         string
}

var transitions = map[models.Step]transition{
	models.StepPassengerInfo: {
		from:                   models.StepPassengerInfo,
		to:                     models.StepTravelInfo,
		validate:               (*models.DeclarationForm).ValidatePassengerStep,
		submit:                 submitPassenger,
		advanceOnRemoteFailure: true,
		failureMessage:         "could not save passenger details, please try again",
	},
	models.StepTravelInfo: {
		from:                   models.StepTravelInfo,
		to:                     models.StepDeclarations,
		validate:               (*models.DeclarationForm).ValidateTravelStep,
		submit:                 submitTravel,
		advanceOnRemoteFailure: true,
		failureMessage:         "could not save travel details, please try again",
	},
	models.StepDeclarations: {
		from:                   models.StepDeclarations,
		to:                     models.StepTaxComputation,
		validate:               (*models.DeclarationForm).ValidateDeclarationsStep,
		submit:                 submitItems,
		advanceOnRemoteFailure: false,
		failureMessage:         "could not compute your tax assessment, please try again",
	},
}

func submitPassenger(ctx context.Context, m *Machine, f *models.DeclarationForm) error {
	return m.api.SubmitPassengerInfo(ctx, f.PassengerSubmission())
}

func submitTravel(ctx context.Context, m *Machine, f *models.DeclarationForm) error {
	return m.api.SubmitTravelInfo(ctx, f.TravelSubmission())
}

// submitItems sends the flattened items when there is anything to declare.
// With nothing to submit, stale assessments from an earlier pass are cleared.
func submitItems(ctx context.Context, m *Machine, f *models.DeclarationForm) error {
	payload, ok := f.ItemsSubmission()
	if !ok {
		f.ReplaceAssessments(nil)
		return nil
	}
	lines, err := m.api.SubmitItems(ctx, payload)
	if err != nil {
		return err
	}
	if lines != nil {
		f.ReplaceAssessments(lines)
	}
	return nil
}
