package eventwizard

import (
	"github.com/gatherly/organizer/internal/api"
	"github.com/gatherly/organizer/internal/event"
)

// PatchMsg carries a field editor's draft update to the wizard, which
// merges it through the flow controller.
type PatchMsg struct {
	Patch event.Patch
}

// CategoriesLoadedMsg delivers the fetched category list.
type CategoriesLoadedMsg struct {
	Categories []api.Category
}

// CategoriesErrorMsg reports a failed category fetch.
type CategoriesErrorMsg struct {
	Err error
}

// PlacesFoundMsg delivers geocoder matches for a location query.
type PlacesFoundMsg struct {
	Query  string
	Places []api.Place
}

// PlaceLookupErrMsg reports a failed geocoder lookup.
type PlaceLookupErrMsg struct {
	Err error
}

// DescriptionEditedMsg carries text back from the external editor.
type DescriptionEditedMsg struct {
	Text string
	Err  error
}

// SubmitFinishedMsg reports a successful submission.
type SubmitFinishedMsg struct {
	ID string
}

// SubmitErrorMsg reports a failed submission. The draft is untouched;
// the wizard offers a retry.
type SubmitErrorMsg struct {
	Err error
}

// RetrySubmitMsg triggers a resend of the unchanged draft.
type RetrySubmitMsg struct{}

// ReceiptWrittenMsg reports where the local receipt landed, if
// anywhere.
type ReceiptWrittenMsg struct {
	Path string
	Err  error
}
