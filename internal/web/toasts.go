package web

import (
	"fmt"

	"github.com/boibazaar/boibazaar/internal/flash"
	"github.com/boibazaar/boibazaar/internal/libraryclient"
)

var (
	toastBookAdded    = flash.Success("Book Added!", "The book has been successfully added to the library.")
	toastBookUpdated  = flash.Success("Book Updated!", "The book details have been successfully updated.")
	toastBookDeleted  = flash.Success("Deleted!", "Your book has been deleted.")
	toastDeleteFailed = flash.Error("Error", "Failed to delete book")
	toastBookBorrowed = flash.Success("Book Borrowed", "Your borrow request has been submitted successfully.")
)

// createFailure picks the toast for a rejected create.
func createFailure(err error) flash.Toast {
	apiErr, ok := libraryclient.AsAPIError(err)
	switch {
	case ok && libraryclient.IsValidation(err):
		return flash.Error("Validation Error", apiErr.JoinedMessages("Please check your input fields"))
	case ok && libraryclient.IsDuplicateKey(err):
		return flash.Error("Duplicate Entry", apiErr.JoinedMessages("This book already exists"))
	case ok && apiErr.Message != "":
		return flash.Error("Error", apiErr.Message)
	default:
		return flash.Error("Error", "Failed to add book. Please try again.")
	}
}

// updateFailure picks the toast for a rejected update: field messages, else
// the API message, else a generic line.
func updateFailure(err error) flash.Toast {
	text := "Something went wrong."
	if apiErr, ok := libraryclient.AsAPIError(err); ok {
		fallback := text
		if apiErr.Message != "" {
			fallback = apiErr.Message
		}
		text = apiErr.JoinedMessages(fallback)
	}
	return flash.Error("Update Failed", text)
}

// borrowFailure picks the toast for a failed borrow. A call that never got an
// answer is reported as unexpected.
func borrowFailure(err error) flash.Toast {
	apiErr, ok := libraryclient.AsAPIError(err)
	switch {
	case !ok:
		return flash.Error("Unexpected Error", "An unknown error occurred. Please try again.")
	case libraryclient.IsValidation(err):
		return flash.Error("Validation Failed", apiErr.JoinedMessages(apiErr.Message))
	case apiErr.Message != "":
		return flash.Error("Error", apiErr.Message)
	default:
		return flash.Error("Error", "An error occurred while processing your request")
	}
}

// invalidQuantity is shown when more copies are requested than the book has.
func invalidQuantity(copies int) flash.Toast {
	return flash.Toast{
		Kind:   flash.KindError,
		Title:  "Invalid Quantity",
		Text:   fmt.Sprintf("You cannot borrow more than %d copies of this book.", copies),
		Footer: "Please reduce the quantity and try again.",
	}
}
