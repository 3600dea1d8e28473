package viewmodels

import (
	"html/template"

	"bramble/internal/models"
)

// PageData is a unified struct to hold all possible data for any template.
type PageData struct {
	LoggedInUser string
	Page         models.Page
	Content      template.HTML

	// Form state for login and signup re-renders.
	Error      string
	ErrorField string
	Username   string
	Email      string
}
