package invoicing

import "invoice-bookkeeping-backend/internal/models"

var (
	NotifyCreated = models.Notification{
		Variant:     models.NotificationSuccess,
		Title:       "Invoice added successfully!",
		Description: "You can view and manage your invoice in the 'My Invoices' section.",
	}
	NotifyCreateFailed = models.Notification{
		Variant:     models.NotificationError,
		Title:       "Failed to add invoice",
		Description: "Something went wrong. Please try again.",
	}
	NotifyUpdated = models.Notification{
		Variant:     models.NotificationSuccess,
		Title:       "Invoice updated successfully",
		Description: "Invoice updated successfully",
	}
	NotifyUpdateFailed = models.Notification{
		Variant:     models.NotificationError,
		Title:       "Error updating invoice",
		Description: "Error updating invoice",
	}
	NotifyDeleted = models.Notification{
		Variant:     models.NotificationSuccess,
		Title:       "Invoice deleted successfully",
		Description: "Invoice deleted successfully",
	}
	NotifyDeleteFailed = models.Notification{
		Variant:     models.NotificationError,
		Title:       "Error deleting invoice",
		Description: "Something went wrong. Please try again.",
	}
	NotifyNothingToDo = models.Notification{
		Variant:     models.NotificationInfo,
		Title:       "Invoice no longer exists",
		Description: "It may have been removed elsewhere. Nothing was changed.",
	}
	NotifyLoadFailed = models.Notification{
		Variant:     models.NotificationError,
		Title:       "Error loading invoices",
		Description: "Something went wrong. Please try again.",
	}
)

// ImportNotification summarises a CSV import.
func ImportNotification(res *ImportResult) models.Notification {
	switch {
	case len(res.Added) == 0:
		return models.Notification{
			Variant:     models.NotificationWarning,
			Title:       "No invoices imported",
			Description: "Every row was skipped.",
		}
	case len(res.Skipped) > 0:
		return models.Notification{
			Variant: models.NotificationWarning,
			Title:   "Invoices imported with warnings",
		}
	default:
		return models.Notification{
			Variant: models.NotificationSuccess,
			Title:   "Invoices imported successfully",
		}
	}
}
