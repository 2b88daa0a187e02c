package domain

import "context"

// NotificationService defines the interface for notification services
type NotificationService interface {
	// SendChange reports an administrative change to the record set
	SendChange(ctx context.Context, change ImageChange) error
}

// ChangeAction is the kind of administrative write
type ChangeAction string

const (
	ChangeAdded   ChangeAction = "added"
	ChangeUpdated ChangeAction = "updated"
	ChangeDeleted ChangeAction = "deleted"
	ChangeToggled ChangeAction = "toggled"
)

// ImageChange describes one administrative write
type ImageChange struct {
	Action ChangeAction
	ID     int64
	// Image is the record after the write, nil for deletes
	Image *SeasonalImage
}
