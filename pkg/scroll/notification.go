package scroll

// Notification is emitted by a Position as its state changes. Consumers
// type-switch on the concrete notification types.
type Notification interface {
	// NotificationMetrics returns the position's metrics at emission time.
	NotificationMetrics() Metrics
}

// StartNotification marks the transition from rest to scrolling.
type StartNotification struct {
	Metrics Metrics
}

// NotificationMetrics implements Notification.
func (n StartNotification) NotificationMetrics() Metrics { return n.Metrics }

// UpdateNotification is emitted on every pixel mutation.
type UpdateNotification struct {
	Metrics Metrics
	// Delta is the applied change in pixels.
	Delta float64
}

// NotificationMetrics implements Notification.
func (n UpdateNotification) NotificationMetrics() Metrics { return n.Metrics }

// OverscrollNotification is emitted when part of a requested update could
// not be applied because it lies outside the content range.
type OverscrollNotification struct {
	Metrics Metrics
	// Overscroll is the unapplied excess, signed like the request.
	Overscroll float64
	// Velocity is the velocity of the activity that caused the excess.
	Velocity float64
}

// NotificationMetrics implements Notification.
func (n OverscrollNotification) NotificationMetrics() Metrics { return n.Metrics }

// EndNotification marks the transition from scrolling back to rest.
type EndNotification struct {
	Metrics Metrics
}

// NotificationMetrics implements Notification.
func (n EndNotification) NotificationMetrics() Metrics { return n.Metrics }

// DirectionNotification is emitted when the user's scroll direction
// changes, including back to idle.
type DirectionNotification struct {
	Metrics   Metrics
	Direction Direction
}

// NotificationMetrics implements Notification.
func (n DirectionNotification) NotificationMetrics() Metrics { return n.Metrics }
