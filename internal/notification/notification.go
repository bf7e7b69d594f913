package notification

import "context"

type Type string

const (
	TypeNewRequest   Type = "NEW_REQUEST"
	TypeStatusUpdate Type = "STATUS_UPDATE"
)

func (t Type) Valid() bool {
	switch t {
	case TypeNewRequest, TypeStatusUpdate:
		return true
	default:
		return false
	}
}

// Notification is one message to one phone number.
type Notification struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
	Type        Type   `json:"type"`
}

// Dispatcher hands notifications off without reporting failure to the caller.
// Implementations log what goes wrong and move on.
type Dispatcher interface {
	Dispatch(ctx context.Context, n Notification)
}

type noopDispatcher struct{}

func (noopDispatcher) Dispatch(context.Context, Notification) {}

func NewNoopDispatcher() Dispatcher {
	return noopDispatcher{}
}
