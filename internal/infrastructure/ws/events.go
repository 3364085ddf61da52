package ws

const (
	Subscribed   = "slots.subscribed"
	SlotsChanged = "slots.changed"
)
