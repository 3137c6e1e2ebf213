package pubsub

// Pack is the unit carried by the message bus: an opaque payload with a
// routing key.
type Pack struct {
	Key []byte
	Msg []byte
}
