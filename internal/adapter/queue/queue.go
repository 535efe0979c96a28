package queue

// MessageQueue publishes engine events (session closes) to whatever wants
// them: receipt printers, analytics, a back office.
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}

// Noop drops everything. Used when no broker is configured, which is the
// normal single-kiosk deployment.
type Noop struct{}

func (Noop) Publish(subject string, data []byte) error { return nil }

func (Noop) Subscribe(subject string, handler func(data []byte) error) error { return nil }

func (Noop) Close() error { return nil }
