package mutex

const defaultName = "default"

// Option configures a Mutex
type Option func(*Mutex)

// WithName sets the name used in log lines and metric labels
func WithName(name string) Option {
	return func(m *Mutex) {
		if name != "" {
			m.name = name
		}
	}
}

// WithHoldCount makes releases balance acquisitions: the lock is only freed
// once the owner has called Release as often as it acquired the lock.
func WithHoldCount() Option {
	return func(m *Mutex) {
		m.counting = true
	}
}
