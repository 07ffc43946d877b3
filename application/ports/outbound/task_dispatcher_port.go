package outbound

// TaskDispatcher abstracts the worker pool that pipeline goroutines run on.
// Satisfied by *ants.Pool.
type TaskDispatcher interface {
	Submit(task func()) error
}
