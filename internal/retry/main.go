package retry

import "time"

type stop struct {
	error
}

// Stop wraps err so For gives up immediately and returns err.
func Stop(err error) error {
	return stop{err}
}

// For calls fn until it succeeds or attempts run out, sleeping a fixed
// interval between calls.
func For(attempts int, sleep time.Duration, fn func() error) error {
	if err := fn(); err != nil {
		if s, ok := err.(stop); ok {
			// Return the original error for later checking
			return s.error
		}

		if attempts--; attempts > 0 {
			time.Sleep(sleep)
			return For(attempts, sleep, fn)
		}

		return err
	}

	return nil
}
