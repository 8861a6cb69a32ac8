package dedupe

// defaultMaxSize bounds the cache at roughly one event's worth of
// submissions with plenty of headroom.
const defaultMaxSize = 50000

// Option applies a configuration option to the deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize bounds the number of tracked ids. Zero or negative disables
// the bound entirely.
func WithMaxSize(size int) Option {
	return func(d *inMemoryDeduper) {
		d.maxSize = size
	}
}
