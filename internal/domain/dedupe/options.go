package dedupe

// defaultWindowSize bounds remembered IDs; one season of heavy scouting
// stays well under this.
const defaultWindowSize = 100_000

// Option applies a configuration option to the deduper.
type Option func(*ringDeduper)

// WithWindowSize sets the number of IDs remembered before the oldest is
// evicted. Zero or negative means unbounded.
func WithWindowSize(size int) Option {
	return func(d *ringDeduper) {
		d.maxSize = size
	}
}
