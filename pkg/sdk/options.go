package strindex

import (
	"context"
	"time"
)

// Translator turns free text into a raw filter map. Implement this to plug a
// custom natural-language provider into the SDK; the default is a fixed
// rule table.
type Translator interface {
	Translate(ctx context.Context, text string) (map[string]any, error)
}

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	translator Translator
	clock      func() time.Time
}

// WithTranslator sets the natural-language translation provider.
func WithTranslator(t Translator) Option {
	return optionFunc(func(c *clientConfig) {
		c.translator = t
	})
}

// WithClock overrides the insertion timestamp source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return optionFunc(func(c *clientConfig) {
		c.clock = now
	})
}
