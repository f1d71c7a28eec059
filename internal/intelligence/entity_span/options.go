package entity_span

// Option configures an extraction call.
type Option func(*extractOptions)

type extractOptions struct {
	precedence Precedence
	predicate  TagPredicate
}

func defaultExtractOptions() extractOptions {
	return extractOptions{
		precedence: KeepLast,
		predicate:  FirstRunePrefix,
	}
}

func applyOptions(opts []Option) extractOptions {
	o := defaultExtractOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithPrecedence sets the collision policy for entities landing on the same
// offset.  The default is KeepLast.
func WithPrecedence(p Precedence) Option {
	return func(o *extractOptions) { o.precedence = p }
}

// WithPredicate replaces the tag predicate used by ExtractSemanticEntities.
// A nil predicate keeps the default.
func WithPredicate(pred TagPredicate) Option {
	return func(o *extractOptions) {
		if pred != nil {
			o.predicate = pred
		}
	}
}
