package xsd

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// A Config holds the settings shared by every Node derived from the
// same document: where diagnostics go, how imported documents are
// loaded, and where the document itself was loaded from. Nodes carry a
// pointer to their Config; it is never modified once a Node uses it.
type Config struct {
	logger   Logger
	loader   Loader
	location string
	// Explicit owning schema. When set, Nodes do not search the
	// tree for their <schema> element.
	schema  *Node
	readers *readerCache
}

// Types implementing the Logger interface receive diagnostics about
// reference resolution, such as imports that could not be loaded.
// The Logger interface is implemented by *logrus.Logger and
// *logrus.Entry.
type Logger interface {
	Debugf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
}

var defaultLogger struct {
	once sync.Once
	log  *logrus.Logger
}

// DefaultLogger returns the process-wide Logger used by Nodes that
// were not configured with the LogOutput option. It logs warnings and
// errors to standard error.
func DefaultLogger() *logrus.Logger {
	defaultLogger.once.Do(func() {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		defaultLogger.log = l
	})
	return defaultLogger.log
}

func (cfg *Config) debugf(format string, v ...interface{}) {
	if cfg.logger != nil {
		cfg.logger.Debugf(format, v...)
	}
}

func (cfg *Config) warnf(format string, v ...interface{}) {
	if cfg.logger != nil {
		cfg.logger.Warnf(format, v...)
	}
}

// An Option is used to customize a Config.
type Option func(*Config) Option

// The Option method is used to configure an existing configuration.
// The return value of the Option method can be used to revert the
// final option to its previous setting.
func (cfg *Config) Option(opts ...Option) (previous Option) {
	for _, opt := range opts {
		previous = opt(cfg)
	}
	return previous
}

// LogOutput specifies the Logger that receives diagnostics. A nil
// Logger silences them.
func LogOutput(l Logger) Option {
	return func(cfg *Config) Option {
		prev := cfg.logger
		cfg.logger = l
		return LogOutput(prev)
	}
}

// WithLoader sets the Loader used to fetch documents named in the
// schemaLocation of <import> declarations.
func WithLoader(l Loader) Option {
	return func(cfg *Config) Option {
		prev := cfg.loader
		cfg.loader = l
		return WithLoader(prev)
	}
}

// Location records where a document was loaded from. Relative
// schemaLocation hints of its imports are resolved against it.
func Location(location string) Option {
	return func(cfg *Config) Option {
		prev := cfg.location
		cfg.location = location
		return Location(prev)
	}
}

// OwningSchema sets the <schema> Node that owns every Node built with
// the Config, so that it does not have to be searched for.
func OwningSchema(schema *Node) Option {
	return func(cfg *Config) Option {
		prev := cfg.schema
		cfg.schema = schema
		return OwningSchema(prev)
	}
}

func newConfig(opts ...Option) *Config {
	cfg := &Config{
		logger: DefaultLogger(),
		loader: DefaultLoader(),
	}
	cfg.Option(opts...)
	if cfg.readers == nil {
		cfg.readers = newReaderCache()
	}
	return cfg
}

// withSchema returns a copy of cfg whose owning schema is s.
func (cfg *Config) withSchema(s *Node) *Config {
	if cfg.schema == s {
		return cfg
	}
	c := *cfg
	c.schema = s
	return &c
}

// forDocument returns a copy of cfg for a document loaded from
// location. The copy shares the cache of loaded documents.
func (cfg *Config) forDocument(location string) *Config {
	c := *cfg
	c.location = location
	c.schema = nil
	return &c
}
