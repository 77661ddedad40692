// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"slices"
	"sync"

	"github.com/kittenmods/ksatool/pkg/gameversion"

	"github.com/charmbracelet/log"
)

type (
	// Catalog resolves the known version list from its sources at most once.
	Catalog struct {
		sources []Source
		logger  *log.Logger
		known   func() []gameversion.Version
	}

	// Option configures a Catalog.
	Option func(*Catalog)
)

// WithLogger attaches a logger used to trace which source served the list.
func WithLogger(logger *log.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// New creates a Catalog that consults sources in order on first use.
func New(sources []Source, opts ...Option) *Catalog {
	c := &Catalog{sources: slices.Clone(sources)}
	for _, opt := range opts {
		opt(c)
	}
	c.known = sync.OnceValue(c.load)
	return c
}

// KnownVersions returns every known build in source document order. The list
// is loaded on the first call, even under concurrent callers, and reused
// afterwards. The result is never nil; callers receive their own copy.
func (c *Catalog) KnownVersions() []gameversion.Version {
	return slices.Clone(c.known())
}

// load returns the parsed content of the first present source. Content that
// does not parse yields an empty list; it does not fall through to later
// sources, because the present source is authoritative.
func (c *Catalog) load() []gameversion.Version {
	for _, src := range c.sources {
		data, ok := src.Read()
		if !ok {
			c.debug("catalog source absent", "source", src)
			continue
		}

		versions, ok := ParseVersionList(data)
		if !ok {
			c.debug("catalog source unparseable", "source", src)
			return []gameversion.Version{}
		}

		c.debug("catalog loaded", "source", src, "versions", len(versions))
		if versions == nil {
			return []gameversion.Version{}
		}
		return versions
	}

	c.debug("no catalog source present")
	return []gameversion.Version{}
}

func (c *Catalog) debug(msg string, keyvals ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, keyvals...)
	}
}
