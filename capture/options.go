package capture

import (
	"path"

	"github.com/mwantia/snapshot/log"
)

type Options struct {
	Logger         *log.Logger
	FollowSymlinks bool
	Ignore         []string
	HashBufferSize int
}

type Option func(*Options) error

func newDefaultOptions() *Options {
	return &Options{
		Logger:         log.NewNop(),
		FollowSymlinks: false,
		HashBufferSize: 64 * 1024,
	}
}

// WithLogger sets the logger used to report skipped and unreadable entries.
func WithLogger(logger *log.Logger) Option {
	return func(o *Options) error {
		if logger != nil {
			o.Logger = logger
		}
		return nil
	}
}

// WithFollowSymlinks resolves symbolic links instead of recording them as unavailable.
func WithFollowSymlinks() Option {
	return func(o *Options) error {
		o.FollowSymlinks = true
		return nil
	}
}

// WithIgnore excludes entries whose base name matches any of the patterns.
func WithIgnore(patterns ...string) Option {
	return func(o *Options) error {
		for _, pattern := range patterns {
			if _, err := path.Match(pattern, ""); err != nil {
				return err
			}
		}

		o.Ignore = append(o.Ignore, patterns...)
		return nil
	}
}

// WithHashBufferSize sets the read buffer used while hashing file content.
func WithHashBufferSize(size int) Option {
	return func(o *Options) error {
		if size > 0 {
			o.HashBufferSize = size
		}
		return nil
	}
}
