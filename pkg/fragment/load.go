package fragment

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/implindex/pkg/defaults"
	apperrors "github.com/NVIDIA/implindex/pkg/errors"
	"github.com/NVIDIA/implindex/pkg/serializer"
)

// maxConcurrentLoads bounds LoadAll fan-out.
const maxConcurrentLoads = 8

// LoadOption configures Load and LoadAll.
type LoadOption func(*loadConfig)

type loadConfig struct {
	trait  string
	reader *serializer.HTTPReader
}

// WithTrait sets the trait for sources that do not carry one (scripts and
// documents without a trait field). A trait in the document wins.
func WithTrait(trait string) LoadOption {
	return func(c *loadConfig) {
		c.trait = trait
	}
}

// WithHTTPReader sets the reader used for http(s) sources.
func WithHTTPReader(r *serializer.HTTPReader) LoadOption {
	return func(c *loadConfig) {
		c.reader = r
	}
}

func newLoadConfig(opts []LoadOption) *loadConfig {
	c := &loadConfig{}
	for _, opt := range opts {
		opt(c)
	}
	if c.reader == nil {
		c.reader = serializer.NewHTTPReader(serializer.WithTimeout(defaults.FragmentFetchTimeout))
	}
	return c
}

// Load reads one fragment. source is a local path or an http(s) URL; the
// extension selects the format (.js for generated scripts, .json, .yaml, .yml).
func Load(ctx context.Context, source string, opts ...LoadOption) (*Fragment, error) {
	return load(ctx, source, newLoadConfig(opts))
}

// LoadAll reads sources concurrently. The result has the order of sources.
func LoadAll(ctx context.Context, sources []string, opts ...LoadOption) ([]*Fragment, error) {
	cfg := newLoadConfig(opts)

	ctx, cancel := context.WithTimeout(ctx, defaults.FragmentLoadTimeout)
	defer cancel()

	out := make([]*Fragment, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)

	for i, src := range sources {
		g.Go(func() error {
			f, err := load(gctx, src, cfg)
			if err != nil {
				return err
			}
			out[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func load(ctx context.Context, source string, cfg *loadConfig) (*Fragment, error) {
	if strings.TrimSpace(source) == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "fragment source is empty")
	}

	data, name, err := read(ctx, source, cfg)
	if err != nil {
		return nil, err
	}

	var f *Fragment
	if strings.HasSuffix(strings.ToLower(name), scriptExt) {
		trait := cfg.trait
		if trait == "" {
			if trait, err = TraitFromPath(name); err != nil {
				return nil, err
			}
		}
		if f, err = ParseScript(trait, data); err != nil {
			return nil, err
		}
	} else {
		if f, err = serializer.FromBytes[Fragment](serializer.FormatFromPath(name), data); err != nil {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
				"failed to decode fragment", err, map[string]any{"source": source})
		}
		if f.Trait == "" {
			f.Trait = cfg.trait
		}
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}

	slog.Debug("fragment loaded", "source", source, "trait", f.Trait,
		"modules", len(f.Implementors), "records", f.Implementors.Len())
	return f, nil
}

// read returns the raw bytes and the path used for format detection.
func read(ctx context.Context, source string, cfg *loadConfig) ([]byte, string, error) {
	if isRemote(source) {
		u, err := url.Parse(source)
		if err != nil {
			return nil, "", apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid fragment url", err)
		}
		data, err := cfg.reader.Read(ctx, source)
		if err != nil {
			return nil, "", apperrors.WrapWithContext(apperrors.ErrCodeUnavailable,
				"failed to fetch fragment", err, map[string]any{"source": source})
		}
		return data, u.Path, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		code := apperrors.ErrCodeInternal
		if errors.Is(err, fs.ErrNotExist) {
			code = apperrors.ErrCodeNotFound
		}
		return nil, "", apperrors.WrapWithContext(code, "failed to read fragment", err,
			map[string]any{"source": source})
	}
	return data, source, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
