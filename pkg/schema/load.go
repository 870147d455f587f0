package schema

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

type loadOptions struct {
	fs        fs.FS
	component string
}

// Option customises Load.
type Option func(*loadOptions)

// WithFS sets the filesystem SourceFromFS entries are read from.
func WithFS(fsys fs.FS) Option {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithComponent selects the component schema of an OpenAPI document.
func WithComponent(name string) Option {
	return func(o *loadOptions) {
		o.component = name
	}
}

// Load reads src and decodes it. OpenAPI documents are detected by their
// top-level openapi key; anything else is parsed as a bare schema.
func Load(ctx context.Context, src Source, opts ...Option) (*Schema, error) {
	options := loadOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	doc, err := read(ctx, src, options)
	if err != nil {
		return nil, err
	}
	return Decode(ctx, doc, opts...)
}

// LoadFile is Load for a path on disk.
func LoadFile(ctx context.Context, path string, opts ...Option) (*Schema, error) {
	return Load(ctx, SourceFromFile(path), opts...)
}

// Decode converts an already read document.
func Decode(ctx context.Context, doc Document, opts ...Option) (*Schema, error) {
	options := loadOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	raw := doc.Raw()
	var (
		out *Schema
		err error
	)
	if IsOpenAPI(raw) {
		out, err = FromOpenAPI(ctx, raw, options.component)
	} else {
		out, err = Parse(raw)
	}
	if err != nil {
		if location := doc.Location(); location != "" {
			return nil, fmt.Errorf("schema: %s: %w", location, err)
		}
		return nil, err
	}
	return out, nil
}

func read(ctx context.Context, src Source, options loadOptions) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if options.fs == nil {
			return Document{}, errors.New("schema: fs source requires WithFS")
		}
		data, err = fs.ReadFile(options.fs, src.Location())
	default:
		err = fmt.Errorf("schema: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return Document{}, fmt.Errorf("schema: read %s: %w", src.Location(), err)
	}
	return NewDocument(src, data)
}
