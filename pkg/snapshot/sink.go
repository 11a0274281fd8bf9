package snapshot

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/minivue/internal/errors"
)

// Sink stores rendered documents.
type Sink interface {
	// Write stores doc under name.
	Write(ctx context.Context, name string, doc []byte) error
	// String describes the destination for logs.
	String() string
}

// FileName returns the file or object name used for name.
func FileName(name string) string {
	return name + ".html"
}

// Document wraps body in a minimal HTML page.
func Document(title string, body string) []byte {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title>\n</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("\n</body>\n</html>\n")
	return []byte(b.String())
}

// StreamSink writes documents to a writer, each followed by a newline.
type StreamSink struct {
	w io.Writer
}

// NewStreamSink returns a sink writing to w.
func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{w: w}
}

// Write implements Sink.
func (s *StreamSink) Write(_ context.Context, name string, doc []byte) error {
	if _, err := s.w.Write(doc); err != nil {
		return errors.New("E201").WithDetail(name).Wrap(err)
	}
	if len(doc) == 0 || doc[len(doc)-1] != '\n' {
		if _, err := io.WriteString(s.w, "\n"); err != nil {
			return errors.New("E201").WithDetail(name).Wrap(err)
		}
	}
	return nil
}

// String implements Sink.
func (s *StreamSink) String() string {
	return "stdout"
}

// DirSink writes documents as files in a directory.
type DirSink struct {
	dir string
}

// NewDirSink creates dir if needed and returns a sink writing into it.
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("E201").WithDetail(dir).Wrap(err)
	}
	return &DirSink{dir: dir}, nil
}

// Write implements Sink.
func (s *DirSink) Write(_ context.Context, name string, doc []byte) error {
	path := filepath.Join(s.dir, FileName(name))
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return errors.New("E201").WithDetail(path).Wrap(err)
	}
	return nil
}

// String implements Sink.
func (s *DirSink) String() string {
	return s.dir
}

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	stdout   io.Writer
	s3Client PutObjectAPI
	s3       S3Options
}

// WithStdout sets the writer used for "-". Default: os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(o *openOptions) {
		o.stdout = w
	}
}

// WithS3Client sets the client used for s3:// targets.
func WithS3Client(c PutObjectAPI) Option {
	return func(o *openOptions) {
		o.s3Client = c
	}
}

// WithS3Options sets how the S3 client is built when none is given.
func WithS3Options(opts S3Options) Option {
	return func(o *openOptions) {
		o.s3 = opts
	}
}

// Open returns the sink for target.
func Open(target string, opts ...Option) (Sink, error) {
	o := openOptions{stdout: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case target == "" || target == "-":
		return NewStreamSink(o.stdout), nil

	case strings.HasPrefix(target, "s3://"):
		bucket, prefix, err := ParseS3Target(target)
		if err != nil {
			return nil, err
		}
		client := o.s3Client
		if client == nil {
			client = NewS3Client(o.s3)
		}
		return NewS3Sink(client, bucket, prefix), nil

	case strings.Contains(target, "://"):
		return nil, errors.New("E202").
			WithDetail(fmt.Sprintf("unsupported scheme in %q", target)).
			WithSuggestion("Use -, a directory, or s3://bucket/prefix")

	default:
		return NewDirSink(target)
	}
}
