package raceid

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/raceid/internal/clock"
	"github.com/viant/raceid/internal/idgen"
	"github.com/viant/raceid/model"
	"github.com/viant/raceid/service/diff"
	"github.com/viant/raceid/service/storage"
	"github.com/viant/raceid/tracing"
)

// Service assigns identifiers to the records of a race document.
type Service struct {
	config  *Config
	fs      afs.Service
	storage *storage.Service
	writer  io.Writer
}

// Config returns the run configuration
func (s *Service) Config() *Config {
	return s.config
}

// Transform loads the input document, assigns a new identifier to every
// record under the configured key and writes the whole document to the
// output once. Nothing is written when any earlier step fails. In preview
// mode the output is not written and the result carries a diff instead.
func (s *Service) Transform(ctx context.Context) (result *Result, err error) {
	if err = s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	ctx, span := tracing.Start(ctx, tracing.PhaseTransform)
	defer func() { span.End(err) }()
	span.Locations(s.config.Input, s.config.Output, s.config.Key)

	started := clock.Now()
	source, doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	result = &Result{
		Input:   s.config.Input,
		Output:  s.config.Output,
		Keys:    doc.Keys(),
		Preview: s.config.Preview,
	}
	if err = s.assign(ctx, doc, result); err != nil {
		return nil, err
	}
	encoded, err := doc.Encode(strings.Repeat(" ", s.config.Indent))
	if err != nil {
		return nil, err
	}
	if s.config.Preview {
		err = s.preview(ctx, source, encoded, result)
	} else {
		err = s.persist(ctx, encoded)
	}
	if err != nil {
		return nil, err
	}
	result.Elapsed = clock.Since(started)
	span.Records(result.Records, result.Replaced)
	fmt.Fprintln(s.writer, result.Message(s.config.Count))
	return result, nil
}

func (s *Service) load(ctx context.Context) (source []byte, doc *model.Document, err error) {
	ctx, span := tracing.Start(ctx, tracing.PhaseLoad)
	defer func() { span.End(err) }()
	if source, err = s.storage.Download(ctx, s.config.Input); err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", s.config.Input, err)
	}
	if doc, err = model.DecodeDocument(source); err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s: %w", s.config.Input, err)
	}
	return source, doc, nil
}

func (s *Service) assign(ctx context.Context, doc *model.Document, result *Result) (err error) {
	_, span := tracing.Start(ctx, tracing.PhaseAssign)
	defer func() { span.End(err) }()
	records, err := doc.Records(s.config.Key, s.config.IDField)
	if err != nil {
		return fmt.Errorf("failed to resolve records in %s: %w", s.config.Input, err)
	}
	result.IDs = make([]string, 0, len(records))
	for _, record := range records {
		previous, _ := record.Previous()
		id := idgen.New()
		if record.AssignID(id) {
			result.Replaced++
			if text, ok := previous.(string); !ok || !idgen.Valid(text) {
				result.Invalid++
			}
		}
		result.IDs = append(result.IDs, id)
	}
	result.Records = len(records)
	span.Records(result.Records, result.Replaced)
	doc.SetRecords(s.config.Key, records)
	return nil
}

func (s *Service) persist(ctx context.Context, encoded []byte) (err error) {
	ctx, span := tracing.Start(ctx, tracing.PhasePersist)
	defer func() { span.End(err) }()
	span.Size(len(encoded))
	return s.storage.Upload(ctx, s.config.Output, encoded)
}

func (s *Service) preview(ctx context.Context, source, encoded []byte, result *Result) (err error) {
	_, span := tracing.Start(ctx, tracing.PhasePreview)
	defer func() { span.End(err) }()
	span.Size(len(encoded))
	result.Diff, result.DiffStats, err = diff.Generate(source, encoded, s.config.Input, s.config.Output, s.config.DiffContext)
	return err
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.writer == nil {
		s.writer = os.Stdout
	}
	s.storage = storage.New(s.fs)
}

// New creates a Service
func New(options ...Option) *Service {
	ret := &Service{}
	ret.init(options)
	return ret
}
