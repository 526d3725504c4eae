package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driving"
	"github.com/custodia-labs/grokpedia/internal/logger"
	"github.com/custodia-labs/grokpedia/internal/postprocessors/chunker"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// Skip reasons recorded in IngestSummary.Skips.
const (
	SkipCycle       = "cycle"
	SkipUnsupported = "unsupported type"
	SkipUnreadable  = "unreadable content"
	SkipEmpty       = "no text"
)

var errEmptyText = errors.New("no text extracted")

// indexWriter commits a mutation to the index.
type indexWriter interface {
	Apply(ctx context.Context, mutate func(ix *domain.Index)) error
}

// itemResult is the outcome of reading one leaf.
type itemResult struct {
	item   domain.Item
	chunks []domain.Chunk
	err    error
}

// IngestService walks a document store and adds its text to the index.
type IngestService struct {
	factory    driven.ConnectorFactory
	extractors driven.ExtractorRegistry
	index      indexWriter
	chunking   domain.ChunkerSettings
	now        func() time.Time
}

// NewIngestService creates an ingest service.
// chunking supplies the window size when IngestOptions.ChunkSize is zero
// and the overlap when IngestOptions.Overlap is nil.
func NewIngestService(
	factory driven.ConnectorFactory,
	extractors driven.ExtractorRegistry,
	index indexWriter,
	chunking domain.ChunkerSettings,
) *IngestService {
	return &IngestService{
		factory:    factory,
		extractors: extractors,
		index:      index,
		chunking:   chunking,
		now:        time.Now,
	}
}

// Ingest walks root breadth-first and chunks every readable leaf.
//
// Containers are visited at most once. Per-item failures become skip
// records and never stop the walk; only a failure to list the root
// container or a cancelled context is returned. Nothing is committed to
// the index unless the walk completes.
func (s *IngestService) Ingest(ctx context.Context, root string, opts domain.IngestOptions) (*domain.IngestSummary, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("%w: empty root", domain.ErrInvalidInput)
	}

	proc, err := s.processor(opts)
	if err != nil {
		return nil, err
	}

	conn, err := s.factory.Open(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", root, err)
	}
	defer conn.Close()

	// Chunks are tagged with the canonical URI so that every spelling of
	// the same root replaces the same entries.
	root = conn.URI()

	start := s.now()
	summary := &domain.IngestSummary{Root: root}
	logger.Section("Ingest")
	logger.Info("Walking %s (%s connector)", root, conn.Type())

	rootID := conn.RootID()
	queue := []string{rootID}
	visited := map[string]struct{}{rootID: {}}
	var chunks []domain.Chunk

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		containerID := queue[0]
		queue = queue[1:]

		children, err := conn.ListChildren(ctx, containerID)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if containerID == rootID {
				return nil, fmt.Errorf("list %s: %w", root, err)
			}
			logger.Warn("Cannot list container %s: %v", containerID, err)
			summary.AddSkip(domain.SkipRecord{ItemID: containerID, Reason: "list failed: " + err.Error(), Err: err})
			continue
		}
		summary.Containers++

		for _, child := range children {
			if child.IsContainer {
				if _, seen := visited[child.ID]; seen {
					logger.Debug("Skipping already visited container %s", child.ID)
					summary.AddSkip(domain.SkipRecord{ItemID: child.ID, Name: child.Name, Reason: SkipCycle})
					continue
				}
				visited[child.ID] = struct{}{}
				queue = append(queue, child.ID)
				continue
			}

			res := s.processItem(ctx, conn, proc, root, child)
			if res.err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				logger.Debug("Skipping %s: %v", child.Name, res.err)
				summary.AddSkip(domain.SkipRecord{
					ItemID:   child.ID,
					Name:     child.Name,
					MIMEType: child.MIMEType,
					Reason:   skipReason(res.err),
					Err:      res.err,
				})
				continue
			}

			summary.Ingested++
			chunks = append(chunks, res.chunks...)
		}
	}

	summary.Chunks = len(chunks)

	if opts.Append {
		if len(chunks) > 0 {
			err = s.index.Apply(ctx, func(ix *domain.Index) { ix.Append(chunks) })
		}
	} else {
		err = s.index.Apply(ctx, func(ix *domain.Index) { summary.Replaced = ix.ReplaceRoot(root, chunks) })
	}
	if err != nil {
		return nil, err
	}

	summary.Duration = s.now().Sub(start)
	logger.Info("Ingested %d items (%d chunks), skipped %d", summary.Ingested, summary.Chunks, summary.Skipped)
	return summary, nil
}

func (s *IngestService) processor(opts domain.IngestOptions) (*chunker.Processor, error) {
	size := opts.ChunkSize
	if size == 0 {
		size = s.chunking.Size
	}
	overlap := s.chunking.Overlap
	if opts.Overlap != nil {
		overlap = *opts.Overlap
	}
	return chunker.New(chunker.WithChunkSize(size), chunker.WithOverlap(overlap))
}

// processItem reads, extracts and chunks one leaf.
func (s *IngestService) processItem(
	ctx context.Context,
	conn driven.Connector,
	proc *chunker.Processor,
	root string,
	item domain.Item,
) itemResult {
	raw, err := conn.Read(ctx, item)
	if err != nil {
		return itemResult{item: item, err: fmt.Errorf("read: %w", err)}
	}

	text, err := s.extractors.Extract(ctx, raw)
	if err != nil {
		return itemResult{item: item, err: err}
	}
	if strings.TrimSpace(text) == "" {
		return itemResult{item: item, err: errEmptyText}
	}

	return itemResult{item: item, chunks: proc.Process(root, item, text)}
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnsupportedType):
		return SkipUnsupported
	case errors.Is(err, domain.ErrUnreadable):
		return SkipUnreadable
	case errors.Is(err, errEmptyText):
		return SkipEmpty
	default:
		return err.Error()
	}
}
