package chunker

import (
	"github.com/google/uuid"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// Processor turns extracted item text into domain chunks.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in tokens.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithOverlap sets the overlap between chunks in tokens.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// New creates a chunker processor with the given options.
// Returns ErrInvalidInput if the overlap is not smaller than the chunk size.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	if err := Validate(p.chunkSize, p.overlap); err != nil {
		return nil, err
	}
	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the configured window length.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the configured overlap.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Process chunks the text of one item. Every chunk is tagged with the
// item's display name and the root it was ingested under.
// Empty or whitespace-only text produces no chunks.
func (p *Processor) Process(root string, item domain.Item, text string) []domain.Chunk {
	// Options were validated in New, so Windows cannot fail here.
	seq, _ := Windows(text, p.chunkSize, p.overlap)

	var chunks []domain.Chunk
	for w := range seq {
		chunks = append(chunks, domain.Chunk{
			ID:       uuid.New().String(),
			Text:     w,
			Source:   item.Name,
			Root:     root,
			ItemID:   item.ID,
			Position: len(chunks),
		})
	}
	return chunks
}
