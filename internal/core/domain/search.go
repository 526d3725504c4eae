package domain

// Strategy names the retrieval method that produced a result.
type Strategy string

const (
	// StrategyNone means no strategy ran, e.g. the chunk store was empty.
	StrategyNone Strategy = ""

	// StrategyVector ranks by cosine similarity of embeddings.
	StrategyVector Strategy = "vector"

	// StrategyKeyword ranks by vocabulary overlap.
	StrategyKeyword Strategy = "keyword"

	// StrategySubstring selects chunks containing the query literally.
	StrategySubstring Strategy = "substring"
)

// SearchMode selects which strategy a search uses.
type SearchMode string

// Available search modes.
const (
	// SearchModeAuto runs vector search and falls back to substring matching.
	SearchModeAuto SearchMode = "auto"

	// SearchModeVector runs vector search only.
	SearchModeVector SearchMode = "vector"

	// SearchModeKeyword ranks by keyword overlap only.
	SearchModeKeyword SearchMode = "keyword"

	// SearchModeSubstring runs the substring filter only.
	SearchModeSubstring SearchMode = "substring"
)

// IsValid returns true if the search mode is recognised.
func (m SearchMode) IsValid() bool {
	switch m {
	case SearchModeAuto, SearchModeVector, SearchModeKeyword, SearchModeSubstring:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m SearchMode) String() string {
	return string(m)
}

// AllSearchModes returns all available search modes.
func AllSearchModes() []SearchMode {
	return []SearchMode{
		SearchModeAuto,
		SearchModeVector,
		SearchModeKeyword,
		SearchModeSubstring,
	}
}

// SearchOptions configures a search query.
type SearchOptions struct {
	// Mode selects the strategy. Empty means SearchModeAuto.
	Mode SearchMode

	// TopK is the maximum number of results.
	TopK int
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Chunk is the matched passage.
	Chunk Chunk

	// Score is the relevance score: cosine similarity for vector results,
	// overlap count for keyword results, and 1 for substring matches.
	Score float64

	// Strategy is the method that selected the chunk.
	Strategy Strategy
}

// AssembledContext is the rendered passage block handed to an answer generator.
type AssembledContext struct {
	// Query is the text the context was assembled for.
	Query string

	// Text holds the attributed blocks separated by blank lines.
	Text string

	// Results are the selected chunks in rendering order.
	Results []SearchResult

	// Strategy is the method that produced Results.
	Strategy Strategy
}

// IsEmpty reports whether no passages were selected.
func (c *AssembledContext) IsEmpty() bool {
	return c == nil || len(c.Results) == 0
}

// Answer is a generated response grounded on an assembled context.
type Answer struct {
	// Question is the user question.
	Question string

	// Text is the generated answer.
	Text string

	// Context is the material the answer was generated from.
	Context *AssembledContext
}
