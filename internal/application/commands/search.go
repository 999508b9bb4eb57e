package commands

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"mdvault/internal/application"
	"mdvault/internal/domain"
	"mdvault/internal/ports"
)

// SearchResult wraps domain.IndexNode with a relevance score
type SearchResult struct {
	domain.IndexNode
	Score int
}

// SearchCommand searches entry names with fuzzy matching.
// Candidates come from the index when there is one, otherwise from a scan.
type SearchCommand struct {
	index ports.VaultIndex
	repo  ports.VaultRepository
	Root  string
	Query string
}

// NewSearchCommand creates a new SearchCommand. index may be nil.
func NewSearchCommand(index ports.VaultIndex, repo ports.VaultRepository, root, query string) *SearchCommand {
	return &SearchCommand{
		index: index,
		repo:  repo,
		Root:  root,
		Query: query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(c.Query) < 2 {
		return nil, nil
	}

	nodes, err := c.candidates()
	if err != nil {
		return nil, err
	}

	return FuzzySort(nodes, c.Query), nil
}

func (c *SearchCommand) candidates() ([]domain.IndexNode, error) {
	if c.index != nil {
		nodes, err := c.index.Search(c.Query)
		if err != nil {
			return nil, application.Wrap("search", c.Root, err)
		}
		return nodes, nil
	}

	if err := application.ValidateRequired("root", c.Root); err != nil {
		return nil, err
	}
	tree, err := c.repo.Scan(c.Root, domain.SortNone)
	if err != nil {
		return nil, application.Wrap("search", c.Root, err)
	}

	var nodes []domain.IndexNode
	for _, e := range tree.Flatten()[1:] {
		nodes = append(nodes, *domain.NewIndexNode(e, filepath.Dir(e.Path)))
	}
	return nodes, nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && isSeparator(target[i-1]) {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

func isSeparator(b byte) bool {
	return b == ' ' || b == '.' || b == '-' || b == '_' || b == '/'
}

// FuzzySort sorts nodes by relevance to the query, dropping non-matches.
// The name counts fully, the parent folder name breaks ties.
func FuzzySort(nodes []domain.IndexNode, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(nodes))

	for _, n := range nodes {
		byName := FuzzyScore(n.Name, query)
		byFolder := FuzzyScore(filepath.Base(n.Parent), query) / 2

		best := max(byName, byFolder)
		if best > 0 {
			scored = append(scored, SearchResult{
				IndexNode: n,
				Score:     best,
			})
		}
	}

	// Sort by score descending, then by path for stable output
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Path < scored[j].Path
	})

	return scored
}
