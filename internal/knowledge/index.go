package knowledge

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/autostream-agent/server/internal/agent/model"
	errx "github.com/autostream-agent/server/internal/core/error"
	logx "github.com/autostream-agent/server/pkg/logger"
)

//go:embed knowledge_base.json
var knowledgeBaseJSON []byte

type plan struct {
	Name           string   `json:"name"`
	Price          string   `json:"price"`
	Features       []string `json:"features"`
	Limitations    []string `json:"limitations"`
	RecommendedFor string   `json:"recommended_for"`
}

type policy struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type faq struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type base struct {
	Company      string   `json:"company"`
	Description  string   `json:"description"`
	PricingPlans []plan   `json:"pricing_plans"`
	Policies     []policy `json:"policies"`
	FAQ          []faq    `json:"faq"`
}

// Embedder vectorises passages and queries. Nil is allowed; the index then
// scores by token overlap instead of cosine similarity.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Index is the in-memory retriever over the embedded product knowledge base.
// Passages are embedded once at construction; queries are embedded per call.
type Index struct {
	passages []string
	vectors  [][]float32
	embedder Embedder
}

// NewIndex builds the passage list from the embedded knowledge base and, when
// an embedder is provided, the vector index.
func NewIndex(ctx context.Context, embedder Embedder) (*Index, error) {
	var kb base
	if err := json.Unmarshal(knowledgeBaseJSON, &kb); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}

	idx := &Index{passages: buildPassages(kb), embedder: embedder}

	if embedder != nil {
		vectors, err := embedder.EmbedTexts(ctx, idx.passages)
		if err != nil {
			return nil, fmt.Errorf("embed knowledge base: %w", err)
		}
		for i := range vectors {
			normalize(vectors[i])
		}
		idx.vectors = vectors
	}

	logx.Info().Int("passages", len(idx.passages)).Bool("embedded", embedder != nil).Msg("knowledge index built")
	return idx, nil
}

func buildPassages(kb base) []string {
	var out []string

	out = append(out, fmt.Sprintf("%s: %s", kb.Company, kb.Description))

	for _, p := range kb.PricingPlans {
		var b strings.Builder
		fmt.Fprintf(&b, "%s - %s\n\nFeatures:\n", p.Name, p.Price)
		for _, f := range p.Features {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		if len(p.Limitations) > 0 {
			b.WriteString("\nLimitations:\n")
			for _, l := range p.Limitations {
				fmt.Fprintf(&b, "- %s\n", l)
			}
		}
		if p.RecommendedFor != "" {
			fmt.Fprintf(&b, "\nRecommended for: %s", p.RecommendedFor)
		}
		out = append(out, b.String())
	}

	for _, p := range kb.Policies {
		out = append(out, fmt.Sprintf("%s\n\n%s", p.Title, p.Description))
	}

	for _, f := range kb.FAQ {
		out = append(out, fmt.Sprintf("Q: %s\n\nA: %s", f.Question, f.Answer))
	}

	return out
}

// Retrieve returns the top-k passages for a query in descending score order.
// An empty result is valid; callers fall back to answering without context.
func (i *Index) Retrieve(ctx context.Context, query string, k int) ([]model.Passage, error) {
	if k <= 0 {
		k = 3
	}

	var scores []float64
	if i.embedder != nil && len(i.vectors) == len(i.passages) {
		qv, err := i.embedder.EmbedTexts(ctx, []string{query})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errx.ErrRetrieval, err)
		}
		if len(qv) != 1 {
			return nil, fmt.Errorf("%w: unexpected embedding count %d", errx.ErrRetrieval, len(qv))
		}
		normalize(qv[0])
		scores = make([]float64, len(i.passages))
		for j, v := range i.vectors {
			scores[j] = dot(qv[0], v)
		}
	} else {
		scores = i.overlapScores(query)
	}

	order := make([]int, len(i.passages))
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	var result []model.Passage
	for _, j := range order {
		if len(result) >= k || scores[j] <= 0 {
			break
		}
		result = append(result, model.Passage{Text: i.passages[j], Score: scores[j]})
	}
	return result, nil
}

// overlapScores is the degraded-mode scorer: fraction of query tokens that
// appear in the passage.
func (i *Index) overlapScores(query string) []float64 {
	tokens := strings.Fields(strings.ToLower(query))
	scores := make([]float64, len(i.passages))
	if len(tokens) == 0 {
		return scores
	}

	for j, passage := range i.passages {
		lower := strings.ToLower(passage)
		matched := 0
		for _, tok := range tokens {
			tok = strings.Trim(tok, ".,;:!?\"'()")
			if len(tok) < 3 {
				continue
			}
			if strings.Contains(lower, tok) {
				matched++
			}
		}
		scores[j] = float64(matched) / float64(len(tokens))
	}
	return scores
}

func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

var _ model.Retriever = (*Index)(nil)
