package analysis

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/clearcomply/contract-compliance-backend/internal/domain/regulation"
)

const generatorSystemPrompt = `You are a senior legal compliance expert with 15+ years of experience in ` +
	`corporate law and regulatory compliance. Generate professional, legally sound contract clauses ` +
	`that are enforceable and comprehensive.`

// DegradedSentinel marks a generative response produced without a working
// model behind it. Responses containing it are discarded in favor of the
// deterministic fallback.
const DegradedSentinel = "AI analysis completed"

// Generator produces remediation clause text for missing clauses, preferring
// the generative text collaborator and falling back to a deterministic
// template. The fallback never fails, so the pipeline has no hard dependency
// on the external service.
type Generator struct {
	logger    *zap.Logger
	completer TextCompleter
	config    GeneratorConfig
}

// NewGenerator creates a remediation generator. completer may be nil, in
// which case every clause takes the deterministic path.
func NewGenerator(logger *zap.Logger, completer TextCompleter, config GeneratorConfig) *Generator {
	return &Generator{
		logger:    logger,
		completer: completer,
		config:    config,
	}
}

// Generate returns suggested clause text for one missing clause, plus
// whether the deterministic fallback produced it. At most one generative
// call is made per clause, bounded by the configured timeout; any failure,
// empty, short or degraded response resolves to the fallback.
func (g *Generator) Generate(ctx context.Context, regulationID string, clause regulation.ClauseRequirement, contractText string) (string, bool) {
	if g.completer == nil {
		return g.Fallback(regulationID, clause), true
	}

	callCtx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	prompt := g.buildPrompt(regulationID, clause, contractText)
	response, err := g.completer.Complete(callCtx, generatorSystemPrompt, prompt, g.config.MaxTokens)
	if err != nil {
		g.logger.Warn("clause generation degraded, using fallback",
			zap.String("regulation", regulationID),
			zap.String("clause", clause.Name),
			zap.Error(err),
		)
		return g.Fallback(regulationID, clause), true
	}

	response = strings.TrimSpace(response)
	if len(response) < g.config.MinLength || strings.Contains(response, DegradedSentinel) {
		g.logger.Warn("clause generation returned low-confidence text, using fallback",
			zap.String("regulation", regulationID),
			zap.String("clause", clause.Name),
			zap.Int("length", len(response)),
		)
		return g.Fallback(regulationID, clause), true
	}

	return response, false
}

func (g *Generator) buildPrompt(regulationID string, clause regulation.ClauseRequirement, contractText string) string {
	excerpt := contractText
	if len(excerpt) > g.config.ContextExcerpt {
		excerpt = excerpt[:g.config.ContextExcerpt]
	}

	return fmt.Sprintf(`Generate a professional legal clause for a commercial contract addressing: %s

REGULATION: %s
KEY REQUIREMENTS: %s
CONTRACT CONTEXT: %s

The clause must be:
- Legally precise and enforceable
- Comprehensive yet concise
- Written in formal commercial contract language
- Include specific obligations, responsibilities, and remedies
- Reference the relevant regulation appropriately
- Suitable for commercial use

Provide only the clause text without explanations.`,
		clause.Name, regulationID, strings.Join(clause.Requirements, ", "), excerpt)
}

// Fallback synthesizes clause text deterministically: it names the clause,
// cites the regulation, enumerates the requirement phrases verbatim and
// states the generic compliance, audit and remediation obligations.
func (g *Generator) Fallback(regulationID string, clause regulation.ClauseRequirement) string {
	return fmt.Sprintf(`%s

The Parties shall comply with all applicable requirements under %s regarding %s, including but not limited to: %s.

Appropriate technical and organizational measures shall be implemented to ensure ongoing compliance. All compliance activities shall be properly documented and made available for audit upon request. In case of non-compliance, the Parties shall take immediate corrective action and notify relevant stakeholders as required by applicable law.`,
		strings.ToUpper(clause.Name),
		regulationID,
		strings.ToLower(clause.Name),
		strings.Join(clause.Requirements, ", "),
	)
}
