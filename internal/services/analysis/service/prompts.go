package service

import (
	"github.com/tmc/langchaingo/prompts"
)

const queryTemplate = `Extract the main factual claim from this text and create a verification search query.
Focus on: names, dates, events, awards, winners, statistics, or any verifiable facts.
Add keywords like "who won", "winner", "official", or the actual subject to verify the claim.

Text: {{.text}}

Return ONLY the search query, nothing else. Example: "Ballon d'Or 2023 winner official"
`

const adjudicateTemplate = `You are an expert Fact-Checker. Your job is to verify claims against evidence.

CLAIM TO VERIFY:
{{.claim}}

EVIDENCE FROM WEB SEARCH:
{{.evidence}}

STEP-BY-STEP VERIFICATION:

Step 1: Extract the EXACT claim being made.
- Pay attention to NEGATIONS: words like "not", "never", "isn't", "wasn't", "doesn't"
- Example: "X is NOT the richest" means the claim is that X is NOT #1
- Example: "X is the richest" means the claim is that X IS #1

Step 2: Find the ACTUAL FACT in the evidence.
- What do the sources say about this topic?
- Who/what does the evidence say is the actual answer?

Step 3: Compare the claim to the fact.
- If claim says "X is Y" and evidence confirms "X is Y" -> verdict is "Real"
- If claim says "X is Y" but evidence says "X is NOT Y" or "Z is Y" -> verdict is "Fake"
- If claim says "X is NOT Y" and evidence confirms "X is NOT Y" -> verdict is "Real"
- If claim says "X is NOT Y" but evidence says "X IS Y" -> verdict is "Fake"

CONFIDENCE SCORES (use ONLY these values):
- 95: Evidence clearly and directly proves/disproves the exact claim
- 85: Multiple sources agree on the verdict
- 75: Strong evidence from reliable sources
- 65: Good evidence from one source
- 50: Mixed or unclear evidence
- 35: Weak evidence
- 20: No relevant evidence

OUTPUT (JSON only, no markdown):
{
    "verdict": "Real" or "Fake",
    "confidence_score": 95,
    "explanation": "The claim states [exact claim]. The evidence shows [actual fact from sources]. Therefore this is [Real/Fake]."
}
`

var (
	queryPrompt      = prompts.NewPromptTemplate(queryTemplate, []string{"text"})
	adjudicatePrompt = prompts.NewPromptTemplate(adjudicateTemplate, []string{"claim", "evidence"})
)

// QueryPrompt renders the query synthesis prompt for text
func QueryPrompt(text string) (string, error) {
	return queryPrompt.Format(map[string]any{"text": text})
}

// AdjudicationPrompt renders the verification prompt
func AdjudicationPrompt(claim, evidence string) (string, error) {
	return adjudicatePrompt.Format(map[string]any{"claim": claim, "evidence": evidence})
}
