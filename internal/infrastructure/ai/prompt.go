package ai

import (
	"strings"
	"unicode/utf8"

	"github.com/doeshing/chatty-go/internal/domain"
	"github.com/doeshing/chatty-go/internal/ports"
)

// TruncationMarker is appended to the kept prefix whenever the source had to
// be cut to fit the context budget. It is part of the serialized prompt, so
// the model sees that the file is incomplete.
const TruncationMarker = "\n... [truncated: file exceeds context budget]"

// PromptBuilder assembles prompt documents from source text and question.
// Pure function of its inputs; the same inputs always produce the same
// document, truncation included.
type PromptBuilder struct{}

// NewPromptBuilder creates a PromptBuilder.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Build validates the inputs and produces a PromptDocument whose serialized
// length never exceeds maxContextChars. Oversized source text is truncated
// from the tail, keeping the top of the file where signatures and imports
// live, and the marker makes the cut visible.
func (b *PromptBuilder) Build(sourceText, question string, task domain.TaskType, maxContextChars int) (domain.PromptDocument, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.PromptDocument{}, domain.NewError(domain.ErrKindInvalidInput, "question is empty")
	}
	if strings.TrimSpace(sourceText) == "" {
		return domain.PromptDocument{}, domain.NewError(domain.ErrKindInvalidInput, "source file is empty, nothing to analyze")
	}
	if maxContextChars <= 0 {
		maxContextChars = domain.DefaultMaxContextChars
	}

	doc := domain.PromptDocument{
		SystemPreamble: preambleFor(task),
		FileBlock:      fileBlock(sourceText),
		QuestionBlock:  "Question: " + question,
	}
	if len(doc.Serialize()) <= maxContextChars {
		return doc, nil
	}

	// Budget for the source alone: everything else in the document is fixed.
	overhead := len(doc.Serialize()) - len(sourceText) + len(TruncationMarker)
	keep := maxContextChars - overhead
	if keep < 0 {
		return domain.PromptDocument{}, domain.NewError(domain.ErrKindInvalidInput, "context budget too small to fit the prompt scaffolding")
	}
	doc.FileBlock = fileBlock(truncateTail(sourceText, keep) + TruncationMarker)
	doc.Truncated = true
	return doc, nil
}

func fileBlock(body string) string {
	return "Code to analyze:\n```\n" + body + "\n```"
}

// truncateTail cuts s to at most limit bytes, backing up so the cut never
// splits a UTF-8 rune. Prefix-keeping is deterministic across runs.
func truncateTail(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func preambleFor(task domain.TaskType) string {
	switch task {
	case domain.TaskReview:
		return `You are an expert code reviewer. Analyze the following code for
code quality, potential bugs, security vulnerabilities, performance
improvements and documentation. Provide specific, actionable feedback
with examples where appropriate.`
	case domain.TaskDebug:
		return `You are an expert debugger. Analyze the following code for logic
errors, runtime issues, unhandled edge cases, missing error handling and
potential infinite loops or recursion. Provide step-by-step debugging
guidance with explanations.`
	case domain.TaskExplain:
		return `You are a helpful programming teacher. Explain this code clearly
and simply: what it does, how it works, the key concepts and patterns
used, and what each major section does.`
	case domain.TaskOptimize:
		return `You are a performance optimization expert. Analyze the following
code for algorithmic improvements, memory usage, bottlenecks and
parallelization opportunities. Provide concrete optimization suggestions
with code examples.`
	default:
		return `You are a helpful coding assistant. Analyze the following code
and answer the question, focusing on code analysis and improvement
suggestions.`
	}
}

var _ ports.ContextBuilder = (*PromptBuilder)(nil)
