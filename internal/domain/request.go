// Package domain defines core business entities and value objects for Aimy.
//
// The domain layer is independent of infrastructure concerns and represents
// pure data structures flowing through the dispatch pipeline: a Request enters,
// an Understanding, Intent and Plan are derived from it, and an ExecutionResult
// leaves. None of these values are mutated after creation.
package domain

import (
	"context"
	"time"
)

// Request captures a single natural-language utterance entering the pipeline.
type Request struct {
	Context    context.Context
	ID         string
	Text       string
	ReceivedAt time.Time
	Session    string
	// Served marks requests arriving through the HTTP shell; content
	// post-actions use retrieval paths instead of opening local files.
	Served bool
}

// ConversationType classifies small-talk sub-types for canned replies.
type ConversationType string

const (
	ConversationGreeting     ConversationType = "greeting"
	ConversationFarewell     ConversationType = "farewell"
	ConversationHelp         ConversationType = "help_request"
	ConversationGratitude    ConversationType = "gratitude"
	ConversationCapabilities ConversationType = "capabilities"
	ConversationGeneral      ConversationType = "general"
)

// Tone is a coarse emotional-tone tag.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	TonePolite  Tone = "polite"
)

// Complexity is a coarse request-complexity estimate.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// Understanding holds the surface-level language analysis of a request.
type Understanding struct {
	RawText          string
	TextLength       int
	WordCount        int
	IsQuestion       bool
	IsCommand        bool
	IsSystemRequest  bool
	HasTechnicalTerm bool
	ConversationType ConversationType
	EmotionalTone    Tone
	UrgencyHigh      bool
	Complexity       Complexity
}

// Goal enumerates the primary goals an Intent may carry.
type Goal string

const (
	GoalInformationSeeking Goal = "information_seeking"
	GoalTaskExecution      Goal = "task_execution"
	GoalConversation       Goal = "conversation"
	GoalSystemControl      Goal = "system_control"
)

// Domain tags the subject area of an Intent.
type Domain string

const (
	DomainTemporal      Domain = "temporal_information"
	DomainEnvironmental Domain = "environmental_information"
	DomainSystemInfo    Domain = "system_information"
	DomainKnowledge     Domain = "general_knowledge"
	DomainCreation      Domain = "creation_task"
	DomainSystemControl Domain = "system_control"
	DomainCommunication Domain = "communication"
	DomainRetrieval     Domain = "information_retrieval"
	DomainComputation   Domain = "computation"
	DomainConversation  Domain = "general_conversation"
	DomainGeneral       Domain = "general"
)

// Intent captures what the requester actually wants.
type Intent struct {
	PrimaryGoal    Goal
	Domain         Domain
	SecondaryGoals []string
	ActionRequired bool
	Confidence     float64
}
