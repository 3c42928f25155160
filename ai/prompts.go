package ai

import (
	"fmt"
	"strings"

	"fragrancerater/domain/profile"
)

// Prompt templates for the three explanation requests the adapter issues,
// adapted from the source service's ADR-003 templates.
const recommendationPrompt = `You are a fragrance expert. Explain why this fragrance might appeal to the user.

User's preference profile:
- Likes: %s
- Dislikes: %s
- Preferred families: %s

Fragrance: %s by %s
- Match Score: %d%%
- Family: %s
- Notes: %s
- Accords: %s

Write 2-3 sentences explaining the match. Highlight specific notes they'll enjoy.
If there are notes they typically dislike, acknowledge this as a potential concern.
Keep the response concise and helpful.`

const vetoedRecommendationPrompt = `You are a fragrance expert. Explain why this fragrance might NOT be ideal for the user.

User's preference profile:
- Likes: %s
- Dislikes: %s

Fragrance: %s by %s
- Contains: %s (which they dislike)
- Notes: %s

Write 1-2 sentences explaining why this might not be their best choice,
but acknowledge any positive aspects if relevant.`

const profileSummaryPrompt = `You are a fragrance expert. Summarize this user's fragrance preferences.

User: %s
Number of fragrances rated: %d

Top liked notes: %s
Top disliked notes: %s
Preferred accords: %s
Preferred fragrance families: %s

Write a 2-3 sentence natural language summary of their preferences.
Be specific about what scent profiles they gravitate towards and what they avoid.
Keep the tone friendly and informative.`

func joinNoteScores(scores []profile.NoteScore, fallback string) string {
	if len(scores) == 0 {
		return fallback
	}
	names := make([]string, len(scores))
	for i, s := range scores {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}

func joinKeyScores(scores []profile.KeyScore, limit int, fallback string) string {
	if len(scores) == 0 {
		return fallback
	}
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	names := make([]string, len(scores))
	for i, s := range scores {
		names[i] = s.Key
	}
	return strings.Join(names, ", ")
}

func joinStrings(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

func buildRecommendationPrompt(liked, disliked []profile.NoteScore, families []profile.KeyScore,
	fragranceName, brand string, matchPercent int, family string, notes, accords []string) string {
	return fmt.Sprintf(recommendationPrompt,
		joinNoteScores(liked, "None"),
		joinNoteScores(disliked, "None"),
		joinKeyScores(families, 3, "Various"),
		fragranceName, brand,
		matchPercent,
		family,
		joinStrings(notes, "Unknown"),
		joinStrings(accords, "Unknown"),
	)
}

func buildVetoedPrompt(liked, disliked []profile.NoteScore, fragranceName, brand, vetoNote string, notes []string) string {
	return fmt.Sprintf(vetoedRecommendationPrompt,
		joinNoteScores(liked, "None"),
		joinNoteScores(disliked, "None"),
		fragranceName, brand,
		vetoNote,
		joinStrings(notes, "Unknown"),
	)
}

func buildProfileSummaryPrompt(reviewerName string, evaluationCount int, liked, disliked []profile.NoteScore, accords, families []profile.KeyScore) string {
	return fmt.Sprintf(profileSummaryPrompt,
		reviewerName, evaluationCount,
		joinNoteScores(liked, "None yet"),
		joinNoteScores(disliked, "None yet"),
		joinKeyScores(accords, 5, "Various"),
		joinKeyScores(families, 5, "Various"),
	)
}
