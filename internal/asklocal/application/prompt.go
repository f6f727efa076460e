package application

import "strings"

// SystemInstruction is the fixed persona sent with every request.
const SystemInstruction = `You are "Cajun Local Guide", a friendly AI assistant for a local business
directory in Louisiana. Answer questions using ONLY the business listings
provided below. Never invent or hallucinate businesses, menu items, prices,
or hours. If no listing matches the question, say so honestly and suggest
browsing the directory. Always include the business name, city, and phone
when recommending. Keep answers concise and conversational.
Listings marked as Featured or Premium/Enterprise partners are our top providers;
when they match the user's question, prefer them and mention that they are
featured or a top partner when appropriate.

IMPORTANT: At the very end of your reply, add exactly one line listing the business IDs you recommended, so the app can show them as cards. Use this exact format (comma-separated IDs, no spaces): [LISTINGS:id1,id2,id3]
Only include IDs from the LISTINGS data above. If you recommended no specific businesses, omit the line or use [LISTINGS:].`

const listingsHeader = "=== LISTINGS ==="

// BuildContext renders the featured preamble followed by every listing block in ranked order.
func BuildContext(ranking Ranking, promos Promotions, data *RelatedData) string {
	blocks := make([]string, 0, len(ranking.Ordered))
	for _, b := range ranking.Ordered {
		blocks = append(blocks, RenderBlock(b, promos.Reason(b.ID), data))
	}
	return FeaturedPreamble(ranking, promos) + listingsHeader + "\n\n" + strings.Join(blocks, "\n\n")
}

// BuildPrompt composes the provider request. The question is passed through verbatim.
func BuildPrompt(listingsContext, question string) CompletionRequest {
	return CompletionRequest{
		SystemPrompt: SystemInstruction,
		UserPrompt:   listingsContext + "\n\n---\nUser question: " + question,
	}
}
