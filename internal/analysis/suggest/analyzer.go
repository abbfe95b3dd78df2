package suggest

import (
	"sort"
	"strings"
)

// Topic labels the conversation themes a follow-up can target.
type Topic string

const (
	Trends  Topic = "trends"
	Artists Topic = "artists"
	Genre   Topic = "genre"
	Events  Topic = "events"
	Revenue Topic = "revenue"
	YouTube Topic = "youtube"
)

const maxSuggestions = 3

var keywordBuckets = map[Topic][]string{
	Trends: {
		"trend", "trending", "trends", "growth", "rising", "popular", "hot", "momentum",
		"forecast", "predict", "next big", "blow up", "chart",
	},
	Artists: {
		"artist", "singer", "musician", "burna", "wizkid", "davido", "tems", "rema",
		"asake", "ayra", "who is", "compare", "career",
	},
	Genre: {
		"genre", "afrobeats", "amapiano", "afropop", "highlife", "alte", "sound",
		"tempo", "energy", "danceability", "bpm", "vibe",
	},
	Events: {
		"event", "concert", "show", "festival", "tour", "ticket", "venue", "lagos",
		"live", "performance",
	},
	Revenue: {
		"revenue", "sales", "money", "earn", "income", "merch", "business", "streams",
		"monetize", "deal", "profit",
	},
	YouTube: {
		"youtube", "video", "views", "channel", "subscribers", "content", "visual",
	},
}

var followUps = map[Topic]string{
	Trends:  "What Afrobeats trends should I watch this quarter?",
	Artists: "Which artists are growing fastest right now?",
	Genre:   "How do energy and danceability compare across top tracks?",
	Events:  "Are there upcoming live events in Lagos?",
	Revenue: "Where is the revenue concentrated across the market?",
	YouTube: "Which artists perform best on YouTube?",
}

// topicOrder fixes the output order so suggestions are deterministic.
var topicOrder = []Topic{Trends, Artists, Genre, Events, Revenue, YouTube}

// FollowUps scores the user prompt and model reply against the keyword
// buckets and returns up to three follow-up suggestions, highest scoring
// topics first.
func FollowUps(userPrompt, reply string) []string {
	scores := make(map[Topic]int, len(keywordBuckets))
	score(scores, userPrompt, 2) // the user's own words weigh more
	score(scores, reply, 1)

	ranked := make([]Topic, 0, len(scores))
	for topic, n := range scores {
		if n > 0 {
			ranked = append(ranked, topic)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if scores[ranked[i]] != scores[ranked[j]] {
			return scores[ranked[i]] > scores[ranked[j]]
		}
		return orderIndex(ranked[i]) < orderIndex(ranked[j])
	})

	if len(ranked) == 0 {
		// Nothing matched; fall back to the broadest topics.
		ranked = []Topic{Trends, Artists, Events}
	}
	if len(ranked) > maxSuggestions {
		ranked = ranked[:maxSuggestions]
	}

	suggestions := make([]string, 0, len(ranked))
	for _, topic := range ranked {
		suggestions = append(suggestions, followUps[topic])
	}
	return suggestions
}

func score(scores map[Topic]int, text string, weight int) {
	lowered := strings.ToLower(text)
	for topic, keywords := range keywordBuckets {
		for _, keyword := range keywords {
			scores[topic] += strings.Count(lowered, keyword) * weight
		}
	}
}

func orderIndex(topic Topic) int {
	for i, t := range topicOrder {
		if t == topic {
			return i
		}
	}
	return len(topicOrder)
}
