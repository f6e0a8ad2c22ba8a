package tokenizer

// DefaultStopWords is the built-in set of common function words discarded
// during tokenization. Overridable via Config.StopWords.
var DefaultStopWords = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "as", "is", "was", "are", "were", "been",
	"be", "have", "has", "had", "do", "does", "did", "will", "would",
	"could", "should", "may", "might", "can", "this", "that", "these",
	"those", "i", "you", "he", "she", "it", "we", "they", "what", "which",
	"who", "when", "where", "why", "how", "just", "now", "get", "got",
	"like", "going", "need", "want", "make", "know", "think", "see",
}
