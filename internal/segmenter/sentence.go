package segmenter

import (
	"regexp"
	"strings"
)

// sentenceEnd matches sentence-ending punctuation followed by whitespace.
// Abbreviation handling is intentionally out of scope; this heuristic is
// good enough for lecture transcripts.
var sentenceEnd = regexp.MustCompile(`[.!?]+(\s+|$)`)

// splitSentences cuts text into trimmed sentences. Any trailing fragment
// without terminal punctuation is kept as a final sentence.
func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	last := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		sentence := strings.TrimSpace(text[last:loc[1]])
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		last = loc[1]
	}
	if tail := strings.TrimSpace(text[last:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// chunkText greedily packs sentences into chunks of at most chunkSize
// characters, carrying roughly overlap characters of trailing sentences
// into the next chunk. A single sentence longer than the budget becomes
// its own over-sized chunk.
func (s *Segmenter) chunkText(text string) []string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	currentLen := 0

	push := func(sentence string) {
		if currentLen > 0 {
			currentLen++ // joining space
		}
		current = append(current, sentence)
		currentLen += len(sentence)
	}

	for _, sentence := range sentences {
		projected := currentLen + len(sentence)
		if currentLen > 0 {
			projected++
		}

		if projected > s.chunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current, currentLen = s.overlapTail(current)
		}
		push(sentence)
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

// overlapTail returns the trailing sentences of a flushed chunk that fit
// the overlap budget, preserving cross-boundary context. It never returns
// the whole chunk, so every chunk carries new content.
func (s *Segmenter) overlapTail(flushed []string) ([]string, int) {
	var tail []string
	total := 0
	for i := len(flushed) - 1; i > 0; i-- {
		sentence := flushed[i]
		add := len(sentence)
		if total > 0 {
			add++
		}
		if total+add > s.overlap {
			break
		}
		tail = append([]string{sentence}, tail...)
		total += add
	}
	return tail, total
}
