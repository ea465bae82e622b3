package wordcloud

import (
	"sort"
	"strings"
	"unicode"
)

// WordCount is a word and the number of times it occurs.
type WordCount struct {
	Word  string
	Count int
}

var englishStopWords = toSet(strings.Fields(`
a about above after again against all am an and any are aren't as at be because been
before being below between both but by can can't cannot could couldn't dare did didn't do
does doesn't doing don't down during each few for from further had hadn't has hasn't have
haven't having he he'd he'll he's her here here's hers herself him himself his how how's i
i'd i'll i'm i've if in into is isn't it it's its itself just let's may me might mine more
most must mustn't my myself need no nor not of off on once only or other ought our ours
ourselves out over own same shall shan't she she'd she'll she's should shouldn't so some
such than that that's the their theirs them themselves then there there's these they
they'd they'll they're they've this those through to too under until up very was wasn't we
we'd we'll we're we've were weren't what what's when when's where where's which while who
who's whom why why's will with won't would wouldn't you you'd you'll you're you've your
yours yourself yourselves
`))

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Frequencies counts the words of text, most frequent first. Ties keep the
// order of first appearance. English stop words are dropped when lang is "en".
func Frequencies(text, lang string) []WordCount {
	var stop map[string]struct{}
	if lang == "en" {
		stop = englishStopWords
	}

	index := make(map[string]int)
	var counts []WordCount
	for _, raw := range strings.FieldsFunc(text, isSeparator) {
		word := strings.ToLower(strings.Trim(raw, "'"))
		if word == "" {
			continue
		}
		if _, skip := stop[word]; skip {
			continue
		}
		if i, ok := index[word]; ok {
			counts[i].Count++
			continue
		}
		index[word] = len(counts)
		counts = append(counts, WordCount{Word: word, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
}
