// Package parser reads Spanish/English pairs from plain-text import files.
//
// A pair is an "ES:" line followed by an "EN:" line. Either side may run on
// over following lines. Pairs end at "---", at the next "ES:", or at EOF.
//
//	ES: el gato
//	EN: the cat
//	---
//	ES: la casa
//	EN: the house
package parser

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const (
	spanishPrefix = "ES:"
	englishPrefix = "EN:"
	separator     = "---"
)

// Pair is one parsed Spanish/English entry.
type Pair struct {
	Spanish string
	English string
	Line    int // line the pair starts on
}

type state int

const (
	seeking state = iota
	readingSpanish
	readingEnglish
)

// ParseFile reads a file from the given path and extracts all pairs.
func ParseFile(path string) ([]Pair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads from an io.Reader and extracts all pairs. Pairs missing
// either side are dropped.
func Parse(r io.Reader) ([]Pair, error) {
	scanner := bufio.NewScanner(r)
	var pairs []Pair
	var current Pair
	var block []string
	currentState := seeking
	lineNo := 0

	flush := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, " ")
		switch currentState {
		case readingSpanish:
			current.Spanish = content
		case readingEnglish:
			current.English = content
		}
		block = nil
	}

	finishPair := func() {
		flush()
		if current.Spanish != "" && current.English != "" {
			pairs = append(pairs, current)
		}
		current = Pair{}
		currentState = seeking
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == separator:
			finishPair()
		case strings.HasPrefix(line, spanishPrefix):
			if currentState != seeking {
				finishPair()
			}
			currentState = readingSpanish
			current.Line = lineNo
			block = appendContent(block, line[len(spanishPrefix):])
		case strings.HasPrefix(line, englishPrefix):
			flush()
			if currentState == seeking {
				current.Line = lineNo
			}
			currentState = readingEnglish
			block = appendContent(block, line[len(englishPrefix):])
		case currentState != seeking:
			block = appendContent(block, line)
		}
	}

	finishPair()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return pairs, nil
}

func appendContent(block []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		block = append(block, s)
	}
	return block
}
