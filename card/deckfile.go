package card

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Deck files are plain text, one card per line. Prompt lines may carry a
// "(Pick N)" prefix to require N responses; unprefixed prompts default to
// one blank. Responses and prompts live in separate files:
// <name>_responses.txt and <name>_prompts.txt under the deck directory.
// The format is preserved bit-exactly so existing deck assets keep working.

var pickPrefix = regexp.MustCompile(`^\(Pick ([0-9]+)\)\s*`)

// ParseResponses reads one response card per non-empty line.
func ParseResponses(r io.Reader) ([]Response, error) {
	var cards []Response
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cards = append(cards, Response{Text: line})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

// ParsePrompts reads one prompt card per non-empty line, honoring the
// "(Pick N)" prefix. A prefix asking for more than MaxBlanks blanks is an
// error rather than a silently clamped value.
func ParsePrompts(r io.Reader) ([]Prompt, error) {
	var cards []Prompt
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := ParsePromptLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		cards = append(cards, p)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

// ParsePromptLine parses one prompt-card line in the deck file format,
// honoring the "(Pick N)" prefix. Also used by the makepromptcard command,
// which accepts the same syntax.
func ParsePromptLine(line string) (Prompt, error) {
	blanks := 1
	if m := pickPrefix.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Prompt{}, fmt.Errorf("bad pick count %q", m[1])
		}
		blanks = n
		line = line[len(m[0]):]
	}
	return NewPrompt(line, blanks)
}

// WriteResponses writes cards in the deck file format, one per line.
func WriteResponses(w io.Writer, cards []Response) error {
	for _, c := range cards {
		if _, err := fmt.Fprintln(w, c.Text); err != nil {
			return err
		}
	}
	return nil
}

// WritePrompts writes prompt cards, prefixing multi-blank prompts with
// "(Pick N)" exactly as the parser expects them. A single-blank prompt
// whose text itself begins with "(Pick N)" gets an explicit "(Pick 1)"
// prefix; the parser strips only the first prefix, so the text survives a
// round trip unchanged.
func WritePrompts(w io.Writer, cards []Prompt) error {
	for _, c := range cards {
		line := c.Text
		if c.Blanks > 1 || pickPrefix.MatchString(c.Text) {
			line = fmt.Sprintf("(Pick %d)%s", c.Blanks, c.Text)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// LoadDeckFiles builds a deck from <name>_responses.txt and
// <name>_prompts.txt under dir. Either file may be absent; an entirely
// missing pair is an error.
func LoadDeckFiles(dir, name, authorID string) (*Deck, error) {
	d := NewDeck(name, authorID)
	found := false

	respPath := filepath.Join(dir, name+"_responses.txt")
	if f, err := os.Open(respPath); err == nil {
		defer f.Close()
		cards, err := ParseResponses(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", respPath, err)
		}
		for _, c := range cards {
			d.AddResponse(c)
		}
		found = true
	}

	promptPath := filepath.Join(dir, name+"_prompts.txt")
	if f, err := os.Open(promptPath); err == nil {
		defer f.Close()
		cards, err := ParsePrompts(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", promptPath, err)
		}
		for _, c := range cards {
			d.AddPrompt(c)
		}
		found = true
	}

	if !found {
		return nil, fmt.Errorf("no deck files for %q in %s", name, dir)
	}
	return d, nil
}
