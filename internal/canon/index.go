// Package canon canonicalizes skill and technology tokens against a built-in
// lexicon and an optional compiled allowlist.
package canon

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Allowlist artifact file names inside the allowlist directory
const (
	TechAllowlistFile   = "tech_allowlist.txt"
	SkillsAllowlistFile = "skills_allowlist.txt"
	TechAliasesFile     = "tech_aliases.json"
	SkillsAliasesFile   = "skills_aliases.json"
)

// DefaultMinSize is the smallest canonical vocabulary that enables allowlist mode
const DefaultMinSize = 200

var keySpace = regexp.MustCompile(`\s+`)

// Key normalizes a term for allowlist lookup: NFKC, en/em dashes folded to
// "-", whitespace collapsed, lower-cased.
func Key(s string) string {
	s = norm.NFKC.String(s)
	s = strings.NewReplacer("–", "-", "—", "-").Replace(s)
	s = keySpace.ReplaceAllString(strings.TrimSpace(s), " ")
	return strings.ToLower(s)
}

// LoadError represents a malformed or unreadable allowlist artifact
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("allowlist load error: %s: %v", e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Index is a read-only canonical vocabulary with alias mappings
type Index struct {
	enabled          bool
	canonicalByKey   map[string]string
	aliasToCanonical map[string]string
}

// Disabled returns an index that resolves nothing
func Disabled() *Index {
	return &Index{
		canonicalByKey:   map[string]string{},
		aliasToCanonical: map[string]string{},
	}
}

// NewStaticIndex builds an enabled index from in-memory labels and aliases
func NewStaticIndex(labels []string, aliases map[string]string) *Index {
	idx := Disabled()
	for _, l := range labels {
		idx.addCanonical(l)
	}
	for a, c := range aliases {
		idx.addAlias(a, c)
	}
	idx.enabled = true
	return idx
}

// Enabled reports whether allowlist mode is on
func (i *Index) Enabled() bool {
	return i != nil && i.enabled
}

// Size returns the number of canonical terms
func (i *Index) Size() int {
	if i == nil {
		return 0
	}
	return len(i.canonicalByKey)
}

// Lookup resolves a term directly or through an alias
func (i *Index) Lookup(term string) (string, bool) {
	if i == nil {
		return "", false
	}
	k := Key(term)
	if k == "" {
		return "", false
	}
	if c, ok := i.canonicalByKey[k]; ok {
		return c, true
	}
	if c, ok := i.aliasToCanonical[k]; ok {
		return c, true
	}
	return "", false
}

func (i *Index) addCanonical(label string) {
	label = strings.TrimSpace(label)
	if k := Key(label); k != "" {
		if _, exists := i.canonicalByKey[k]; !exists {
			i.canonicalByKey[k] = label
		}
	}
}

func (i *Index) addAlias(alias, canonical string) {
	canonical = strings.TrimSpace(canonical)
	if k := Key(alias); k != "" && canonical != "" {
		i.aliasToCanonical[k] = canonical
	}
}

// LoadIndex reads the compiled allowlist artifacts from dir. Missing files are
// a supported state and yield a disabled index with a nil error. Allowlist
// mode turns on when the vocabulary reaches minSize terms.
func LoadIndex(dir string, minSize int) (*Index, error) {
	idx := Disabled()
	if dir == "" {
		return idx, nil
	}
	if minSize <= 0 {
		minSize = DefaultMinSize
	}

	for _, name := range []string{TechAllowlistFile, SkillsAllowlistFile} {
		if err := readList(filepath.Join(dir, name), idx.addCanonical); err != nil {
			return Disabled(), err
		}
	}
	for _, name := range []string{TechAliasesFile, SkillsAliasesFile} {
		if err := readAliases(filepath.Join(dir, name), idx.addAlias); err != nil {
			return Disabled(), err
		}
	}

	idx.enabled = len(idx.canonicalByKey) >= minSize
	return idx, nil
}

func readList(path string, add func(string)) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &LoadError{Path: path, Cause: err}
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		add(line)
	}
	if err := sc.Err(); err != nil {
		return &LoadError{Path: path, Cause: err}
	}
	return nil
}

func readAliases(path string, add func(alias, canonical string)) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &LoadError{Path: path, Cause: err}
	}

	var aliases map[string]string
	if err := json.Unmarshal(data, &aliases); err != nil {
		return &LoadError{Path: path, Cause: err}
	}
	for a, c := range aliases {
		add(a, c)
	}
	return nil
}
