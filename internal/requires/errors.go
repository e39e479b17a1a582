package requires

import (
	"fmt"
	"strings"
)

// GrammarError reports requirement text that does not match the predicate
// grammar.
type GrammarError struct {
	// Fragment is the source text starting at the offending token
	Fragment string
	// Offset is the byte offset of the offending token
	Offset  int
	Message string
}

func (e *GrammarError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("requires: %s at end of input", e.Message)
	}
	return fmt.Sprintf("requires: %s at offset %d near %q", e.Message, e.Offset, e.Fragment)
}

// LookupError reports a reference to an alias with no definition.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("undefined alias %q", e.Name)
}

// CycleError reports an alias chain that refers back to itself.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic alias: %s", strings.Join(e.Chain, " -> "))
}

// DuplicateAliasError reports two definitions of the same alias name.
type DuplicateAliasError struct {
	Name string
}

func (e *DuplicateAliasError) Error() string {
	return fmt.Sprintf("alias %q defined more than once", e.Name)
}

const fragmentLen = 40

func newGrammarError(src string, offset int, message string) *GrammarError {
	frag := ""
	if offset < len(src) {
		frag = src[offset:]
		if len(frag) > fragmentLen {
			frag = frag[:fragmentLen] + "..."
		}
	}
	return &GrammarError{Fragment: frag, Offset: offset, Message: message}
}
