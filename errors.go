package md2html

import "errors"

// Sentinel errors for library operations.
//
// Parse-level failures (malformed frontmatter, unterminated blocks,
// unresolvable code references) are deliberately not errors: they
// degrade to visible fallbacks so a document always renders. The
// sentinels below cover the I/O edges where no fallback exists.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrReadDocument  = errors.New("failed to read markdown file")

	// Cache errors.
	ErrCacheLoad = errors.New("failed to load cache file")
	ErrCacheSave = errors.New("failed to save cache file")
)
