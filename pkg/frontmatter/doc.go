// Package frontmatter provides generic parsing of YAML and TOML frontmatter
// from Markdown files used by the crosspost CLI for blog posts.
//
// YAML frontmatter is delimited by lines containing only "---"; TOML
// frontmatter by lines containing only "+++". The content between the
// delimiters is unmarshaled into the caller's value. The remaining content
// after the closing delimiter is returned as the body.
//
// # Basic Usage
//
//	type PostMeta struct {
//		Title string   `yaml:"title" toml:"title"`
//		Tags  []string `yaml:"tags" toml:"tags"`
//	}
//
//	var meta PostMeta
//	body, err := frontmatter.MustParse(f, &meta)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Error Handling
//
// The package defines sentinel errors for common failure conditions:
//
//   - [ErrMissingFrontmatter]: document doesn't start with a delimiter (MustParse only)
//   - [ErrUnclosedFrontmatter]: opening delimiter without a closing one
//   - [ErrInvalidYAML], [ErrInvalidTOML]: the block failed to unmarshal
//
// These can be checked using [errors.Is].
//
// Both Unix (LF) and Windows (CRLF) line endings are handled.
package frontmatter
