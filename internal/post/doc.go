// Package post models a blog post: a markdown body under a YAML (---) or
// TOML (+++) frontmatter header.
//
// A post is eligible for cross-posting when its crosspost or published
// flag is true. No other field affects eligibility:
//
//	p, err := post.NewParser().ParseFile("posts/hello.md")
//	if err != nil {
//		var perr *post.ParseError
//		// report and skip
//	}
//	if p.Eligible() {
//		// publish
//	}
//
// [Parser] rejects documents without frontmatter or without a title with a
// [ParseError]. [Validator] reports softer problems, such as tags a platform
// will rewrite, as a validator.Result.
package post
