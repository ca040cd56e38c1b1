// Package validator defines the issue model shared by post validation and
// the validate command's reporter.
//
// # Core Concepts
//
//   - [Severity]: Distinguishes errors (the platform would reject the post)
//     from warnings (the post is rewritten on the way out) and info.
//   - [Issue]: A single validation problem with field context.
//   - [Result]: The issues found in one post.
//
// # Basic Usage
//
//	result := &validator.Result{Path: "posts/hello.md"}
//	if title == "" {
//		result.AddError("title", "is required", nil)
//	}
//
//	validator.NewReporter(os.Stdout, validator.FormatText).Report(result)
package validator
