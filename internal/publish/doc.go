// Package publish drives a crosspost run: it parses each candidate post,
// decides whether it is eligible, and sends one article per enabled
// platform.
//
// Posts are processed one at a time. For a single post the platform calls
// run concurrently and each writes only its own outcome, so a failure on
// one platform never affects another platform or the remaining posts.
// Nothing is retried.
//
// Basic usage:
//
//	pub := publish.New(publish.Options{Registry: reg})
//	report, err := pub.Run(ctx, paths)
//	if err != nil {
//	    return err
//	}
//	if report.HasFailures() {
//	    // at least one post did not make it everywhere
//	}
package publish
