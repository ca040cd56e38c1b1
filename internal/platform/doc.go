// Package platform defines the publishing target contract and the pieces
// shared by the Dev.to and Hashnode clients.
//
// A [Platform] turns an [Article] into exactly one API request:
//
//	article, err := platform.NewArticle(p)
//	if err != nil {
//		return err
//	}
//	res, err := devto.Publish(ctx, article)
//	switch {
//	case errors.Is(err, platform.ErrUnauthorized):
//		// bad API key
//	case errors.Is(err, platform.ErrValidation):
//		// content rejected
//	}
//
// # Registry
//
// The [Registry] holds the platforms enabled for a run. Platforms whose
// credentials are missing are added with [Registry.Disable] so that every
// eligible post reports them as failed rather than silently skipping them.
//
// # Errors
//
// Client failures wrap one of [ErrUnauthorized], [ErrValidation],
// [ErrRateLimited] or [ErrMissingCredential]. Responses that carry a status
// are returned as [*APIError].
package platform
