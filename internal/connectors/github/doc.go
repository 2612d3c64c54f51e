// Package github lists the files changed between two commits of a GitHub
// repository. It backs "dunesync sync --changes github", which lets a
// workflow derive CHANGED_QUERY_FILES from the push or pull request range
// instead of computing it in shell.
//
// # Authentication
//
// A token is read from GITHUB_TOKEN. The default Actions token is enough
// for the compare endpoint on the workflow's own repository. Without a
// token, requests are unauthenticated and limited to 60 per hour.
//
// # Rate Limiting
//
// Requests are throttled with a token bucket and the client honours the
// X-RateLimit-Remaining and X-RateLimit-Reset headers, waiting for the
// reset when the remaining quota runs low.
//
// # Example Usage
//
//	owner, repo, _ := github.ParseRepository(os.Getenv("GITHUB_REPOSITORY"))
//	client := github.NewClientWithToken(ctx, os.Getenv("GITHUB_TOKEN"))
//	source := github.NewCompareSource(client, owner, repo, baseSHA, headSHA)
//	files, err := source.ChangedFiles(ctx)
package github
