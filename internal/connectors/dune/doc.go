// Package dune implements a client for the Dune query management API.
//
// Only the two endpoints dunesync needs are covered:
//
//   - GET   /api/v1/query/{id}  reads a query's metadata and SQL
//   - PATCH /api/v1/query/{id}  replaces a query's SQL
//
// Requests are authenticated with the X-DUNE-API-KEY header. Every request
// carries a fresh X-Request-Id so failures can be matched with Dune support
// logs.
//
// Non-2xx responses are returned as *APIError; use IsNotFound and
// IsUnauthorized to classify them.
//
// # Example Usage
//
//	client, err := dune.NewClient(os.Getenv("DUNE_API_KEY"),
//	    dune.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//	    return err
//	}
//	q, err := client.GetQuery(ctx, 3237721)
package dune
