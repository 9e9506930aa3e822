// Package platform talks to the remote provisioning API.
//
// The Client interface is the boundary the rest of orgctl depends on:
// submit a creation request, optionally await it while lifecycle events
// stream to the attempt's bus, resume by job ID, delete an org. The API
// type implements it over HTTP with the req client; transport retries
// and backoff are req's concern, not this package's.
//
// The one classified rejection is *TimeoutError: the request outlived the
// wait budget. It carries the job ID so a later `orgctl resume` can
// re-attach. Everything else propagates as-is.
package platform
