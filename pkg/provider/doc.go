// Package provider is the client for the third-party Instagram scraping API.
//
// Every provider call is a form-encoded POST carrying the x-rapidapi-key and
// x-rapidapi-host headers. Failures come back as *errors.Error values typed
// upstream, no_response, request_setup or parsing. Calls are never retried.
//
//	client := provider.NewClient(cfg.Provider, log)
//	page, err := client.GetMedia(ctx, provider.MediaQuery{Username: "nasa"})
package provider
