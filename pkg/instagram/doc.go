// Package instagram provides a client for the Instagram Graph API.
//
// Every call returns a typed response from package response, so callers work
// with parsed domain objects instead of raw JSON:
//
//	client := instagram.NewClient(cfg, log)
//
//	user, err := client.GetUser(ctx, "me")
//	if err != nil {
//	    switch errors.TypeOf(err) {
//	    case errors.ErrorTypeAuth:
//	        // token expired or revoked
//	    case errors.ErrorTypeRateLimit:
//	        // back off
//	    case errors.ErrorTypeSchema:
//	        // the API answered with an unexpected shape
//	    }
//	}
//
//	page, err := client.GetMediaList(ctx, user.Body.ID, instagram.MediaListOptions{Limit: 10})
//	for _, media := range page.Body.Data {
//	    fmt.Println(media.ID, media.Permalink)
//	}
//
// Requests are throttled client-side and never retried. Non-2xx responses are
// reported as typed errors built from the Graph API error object when present.
package instagram
