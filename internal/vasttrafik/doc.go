// Package vasttrafik provides an HTTP client for the Västtrafik Planera Resa v4 API.
//
// # Overview
//
// Only two calls are implemented, which is all a departure board needs:
//
//   - POST /token: OAuth client-credentials exchange (Basic auth, form body)
//   - GET /pr/v4/stop-areas/{gid}/departures: next departures for a stop area
//
// # Client Usage
//
//	client, err := vasttrafik.NewClient(creds, vasttrafik.Options{})
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	token, err := client.FetchToken(ctx)
//	if err != nil {
//		log.Printf("token fetch failed: %v", err)
//	}
//
//	query := vasttrafik.NewDepartureQuery(gid).WithStart(time.Now())
//	list, err := client.FetchDepartures(ctx, token, query)
//
// # Query Parameters
//
// DepartureQuery uses pointer fields so that "unset" is explicit. Values encodes
// only the non-nil fields. NewDepartureQuery sets the usual defaults: a 60 minute
// window, 2 departures per line and direction, limit 10, offset 0 and occupancy off.
//
// # Error Handling
//
//   - *AuthError: the token endpoint answered with anything but 200
//   - *FetchError: the departures endpoint answered with anything but 200
//   - wrapped errors for transport and JSON decode failures
//
// A departures response without a "results" key is not an error; the returned
// DepartureList has HasResults == false.
//
// # Design Rationale
//
//   - No token caching (every refresh asks for a fresh token)
//   - No retries (the refresh loop simply tries again on its next tick)
//   - No pagination (one page is all the board shows)
//
// The default http.Client is wrapped with otelhttp so requests show up as spans
// when the process installs a tracer provider.
package vasttrafik
