// Package csmarket is a typed client for the CSMarketAPI REST API.
//
// REST endpoint:
//   - https://api.csmarketapi.com/v1
//
// Every request carries the API key as the "key" query parameter. A Client
// is safe for concurrent use and sends exactly one request per call; it does
// not retry, cache or rate-limit.
//
// Failures come back as one of:
//   - *TransportError: the request never produced a response
//   - *HTTPError: the API answered with a non-2xx status
//   - *model.DecodeError: a 2xx body did not match the schema
//   - ErrClientClosed: the client was closed
//   - ErrInvalidArgument: the call was rejected before a request was built
package csmarket
