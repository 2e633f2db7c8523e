// Package fetcher retrieves web pages over HTTP and extracts their links.
//
// HTTPFetcher sends a browser-like User-Agent, applies a client timeout and
// a body size limit, decodes the body to UTF-8 and collects every a[href]
// target as an absolute URL. It never retries; failures are returned as
// *FetchError so the crawler can record them.
//
// Connections can optionally be routed through a SOCKS5 proxy created
// with NewHTTPClient.
package fetcher
