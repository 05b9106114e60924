// Package feed reads the source catalog: its per-date change feed and individual records.
//
// Client implements reconcile.FeedReader. The first request for a date asks for
// {changes_path}/{date}; every following request asks for {changes_path}/{cursor}, where
// the cursor is the page's nextPageToken, its resumptionToken, or the last path segment of
// the "next" navigation link, in that order of preference.
//
// Items are decoded leniently. The source id is read from sourceId or uuid, and the record
// kind from recordKind or familySystemName. Validation is left to the reconciler, which
// counts incomplete items as malformed.
//
// Failed page requests are returned as *reconcile.FetchError and are never retried here.
package feed
