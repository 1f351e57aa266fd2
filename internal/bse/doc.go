// Package bse retrieves basis set definitions from the Basis Set
// Exchange and parses their QCSchema JSON form.
//
// Fetched documents are cached on disk under
// {cacheRoot}/{basis}/{Element}.json and revalidated on every read: an
// empty or syntactically invalid cache file is treated as a miss and
// refetched. Responses are only written to the cache after they have
// passed the same validation, so a bad response never poisons later
// runs.
//
// Element symbols and basis set names are normalized before they are
// used in URLs, cache paths, or error messages: symbols to title case
// via the periodic package, basis names to lower case.
package bse
