// Package catalog loads the read-only site data: the candidate directory,
// the shop catalogue and the blog articles.
//
// Data files are fetched through a Source (disk, HTTP or S3, optionally
// wrapped in an LRU CachedSource) and decoded by a Loader. Load* methods
// never fail: a missing or malformed file is logged and the empty value is
// returned. Fetch* methods report the error for callers such as the
// check command.
package catalog
