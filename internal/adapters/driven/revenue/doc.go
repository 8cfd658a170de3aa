// Package revenue is the driven adapter that fetches monthly sales
// archives from the Wisconsin Department of Revenue over HTTP.
package revenue
