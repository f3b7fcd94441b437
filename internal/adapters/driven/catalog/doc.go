// Package catalog loads the USCIS form catalog from a JSON file.
//
// The file is the scraped uscis_all_forms.json: either a bare array of
// {name, description, pdfs, detail_url} records or an object wrapping that
// array under "forms". A FileSource can watch the file and signal edits so
// a long-running server reloads without a restart.
package catalog
