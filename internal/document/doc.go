// Package document implements the content-file ingestion pipeline: splitting
// the metadata block from the markdown body, enforcing the required metadata
// fields, and rendering bodies into HTML. Discovery of files on disk is
// handled by the Loader; the Service ties loading and rendering together.
package document
