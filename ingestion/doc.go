// Package ingestion copies tables from one record source into a table writer.
//
// The Importer type manages the import workflow, including:
//   - Loading each requested table from the source
//   - Skipping tables whose content fingerprint matches the stored one
//   - Replacing changed tables in the writer
//
// Tables are imported concurrently using a worker pool. A failure on one
// table is recorded in the Report and does not stop the others.
package ingestion
