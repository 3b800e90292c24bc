// Package ingestion loads catalog items into an item store.
//
// The Pipeline type manages the import workflow, including:
//   - Normalizing and validating items concurrently
//   - Dropping items with short descriptions
//   - De-duplicating by title, first occurrence wins
//   - Writing batches with exponential backoff retry
//
// Items that fail checks are reported, not fatal. A batch write that still
// fails after retries stops the run.
package ingestion
