// Package genome loads annotated chromosomes into a gene store.
//
// Feature parsing is someone else's job: the loader consumes Annotation
// documents, each an already-extracted feature table for one chromosome.
// For every CDS feature the loader settles a gene identity (locus tag first,
// gene name as a logged fallback), reuses an existing gene with the same
// identifier on the same chromosome, and records every alias the feature
// carries through the Store's idempotent find-or-create calls.
//
// Noisy conditions (gene-name fallback, duplicate genes) go through a capped
// ratelog.Limiter so large genomes keep readable logs.
package genome
