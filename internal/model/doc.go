// Package model defines the core data structures used throughout leaksplit.
//
// This package contains the following main types:
//   - Finding: One gitleaks finding, covering both the minimal and the
//     extended report shape
//   - PartitionResult: The unique and duplicated groups produced by the
//     partitioner
//   - Group and Format: The caller's choice of group and output mode
//
// It also declares the error kinds (ErrIO, ErrDecode, ErrSerialize) that
// the loader and the report writers wrap, so callers can classify a
// failure with errors.Is regardless of which package produced it.
//
// Models live in their own package because the loader, partitioner,
// pipeline and report writers all share them.
package model
