// Package partition splits an ordered list of findings into unique findings
// and duplicates.
//
// Two findings are duplicates when they share the same Secret and RuleID.
// The first finding carrying a given pair is classified unique; every later
// finding with the same pair is classified duplicate. Classification
// therefore depends on input order, and both result groups keep the
// relative order in which their findings were encountered.
//
// Partition indexes accepted findings by their composite key. PartitionLinear
// is the literal scan over the accepted list and returns identical results;
// it is kept as the reference the indexed version is tested against.
package partition
