// Package ordering arranges wallet passes for display: the named sort options,
// the self-normalising manual order, drag-to-reorder arithmetic, filtering and
// grouping. Everything here is pure and works on snapshots.
package ordering
