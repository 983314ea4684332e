// Package services composes the store and the ordering engine into the
// wallet screen: archive split, manual order normalisation, filtering,
// sorting, grouping, drag reordering and barcode rendering.
package services
