// Package kmeans clusters three component points with a fixed number of
// Lloyd rounds.
//
// Every round first moves each centroid to the mean of its group, or to a
// random position inside the observed value range when the group is empty,
// and then rebuilds the groups by assigning every point to its nearest
// centroid. Groups start empty, so the first round seeds all centroids at
// random. There is no convergence check: the round count alone bounds the
// work.
//
// A Model is built and trained by Fit and is read-only afterwards.
package kmeans
